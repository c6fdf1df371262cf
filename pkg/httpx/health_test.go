package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/lendshare/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func probeHealth(t *testing.T, checks httpx.HealthChecks) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr.Code, resp
}

func TestHealthHandler(t *testing.T) {
	down := &stubChecker{err: errors.New("conn refused")}
	up := &stubChecker{}

	tests := []struct {
		name       string
		checks     httpx.HealthChecks
		wantCode   int
		wantFields map[string]string
	}{
		{
			name:       "all healthy",
			checks:     httpx.HealthChecks{Database: up, Redis: up, EventBus: up},
			wantCode:   http.StatusOK,
			wantFields: map[string]string{"status": "ok", "database": "ok", "redis": "ok", "event_bus": "ok"},
		},
		{
			name:       "database down",
			checks:     httpx.HealthChecks{Database: down, Redis: up, EventBus: up},
			wantCode:   http.StatusServiceUnavailable,
			wantFields: map[string]string{"status": "degraded", "database": "unreachable", "redis": "ok"},
		},
		{
			name:       "redis down",
			checks:     httpx.HealthChecks{Database: up, Redis: down, EventBus: up},
			wantCode:   http.StatusServiceUnavailable,
			wantFields: map[string]string{"status": "degraded", "redis": "unreachable"},
		},
		{
			name:       "event bus down",
			checks:     httpx.HealthChecks{Database: up, Redis: up, EventBus: down},
			wantCode:   http.StatusServiceUnavailable,
			wantFields: map[string]string{"status": "degraded", "event_bus": "unreachable"},
		},
		{
			name:       "everything down",
			checks:     httpx.HealthChecks{Database: down, Redis: down, EventBus: down},
			wantCode:   http.StatusServiceUnavailable,
			wantFields: map[string]string{"status": "degraded", "database": "unreachable", "redis": "unreachable", "event_bus": "unreachable"},
		},
		{
			name:       "redis not configured",
			checks:     httpx.HealthChecks{Database: up, Redis: nil, EventBus: up},
			wantCode:   http.StatusOK,
			wantFields: map[string]string{"status": "ok", "redis": "disabled", "database": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := probeHealth(t, tt.checks)
			if code != tt.wantCode {
				t.Fatalf("status code: got %d, want %d", code, tt.wantCode)
			}
			for field, want := range tt.wantFields {
				if resp[field] != want {
					t.Errorf("%s: got %q, want %q (full response: %v)", field, resp[field], want, resp)
				}
			}
		})
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	up := &stubChecker{}
	rr := httptest.NewRecorder()
	h := httpx.HealthHandler(httpx.HealthChecks{Database: up, Redis: up, EventBus: up})
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}
