package httpx

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (pgxpool.Pool, RedisClient, EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the set of dependencies to probe in the health endpoint.
// A nil checker is reported as "disabled" and never degrades overall status,
// so deployments without the item cache still report healthy.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
}

// HealthHandler returns an http.HandlerFunc that probes all registered
// HealthCheckers and reports degraded status if any of them fail.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	probes := []struct {
		name    string
		checker HealthChecker
	}{
		{"database", checks.Database},
		{"redis", checks.Redis},
		{"event_bus", checks.EventBus},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := map[string]string{"status": "ok"}
		for _, p := range probes {
			switch {
			case p.checker == nil:
				resp[p.name] = "disabled"
			case p.checker.Ping(ctx) != nil:
				resp[p.name] = "unreachable"
				resp["status"] = "degraded"
			default:
				resp[p.name] = "ok"
			}
		}

		status := http.StatusOK
		if resp["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
