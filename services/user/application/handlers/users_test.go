package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsvcs "github.com/ghuser/lendshare/services/user/application/services"
	"github.com/ghuser/lendshare/services/user/infrastructure/persistence/memory"
)

// newTestRouter mounts the user handler over an in-memory repository.
func newTestRouter() *chi.Mux {
	h := NewUserHandler(&appsvcs.Services{
		User: appsvcs.NewUserService(memory.NewUserRepository()),
	})
	r := chi.NewRouter()
	r.Post("/users", h.Create)
	r.Get("/users", h.List)
	r.Get("/users/{id}", h.Get)
	r.Patch("/users/{id}", h.Update)
	r.Delete("/users/{id}", h.Delete)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandler_Create(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Alice", resp.Name)
}

func TestUserHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Alice"}`},
		{"malformed email", `{"name":"Alice","email":"not-an-email"}`},
		{"missing name", `{"email":"alice@example.com"}`},
		{"malformed json", `{"name":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter()
			w := doJSON(t, r, http.MethodPost, "/users", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUserHandler_DuplicateEmailConflict(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/users", `{"name":"Impostor","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_GetMissing(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/users/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_GetInvalidID(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_UpdateAndList(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPatch, "/users/1", `{"name":"Alicia"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	w = doJSON(t, r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestUserHandler_Delete(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/users", `{"name":"Alice","email":"alice@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
