// Package sharer implements the trusted caller-identity model: every state-
// changing endpoint identifies its caller by the numeric X-Sharer-User-Id
// header. The header is trusted as-is; there is no credential check.
package sharer

import (
	"net/http"
	"strconv"

	"github.com/ghuser/lendshare/pkg/httpx"
	"github.com/ghuser/lendshare/pkg/logger"
)

// Header is the caller identity header name.
const Header = "X-Sharer-User-Id"

// Require is a chi middleware that parses the X-Sharer-User-Id header and
// injects the caller id into the request context.
//
// A missing or non-numeric header is a boundary failure, not application
// logic, and surfaces as 500 with an {"error": message} body.
//
// After this middleware, handlers can safely call sharer.UserIDFromCtx(r.Context()).
func Require(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(Header)
			if raw == "" {
				log.WarnContext(r.Context(), "missing identity header", "header", Header)
				httpx.JSONError(w, http.StatusInternalServerError, "missing "+Header+" header")
				return
			}

			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				log.WarnContext(r.Context(), "invalid identity header", "header", Header, "value", raw)
				httpx.JSONError(w, http.StatusInternalServerError, "invalid "+Header+" header")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}
