package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lendshare/pkg/app"
	"github.com/ghuser/lendshare/services/user/application/handlers"
	appsvcs "github.com/ghuser/lendshare/services/user/application/services"
)

// UserRoutes registers user directory endpoints on the provided chi router.
// None of these require the caller identity header.
func UserRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewUserHandler(appsvcs.New(a))
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
