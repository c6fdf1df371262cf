package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lendshare/pkg/app"
	"github.com/ghuser/lendshare/pkg/sharer"
	"github.com/ghuser/lendshare/services/request/application/handlers"
	appsvcs "github.com/ghuser/lendshare/services/request/application/services"
)

// RequestRoutes registers the item request board endpoints. Every endpoint
// identifies its caller by the X-Sharer-User-Id header.
func RequestRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewRequestHandler(appsvcs.New(a))
	r.Route("/requests", func(r chi.Router) {
		r.Use(sharer.Require(a.Logger))
		r.Post("/", h.Create)
		r.Get("/", h.ListOwn)
		r.Get("/all", h.ListAll)
		r.Get("/{id}", h.Get)
	})
}
