package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lendshare/pkg/app"
	"github.com/ghuser/lendshare/pkg/sharer"
	"github.com/ghuser/lendshare/services/item/application/handlers"
	appsvcs "github.com/ghuser/lendshare/services/item/application/services"
)

// ItemRoutes registers the item catalog endpoints. Search and request-scoped
// listing are public; everything else identifies its caller by the
// X-Sharer-User-Id header.
func ItemRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewItemHandler(appsvcs.New(a))
	r.Route("/items", func(r chi.Router) {
		r.Get("/search", h.Search)
		r.Get("/request/{requestId}", h.ListByRequest)

		r.Group(func(r chi.Router) {
			r.Use(sharer.Require(a.Logger))
			r.Post("/", h.Create)
			r.Get("/", h.ListOwn)
			r.Get("/{id}", h.Get)
			r.Patch("/{id}", h.Update)
			r.Post("/{id}/comment", h.AddComment)
		})
	})
}
