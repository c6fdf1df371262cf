package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lendshare/pkg/app"
	"github.com/ghuser/lendshare/pkg/sharer"
	"github.com/ghuser/lendshare/services/booking/application/handlers"
	appsvcs "github.com/ghuser/lendshare/services/booking/application/services"
)

// BookingRoutes registers the booking lifecycle endpoints. Every endpoint
// identifies its caller by the X-Sharer-User-Id header.
func BookingRoutes(r chi.Router, a *app.Application) {
	h := handlers.NewBookingHandler(appsvcs.New(a))
	r.Route("/bookings", func(r chi.Router) {
		r.Use(sharer.Require(a.Logger))
		r.Post("/", h.Create)
		r.Get("/", h.ListOwn)
		r.Get("/owner", h.ListForOwner)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Approve)
	})
}
