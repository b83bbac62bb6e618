package wire

import (
	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoster(r chi.Router, handler *adaptor.Handler) {
	// Both routes require the guest-list link token as ?token=.
	r.Route("/api/bookings/{id}/guests", func(r chi.Router) {
		// GET - Merged door list: own slots plus linked purchases
		r.Get("/", handler.Roster.GetRoster)

		// PUT - Replace the caller's editable guest slots
		r.Put("/", handler.Roster.SaveGuests)
	})
}
