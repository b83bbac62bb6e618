package wire

import (
	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOccasion(r chi.Router, handler *adaptor.Handler) {
	// GET /api/occasions/{shareToken} - Occasion page behind a share link
	r.Get("/api/occasions/{shareToken}", handler.Occasion.GetOccasion)

	// GET /api/bookings/{id}/capacity - Remaining tickets on a root
	r.Get("/api/bookings/{id}/capacity", handler.Occasion.GetCapacity)
}
