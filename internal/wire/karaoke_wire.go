package wire

import (
	"time"

	"venue-booking/internal/adaptor"
	"venue-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireKaraoke(
	r chi.Router,
	handler *adaptor.Handler,
	rdb *redis.Client,
	log *zap.Logger,
) {
	// ==================== READ ROUTES ====================
	// GET /api/karaoke/availability - Per-booth hourly slot grid
	r.Get("/api/karaoke/availability", handler.Availability.GetAvailability)

	// GET /api/karaoke/booths - Booths free over an exact window
	r.Get("/api/karaoke/booths", handler.Availability.GetBooths)

	// ==================== WRITE ROUTES (rate limited) ====================
	// Holds and finalizations mutate contested slots; a token bucket per
	// client IP keeps retry storms off the conflict path.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Capacity:    10,
			RefillEvery: 3 * time.Second,
			KeyPrefix:   "rl:karaoke",
		}, rdb, log))

		// POST /api/karaoke/holds - Claim a short exclusive hold
		r.Post("/api/karaoke/holds", handler.Hold.CreateHold)

		// DELETE /api/karaoke/holds/{id} - Release a hold early
		r.Delete("/api/karaoke/holds/{id}", handler.Hold.ReleaseHold)

		// POST /api/karaoke/bookings - Redeem a hold into a booking
		r.Post("/api/karaoke/bookings", handler.Booking.FinalizeKaraoke)
	})
}
