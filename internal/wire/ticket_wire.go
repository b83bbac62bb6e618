package wire

import (
	"time"

	"venue-booking/internal/adaptor"
	"venue-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireTickets(
	r chi.Router,
	handler *adaptor.Handler,
	rdb *redis.Client,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Capacity:    10,
			RefillEvery: 3 * time.Second,
			KeyPrefix:   "rl:tickets",
		}, rdb, log))

		// POST /api/tickets/bookings - Priority, group, and occasion tickets
		r.Post("/api/tickets/bookings", handler.Booking.FinalizeTickets)
	})
}
