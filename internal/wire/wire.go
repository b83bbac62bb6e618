package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/queue"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/monitoring"
	"venue-booking/pkg/payment"
	"venue-booking/pkg/token"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring assembles services, handlers, and the router. Redis and the
// broker are optional at startup: without redis rate limiting is off,
// without the broker confirmation events are dropped. The database and
// payment provider are not optional.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	charger := payment.NewSquareClient(config.Payment, logger)
	tokens := token.NewIssuer(config.Link.Secret)

	var publisher usecase.BookingEventPublisher
	if pub, err := queue.NewPublisher(config.Queue.URL, logger); err != nil {
		logger.Warn("Broker unavailable, booking events disabled", zap.Error(err))
	} else {
		publisher = pub
	}

	rdb := middleware.NewRedisClient(config.Redis)
	if rdb == nil {
		logger.Warn("Redis unavailable, rate limiting disabled")
	}

	service := usecase.NewService(repo, charger, tokens, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, rdb, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	rdb *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireKaraoke(r, handler, rdb, logger)
	wireTickets(r, handler, rdb, logger)
	wireOccasion(r, handler)
	wireRoster(r, handler)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", monitoring.Handler())

	return r
}
