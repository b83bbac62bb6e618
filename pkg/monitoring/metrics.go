// Package monitoring exposes prometheus counters for the reservation
// core. The /metrics endpoint is wired by the router.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HoldsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_holds_created_total",
			Help: "Booth holds successfully created",
		},
	)

	HoldConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_hold_conflicts_total",
			Help: "Hold attempts rejected because the slot was occupied",
		},
	)

	HoldsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_holds_released_total",
			Help: "Holds released by clients before expiry",
		},
	)

	BookingsFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_finalized_total",
			Help: "Bookings confirmed, by booking type",
		},
		[]string{"booking_type"},
	)

	PaymentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_payment_failures_total",
			Help: "Finalizations aborted by a declined or failed payment",
		},
	)

	CapacityRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_capacity_rejections_total",
			Help: "Ticket finalizations rejected for exceeding root capacity",
		},
	)
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
