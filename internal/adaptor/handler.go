package adaptor

import (
	"errors"
	"net/http"

	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Availability *AvailabilityHandler
	Hold         *HoldHandler
	Booking      *BookingHandler
	Occasion     *OccasionHandler
	Roster       *RosterHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Availability: NewAvailabilityHandler(service.Availability, log),
		Hold:         NewHoldHandler(service.Hold, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Occasion:     NewOccasionHandler(service.Occasion, log),
		Roster:       NewRosterHandler(service.Roster, log),
	}
}

// handleServiceError maps typed service errors onto HTTP statuses.
// Anything unrecognised is an internal error and is logged with the
// full cause; the client only sees a generic message.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" failed - validation",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrPaymentFailed):
		log.Warn(operation+" failed - payment",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponsePaymentRequired(w, err.Error())

	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, usecase.ErrHoldNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict), errors.Is(err, usecase.ErrCapacityExceeded):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrHoldExpired):
		log.Warn(operation+" failed - hold expired",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseGone(w, err.Error())

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
