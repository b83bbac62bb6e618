package adaptor

import (
	"net/http"

	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OccasionHandler struct {
	service usecase.OccasionService
	log     *zap.Logger
}

func NewOccasionHandler(service usecase.OccasionService, log *zap.Logger) *OccasionHandler {
	return &OccasionHandler{
		service: service,
		log:     log.With(zap.String("handler", "occasion")),
	}
}

// GetOccasion handles GET /api/occasions/{shareToken}
func (h *OccasionHandler) GetOccasion(w http.ResponseWriter, r *http.Request) {
	shareToken := chi.URLParam(r, "shareToken")
	if shareToken == "" {
		utils.ResponseBadRequest(w, "Share token is required", nil)
		return
	}

	occasion, err := h.service.OccasionByShareToken(r.Context(), shareToken)
	if err != nil {
		handleServiceError(h.log, w, err, "get occasion")
		return
	}

	utils.ResponseSuccess(w, "success", occasion)
}

// GetCapacity handles GET /api/bookings/{id}/capacity
func (h *OccasionHandler) GetCapacity(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	capacity, err := h.service.RemainingCapacity(r.Context(), bookingID)
	if err != nil {
		handleServiceError(h.log, w, err, "get remaining capacity")
		return
	}

	utils.ResponseSuccess(w, "success", capacity)
}
