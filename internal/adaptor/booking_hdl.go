package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// FinalizeKaraoke handles POST /api/karaoke/bookings
func (h *BookingHandler) FinalizeKaraoke(w http.ResponseWriter, r *http.Request) {
	var req request.FinalizeKaraokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.FinalizeKaraoke(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "finalize karaoke booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// FinalizeTickets handles POST /api/tickets/bookings
func (h *BookingHandler) FinalizeTickets(w http.ResponseWriter, r *http.Request) {
	var req request.FinalizeTicketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.FinalizeTickets(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "finalize ticket booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}
