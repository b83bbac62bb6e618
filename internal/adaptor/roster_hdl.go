package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RosterHandler struct {
	service usecase.RosterService
	log     *zap.Logger
}

func NewRosterHandler(service usecase.RosterService, log *zap.Logger) *RosterHandler {
	return &RosterHandler{
		service: service,
		log:     log.With(zap.String("handler", "roster")),
	}
}

// linkToken pulls the guest-list credential from the query string.
func linkToken(r *http.Request) string {
	return r.URL.Query().Get("token")
}

// GetRoster handles GET /api/bookings/{id}/guests
func (h *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	token := linkToken(r)
	if token == "" {
		utils.ResponseUnauthorized(w, "Link token is required")
		return
	}

	roster, err := h.service.GetRoster(r.Context(), bookingID, token)
	if err != nil {
		handleServiceError(h.log, w, err, "get roster")
		return
	}

	utils.ResponseSuccess(w, "success", roster)
}

// SaveGuests handles PUT /api/bookings/{id}/guests
func (h *RosterHandler) SaveGuests(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	token := linkToken(r)
	if token == "" {
		utils.ResponseUnauthorized(w, "Link token is required")
		return
	}

	var req request.SaveGuestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	roster, err := h.service.SaveOwnGuests(r.Context(), bookingID, token, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "save guests")
		return
	}

	utils.ResponseSuccess(w, "success", roster)
}
