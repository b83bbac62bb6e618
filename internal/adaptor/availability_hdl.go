package adaptor

import (
	"net/http"

	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/karaoke/availability
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	venue := query.Get("venue")
	date := query.Get("date")
	if venue == "" || date == "" {
		utils.ResponseBadRequest(w, "venue and date are required", nil)
		return
	}

	partySize := utils.ParseInt(query.Get("party_size"), 1)

	var excludeHoldID *string
	if v := query.Get("hold_id"); v != "" {
		excludeHoldID = &v
	}

	availability, err := h.service.GetAvailability(r.Context(), venue, date, partySize, excludeHoldID)
	if err != nil {
		handleServiceError(h.log, w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// GetBooths handles GET /api/karaoke/booths. Without date/start/end it
// returns the plain venue catalog; with all three it filters to booths
// free for that exact window.
func (h *AvailabilityHandler) GetBooths(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	venue := query.Get("venue")
	if venue == "" {
		utils.ResponseBadRequest(w, "venue is required", nil)
		return
	}

	partySize := utils.ParseInt(query.Get("party_size"), 1)

	date := query.Get("date")
	start := query.Get("start")
	end := query.Get("end")

	if date == "" && start == "" && end == "" {
		booths, err := h.service.ListBooths(r.Context(), venue, partySize)
		if err != nil {
			handleServiceError(h.log, w, err, "list booths")
			return
		}
		utils.ResponseSuccess(w, "success", booths)
		return
	}

	if date == "" || start == "" || end == "" {
		utils.ResponseBadRequest(w, "date, start and end must be provided together", nil)
		return
	}

	booths, err := h.service.BoothsForSlot(r.Context(), venue, date, start, end, partySize)
	if err != nil {
		handleServiceError(h.log, w, err, "get booths for slot")
		return
	}

	utils.ResponseSuccess(w, "success", booths)
}
