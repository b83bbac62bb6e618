package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type HoldResponse struct {
	ID          string    `json:"hold_id"`
	BoothID     string    `json:"booth_id"`
	BookingDate string    `json:"booking_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func HoldToResponse(hold *entity.Hold) HoldResponse {
	return HoldResponse{
		ID:          hold.ID.String(),
		BoothID:     hold.BoothID.String(),
		BookingDate: hold.BookingDate,
		StartTime:   hold.StartTime,
		EndTime:     hold.EndTime,
		ExpiresAt:   hold.ExpiresAt,
	}
}
