package response

import (
	"venue-booking/internal/data/entity"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusHeld      SlotStatus = "held"
	SlotStatusBooked    SlotStatus = "booked"
)

type SlotResponse struct {
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Status    SlotStatus `json:"status"`
}

type BoothAvailabilityResponse struct {
	Booth BoothResponse  `json:"booth"`
	Slots []SlotResponse `json:"slots"`
}

type AvailabilityResponse struct {
	Venue  string                      `json:"venue"`
	Date   string                      `json:"date"`
	Booths []BoothAvailabilityResponse `json:"booths"`
}

type BoothResponse struct {
	ID              string `json:"id"`
	Venue           string `json:"venue"`
	Name            string `json:"name"`
	Capacity        int    `json:"capacity"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
}

func BoothToResponse(booth *entity.Booth) BoothResponse {
	return BoothResponse{
		ID:              booth.ID.String(),
		Venue:           string(booth.Venue),
		Name:            booth.Name,
		Capacity:        booth.Capacity,
		HourlyRateCents: booth.HourlyRateCents,
	}
}
