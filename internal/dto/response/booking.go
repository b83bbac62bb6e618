package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string               `json:"booking_id"`
	ReferenceCode  string               `json:"reference_code"`
	BookingType    string               `json:"booking_type"`
	Venue          string               `json:"venue"`
	BookingDate    string               `json:"booking_date"`
	StartTime      *string              `json:"start_time,omitempty"`
	EndTime        *string              `json:"end_time,omitempty"`
	TicketQuantity int                  `json:"ticket_quantity"`
	TotalCents     int64                `json:"total_cents"`
	Status         entity.BookingStatus `json:"status"`
	GuestListToken string               `json:"guest_list_token"`
	ShareToken     *string              `json:"share_token,omitempty"`
	ShareURL       *string              `json:"share_url,omitempty"`
	PaymentID      *string              `json:"payment_id,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, shareURL *string) BookingResponse {
	return BookingResponse{
		ID:             booking.ID.String(),
		ReferenceCode:  booking.ReferenceCode,
		BookingType:    string(booking.BookingType),
		Venue:          string(booking.Venue),
		BookingDate:    booking.BookingDate,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		TicketQuantity: booking.TicketQuantity,
		TotalCents:     booking.TotalCents,
		Status:         booking.Status,
		GuestListToken: booking.GuestListToken,
		ShareToken:     booking.ShareToken,
		ShareURL:       shareURL,
		PaymentID:      booking.PaymentID,
		CreatedAt:      booking.CreatedAt,
	}
}

type CapacityResponse struct {
	BookingID         string `json:"booking_id"`
	RemainingCapacity int    `json:"remaining_capacity"`
}

type OccasionResponse struct {
	ID                string `json:"id"`
	OccasionName      string `json:"occasion_name"`
	BookingDate       string `json:"booking_date"`
	Venue             string `json:"venue"`
	Capacity          int    `json:"capacity"`
	TicketPriceCents  int64  `json:"ticket_price_cents"`
	ShareToken        string `json:"share_token"`
	OrganiserName     string `json:"organiser_name"`
	TotalGuests       int    `json:"total_guests"`
	RemainingCapacity int    `json:"remaining_capacity"`
}
