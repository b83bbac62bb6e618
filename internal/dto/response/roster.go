package response

import (
	"venue-booking/internal/data/entity"
)

type GuestResponse struct {
	ID          *string `json:"id"` // nil for empty placeholder slots
	Name        string  `json:"name"`
	IsOrganiser bool    `json:"is_organiser"`
}

type LinkedGroupResponse struct {
	BookingID      string          `json:"booking_id"`
	CustomerName   string          `json:"customer_name"`
	TicketQuantity int             `json:"ticket_quantity"`
	Guests         []GuestResponse `json:"guests"`
}

type RosterResponse struct {
	BookingID      string                `json:"booking_id"`
	ReferenceCode  string                `json:"reference_code"`
	BookingDate    string                `json:"booking_date"`
	StartTime      *string               `json:"start_time,omitempty"`
	EndTime        *string               `json:"end_time,omitempty"`
	OwnGuests      []GuestResponse       `json:"own_guests"`
	LinkedGroups   []LinkedGroupResponse `json:"linked_groups"`
	TotalGroupSize int                   `json:"total_group_size"`
	ShareURL       *string               `json:"share_url,omitempty"`
}

func GuestToResponse(guest *entity.Guest) GuestResponse {
	id := guest.ID.String()
	return GuestResponse{
		ID:          &id,
		Name:        guest.GuestName,
		IsOrganiser: guest.IsOrganiser,
	}
}

// EmptyGuestSlot is an unfilled placeholder shown to the organiser.
func EmptyGuestSlot() GuestResponse {
	return GuestResponse{ID: nil, Name: "", IsOrganiser: false}
}
