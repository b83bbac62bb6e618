package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type BookingType string

const (
	BookingTypeKaraoke        BookingType = "karaoke"
	BookingTypeGroupTicket    BookingType = "group_ticket"
	BookingTypeOccasion       BookingType = "occasion"
	BookingTypeOccasionTicket BookingType = "occasion_ticket"
	BookingTypePriority       BookingType = "priority"
)

// IncludesOrganiserSlot reports whether finalization creates a named
// organiser guest row for this booking type. When true the organiser
// occupies the first of the TicketQuantity guest slots; when false all
// slots start as blank placeholders.
func (t BookingType) IncludesOrganiserSlot() bool {
	switch t {
	case BookingTypeKaraoke, BookingTypeGroupTicket, BookingTypeOccasion, BookingTypeOccasionTicket:
		return true
	default:
		return false
	}
}

// Booking is an immutable record of a paid reservation. A booking with a
// nil ParentBookingID and a share token (or a capacity) is a group root;
// a booking with a non-nil ParentBookingID is linked against that root
// and contributes to its occupancy and roster.
type Booking struct {
	Base
	ReferenceCode    string        `db:"reference_code"`
	BookingType      BookingType   `db:"booking_type"`
	Venue            Venue         `db:"venue"`
	ParentBookingID  *uuid.UUID    `db:"parent_booking_id"`
	BoothID          *uuid.UUID    `db:"booth_id"` // nil for ticket-only bookings
	BookingDate      string        `db:"booking_date"`
	StartTime        *string       `db:"start_time"`
	EndTime          *string       `db:"end_time"`
	TicketQuantity   int           `db:"ticket_quantity"`
	Capacity         *int          `db:"capacity"`           // occasion roots only
	OccasionName     *string       `db:"occasion_name"`      // occasion roots only
	TicketPriceCents *int64        `db:"ticket_price_cents"` // occasion roots only
	CustomerName     string        `db:"customer_name"`
	CustomerEmail    *string       `db:"customer_email"`
	CustomerPhone    *string       `db:"customer_phone"`
	TotalCents       int64         `db:"total_cents"`
	PaymentID        *string       `db:"payment_id"`
	Status           BookingStatus `db:"status"`
	ShareToken       *string       `db:"share_token"`
	GuestListToken   string        `db:"guest_list_token"`
}

// IsRoot reports whether other bookings can be linked against this one.
func (b *Booking) IsRoot() bool {
	return b.ParentBookingID == nil && (b.ShareToken != nil || b.Capacity != nil)
}
