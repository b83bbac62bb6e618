package entity

import "github.com/google/uuid"

// Guest is one door-list row for a booking. At most one organiser per
// booking; placeholder rows keep an empty name until the organiser fills
// them in.
type Guest struct {
	BaseSimple
	BookingID   uuid.UUID `db:"booking_id"`
	GuestName   string    `db:"guest_name"`
	IsOrganiser bool      `db:"is_organiser"`
}
