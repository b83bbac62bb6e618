package entity

import (
	"time"

	"github.com/google/uuid"
)

type HoldStatus string

const (
	HoldStatusActive   HoldStatus = "active"
	HoldStatusReleased HoldStatus = "released"
	HoldStatusConsumed HoldStatus = "consumed"
)

// Hold is a time-limited exclusive lease on a booth slot. At most one
// active, non-expired hold may exist per (booth, date, start, end); the
// database enforces this with a partial unique index over active rows.
// Terminal rows (released/consumed) and expired rows no longer block
// new holds on the same key.
type Hold struct {
	BaseSimple
	BoothID     uuid.UUID  `db:"booth_id"`
	Venue       Venue      `db:"venue"`
	BookingDate string     `db:"booking_date"` // YYYY-MM-DD
	StartTime   string     `db:"start_time"`   // HH:MM, 24h
	EndTime     string     `db:"end_time"`
	Status      HoldStatus `db:"status"`
	ExpiresAt   time.Time  `db:"expires_at"`
}

// Expired reports whether the lease has lapsed. Expiry is evaluated
// lazily at read time; no sweeper is required for correctness.
func (h *Hold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// Live reports whether the hold still blocks other clients.
func (h *Hold) Live(now time.Time) bool {
	return h.Status == HoldStatusActive && !h.Expired(now)
}
