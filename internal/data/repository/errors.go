package repository

import "errors"

// Errors surfaced when a conditional write loses a race at the store.
// The usecase layer maps these onto its own typed errors; they are never
// retried here.
var (
	// ErrHoldConflict: the (booth, date, start, end) key is already
	// occupied by a live hold or a confirmed booking.
	ErrHoldConflict = errors.New("slot already held or booked")

	// ErrHoldNotActive: a consume targeted a hold that is expired,
	// released, or already consumed.
	ErrHoldNotActive = errors.New("hold is not active")
)
