package usecase

import "errors"

// Typed service errors. Handlers map these onto HTTP statuses with
// errors.Is; everything else is treated as an internal failure.
var (
	// ErrConflict: the requested slot is occupied by a live hold or a
	// confirmed booking.
	ErrConflict = errors.New("slot is no longer available")

	// ErrHoldExpired: the hold lease lapsed before finalization.
	ErrHoldExpired = errors.New("hold has expired")

	// ErrHoldNotFound: no usable hold with that id (unknown, released,
	// or already consumed).
	ErrHoldNotFound = errors.New("hold not found")

	// ErrCapacityExceeded: the purchase would push a root booking past
	// its fixed capacity.
	ErrCapacityExceeded = errors.New("not enough capacity remaining")

	// ErrPaymentFailed: the charge was declined or the provider call
	// failed. Nothing was booked; any hold involved stays live.
	ErrPaymentFailed = errors.New("payment failed")

	// ErrValidation: the request is malformed or breaks a domain rule.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized: the link token is missing, malformed, expired,
	// or minted for a different booking.
	ErrUnauthorized = errors.New("link token is not valid")

	ErrNotFound = errors.New("not found")
)
