// Package payment defines the port through which bookings are charged.
// The core never references a provider object model; it hands over an
// opaque card token and an amount and gets back a payment id.
package payment

import (
	"context"
	"errors"
)

// ErrDeclined is returned when the provider rejects the card token.
// Callers surface it as a retryable payment failure; the hold stays live.
var ErrDeclined = errors.New("payment declined")

// Charger is the Payment Port. Tokenization happens client-side; the
// server only ever sees the resulting opaque token.
type Charger interface {
	// Charge captures amount against a card token and returns the
	// provider payment id.
	Charge(ctx context.Context, cardToken string, amount Amount, reference string) (string, error)
	// Refund compensates a captured payment, used when finalization
	// fails after the charge succeeded.
	Refund(ctx context.Context, paymentID string, amount Amount, reason string) error
}
