package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountArithmetic(t *testing.T) {
	rate := FromCents(5000, "AUD")
	tickets := FromCents(1000, "AUD")

	// Two hours of booth time plus four tickets.
	total := rate.MulInt(2).Add(tickets.MulInt(4))

	assert.Equal(t, int64(14000), total.Cents())
	assert.Equal(t, "AUD", total.Currency())
	assert.Equal(t, "140.00", total.String())
}

func TestAmountZero(t *testing.T) {
	assert.True(t, FromCents(0, "AUD").IsZero())
	assert.False(t, FromCents(1, "AUD").IsZero())
}

func TestAmountNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style sums stay exact in minor units.
	sum := FromCents(10, "AUD").Add(FromCents(20, "AUD"))
	assert.Equal(t, int64(30), sum.Cents())
	assert.Equal(t, "0.30", sum.String())

	// A price that is awkward in binary floating point.
	perTicket := FromCents(3333, "AUD")
	assert.Equal(t, int64(9999), perTicket.MulInt(3).Cents())
}
