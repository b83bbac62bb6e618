package payment

import (
	"github.com/shopspring/decimal"
)

// Amount is a currency amount carried as an exact decimal so pricing
// arithmetic (hourly rates times session hours, per-ticket totals) never
// drifts through float rounding.
type Amount struct {
	value    decimal.Decimal
	currency string
}

var centsFactor = decimal.NewFromInt(100)

// FromCents builds an Amount from an integer number of minor units.
func FromCents(cents int64, currency string) Amount {
	return Amount{
		value:    decimal.NewFromInt(cents).Div(centsFactor),
		currency: currency,
	}
}

// Cents returns the amount in minor units, the form providers expect.
func (a Amount) Cents() int64 {
	return a.value.Mul(centsFactor).IntPart()
}

func (a Amount) Currency() string {
	return a.currency
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// Add returns the sum of two amounts. Currencies are assumed equal;
// the service operates in a single configured currency.
func (a Amount) Add(b Amount) Amount {
	return Amount{value: a.value.Add(b.value), currency: a.currency}
}

// MulInt scales the amount, e.g. hourly rate times hours.
func (a Amount) MulInt(n int64) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(n)), currency: a.currency}
}

// String renders a display value like "25.00".
func (a Amount) String() string {
	return a.value.StringFixed(2)
}
