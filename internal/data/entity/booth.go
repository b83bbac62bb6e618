package entity

type Venue string

const (
	VenueManor  Venue = "manor"
	VenueHippie Venue = "hippie"
)

// Booth is immutable reference data describing a bookable karaoke booth.
type Booth struct {
	Base
	Venue           Venue  `db:"venue"`
	Name            string `db:"name"`
	Capacity        int    `db:"capacity"` // max party size
	HourlyRateCents int64  `db:"hourly_rate_cents"`
	IsActive        bool   `db:"is_active"`
}
