// Package queue publishes booking domain events to RabbitMQ so
// downstream consumers (confirmation emails, door-list exports) can
// react without sitting on the request path.
package queue

import "time"

const bookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published after a finalization commits.
type BookingConfirmedEvent struct {
	BookingID      string    `json:"booking_id"`
	ReferenceCode  string    `json:"reference_code"`
	BookingType    string    `json:"booking_type"`
	Venue          string    `json:"venue"`
	BookingDate    string    `json:"booking_date"`
	StartTime      *string   `json:"start_time,omitempty"`
	EndTime        *string   `json:"end_time,omitempty"`
	TicketQuantity int       `json:"ticket_quantity"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  *string   `json:"customer_email,omitempty"`
	TotalCents     int64     `json:"total_cents"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}
