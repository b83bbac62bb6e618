package request

// FinalizeKaraokeRequest redeems a live hold plus a payment token into a
// confirmed booth booking.
type FinalizeKaraokeRequest struct {
	HoldID         string  `json:"hold_id" validate:"required,uuid4"`
	CustomerName   string  `json:"customer_name" validate:"required,min=1,max=120"`
	CustomerEmail  *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone  *string `json:"customer_phone,omitempty" validate:"omitempty,min=6,max=32"`
	PartySize      int     `json:"party_size" validate:"required,min=1"`
	TicketQuantity int     `json:"ticket_quantity" validate:"required,min=1"`
	PaymentToken   string  `json:"payment_token" validate:"required"`
}

// FinalizeTicketsRequest is the ticket-only path: priority entry, group
// tickets, and occasion tickets bought through a share link.
type FinalizeTicketsRequest struct {
	TicketType     string  `json:"ticket_type" validate:"required,oneof=priority group_ticket occasion_ticket"`
	Venue          string  `json:"venue" validate:"required,oneof=manor hippie"`
	BookingDate    string  `json:"booking_date" validate:"omitempty,datetime=2006-01-02"`
	CustomerName   string  `json:"customer_name" validate:"required,min=1,max=120"`
	CustomerEmail  *string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone  *string `json:"customer_phone,omitempty" validate:"omitempty,min=6,max=32"`
	TicketQuantity int     `json:"ticket_quantity" validate:"required,min=1"`
	PaymentToken   string  `json:"payment_token" validate:"required"`
	// GroupToken links this purchase to a root booking's share token;
	// the purchase is then capacity-checked against that root.
	GroupToken *string `json:"group_token,omitempty"`
}
