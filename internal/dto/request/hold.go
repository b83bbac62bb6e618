package request

type CreateHoldRequest struct {
	Venue       string `json:"venue" validate:"required,oneof=manor hippie"`
	BoothID     string `json:"booth_id" validate:"required,uuid4"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	// ReplacesHoldID lets a client switching slots release its previous
	// hold best-effort before the new one is claimed.
	ReplacesHoldID *string `json:"replaces_hold_id,omitempty" validate:"omitempty,uuid4"`
}
