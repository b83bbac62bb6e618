package request

// SaveGuestsRequest replaces the editable subset of a booking's guest
// list. Blank entries are dropped server-side, never stored.
type SaveGuestsRequest struct {
	OrganiserName *string  `json:"organiser_name,omitempty" validate:"omitempty,max=120"`
	GuestNames    []string `json:"guest_names" validate:"dive,max=120"`
}
