package usecase

import (
	"context"
	"fmt"
	"strings"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/token"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RosterService interface {
	// GetRoster returns the merged door list for a booking: its own
	// guest slots padded to the ticket quantity, plus one section per
	// linked purchase in arrival order.
	GetRoster(ctx context.Context, bookingID, linkToken string) (*response.RosterResponse, error)

	// SaveOwnGuests replaces the caller's editable slots. Blank names
	// are dropped, the organiser row is renamed in place when a new
	// name is given, and the whole write is last-write-wins.
	SaveOwnGuests(ctx context.Context, bookingID, linkToken string, req *request.SaveGuestsRequest) (*response.RosterResponse, error)
}

type rosterService struct {
	repo   *repository.Repository
	tokens *token.Issuer
	config *utils.Config
	log    *zap.Logger
}

func NewRosterService(repo *repository.Repository, tokens *token.Issuer, config *utils.Config, log *zap.Logger) RosterService {
	return &rosterService{
		repo:   repo,
		tokens: tokens,
		config: config,
		log:    log.With(zap.String("service", "roster")),
	}
}

// authorize checks that the guest-list token was minted for this exact
// booking. A valid token for some other booking is still rejected.
func (s *rosterService) authorize(bookingID, linkToken string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid booking ID format", ErrValidation)
	}

	subject, err := s.tokens.Verify(linkToken, token.PurposeGuestList)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	if subject != id {
		return uuid.Nil, ErrUnauthorized
	}

	return id, nil
}

func (s *rosterService) GetRoster(ctx context.Context, bookingID, linkToken string) (*response.RosterResponse, error) {
	id, err := s.authorize(bookingID, linkToken)
	if err != nil {
		return nil, err
	}

	return s.buildRoster(ctx, id)
}

func (s *rosterService) SaveOwnGuests(ctx context.Context, bookingID, linkToken string, req *request.SaveGuestsRequest) (*response.RosterResponse, error) {
	id, err := s.authorize(bookingID, linkToken)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Save guests validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	var organiserName string
	if req.OrganiserName != nil {
		organiserName = strings.TrimSpace(*req.OrganiserName)
		if organiserName == "" {
			return nil, fmt.Errorf("%w: organiser name cannot be blank", ErrValidation)
		}
	}

	names := utils.TrimNonEmpty(req.GuestNames)

	editableSlots := booking.TicketQuantity
	if booking.BookingType.IncludesOrganiserSlot() {
		editableSlots--
	}
	if len(names) > editableSlots {
		return nil, fmt.Errorf("%w: at most %d guest names", ErrValidation, editableSlots)
	}

	err = runInTx(ctx, s.repo.DB, func(tx pgx.Tx) error {
		if organiserName != "" {
			if err := s.repo.Guest.UpdateOrganiserNameTx(ctx, tx, id, organiserName); err != nil {
				return err
			}
		}

		replacements := make([]*entity.Guest, 0, len(names))
		for i, name := range names {
			replacements = append(replacements, newGuestRow(id, name, i))
		}
		return s.repo.Guest.ReplaceNonOrganisersTx(ctx, tx, id, replacements)
	})
	if err != nil {
		s.log.Error("Failed to save guest list",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, err
	}

	return s.buildRoster(ctx, id)
}

func (s *rosterService) buildRoster(ctx context.Context, id uuid.UUID) (*response.RosterResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id.String())
	}

	ownGuests, err := s.repo.Guest.FindByBookingID(ctx, id)
	if err != nil {
		return nil, err
	}

	children, err := s.repo.Booking.FindChildren(ctx, id)
	if err != nil {
		return nil, err
	}

	linked := make([]*entity.Booking, 0, len(children))
	childIDs := make([]uuid.UUID, 0, len(children))
	for _, child := range children {
		if child.Status == entity.BookingStatusCancelled {
			continue
		}
		linked = append(linked, child)
		childIDs = append(childIDs, child.ID)
	}

	guestsByBooking, err := s.repo.Guest.FindByBookingIDs(ctx, childIDs)
	if err != nil {
		return nil, err
	}

	totalGroupSize := booking.TicketQuantity
	groups := make([]response.LinkedGroupResponse, 0, len(linked))
	for _, child := range linked {
		totalGroupSize += child.TicketQuantity
		groups = append(groups, response.LinkedGroupResponse{
			BookingID:      child.ID.String(),
			CustomerName:   child.CustomerName,
			TicketQuantity: child.TicketQuantity,
			Guests:         paddedGuests(guestsByBooking[child.ID], child.TicketQuantity),
		})
	}

	return &response.RosterResponse{
		BookingID:      booking.ID.String(),
		ReferenceCode:  booking.ReferenceCode,
		BookingDate:    booking.BookingDate,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		OwnGuests:      paddedGuests(ownGuests, booking.TicketQuantity),
		LinkedGroups:   groups,
		TotalGroupSize: totalGroupSize,
		ShareURL:       shareURL(s.config.App.ShareBaseURL, booking.ShareToken),
	}, nil
}

// paddedGuests renders stored rows organiser-first and fills the
// remainder with empty placeholder slots up to the ticket quantity.
func paddedGuests(guests []*entity.Guest, quantity int) []response.GuestResponse {
	out := make([]response.GuestResponse, 0, quantity)
	for _, guest := range guests {
		out = append(out, response.GuestToResponse(guest))
	}
	for len(out) < quantity {
		out = append(out, response.EmptyGuestSlot())
	}
	return out
}
