package usecase

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type OccasionService interface {
	// RemainingCapacity reports how many tickets a capacity-bound root
	// can still sell. The figure is advisory; the binding check happens
	// at finalization under the root lock.
	RemainingCapacity(ctx context.Context, bookingID string) (*response.CapacityResponse, error)

	// OccasionByShareToken resolves a share link to its occasion page
	// data: name, date, price, and live capacity.
	OccasionByShareToken(ctx context.Context, shareToken string) (*response.OccasionResponse, error)
}

type occasionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOccasionService(repo *repository.Repository, log *zap.Logger) OccasionService {
	return &occasionService{
		repo: repo,
		log:  log.With(zap.String("service", "occasion")),
	}
}

func (s *occasionService) RemainingCapacity(ctx context.Context, bookingID string) (*response.CapacityResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID format", ErrValidation)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	if booking.Capacity == nil {
		return nil, fmt.Errorf("%w: booking has no fixed capacity", ErrValidation)
	}

	remaining, err := s.repo.Booking.RemainingCapacity(ctx, id)
	if err != nil {
		return nil, err
	}
	if remaining < 0 {
		remaining = 0
	}

	return &response.CapacityResponse{
		BookingID:         bookingID,
		RemainingCapacity: remaining,
	}, nil
}

func (s *occasionService) OccasionByShareToken(ctx context.Context, shareToken string) (*response.OccasionResponse, error) {
	if shareToken == "" {
		return nil, fmt.Errorf("%w: share token is required", ErrValidation)
	}

	booking, err := s.repo.Booking.FindByShareToken(ctx, shareToken)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.BookingType != entity.BookingTypeOccasion {
		return nil, fmt.Errorf("%w: occasion", ErrNotFound)
	}

	remaining, err := s.repo.Booking.RemainingCapacity(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if remaining < 0 {
		remaining = 0
	}

	occasionName := ""
	if booking.OccasionName != nil {
		occasionName = *booking.OccasionName
	}
	capacity := 0
	if booking.Capacity != nil {
		capacity = *booking.Capacity
	}
	var priceCents int64
	if booking.TicketPriceCents != nil {
		priceCents = *booking.TicketPriceCents
	}

	return &response.OccasionResponse{
		ID:                booking.ID.String(),
		OccasionName:      occasionName,
		BookingDate:       booking.BookingDate,
		Venue:             string(booking.Venue),
		Capacity:          capacity,
		TicketPriceCents:  priceCents,
		ShareToken:        shareToken,
		OrganiserName:     booking.CustomerName,
		TotalGuests:       capacity - remaining,
		RemainingCapacity: remaining,
	}, nil
}
