package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityService interface {
	// GetAvailability returns the per-booth hourly slot grid for a venue
	// and date. A caller refreshing while it owns a hold passes that
	// hold's id so its own lease is not reported as "held".
	GetAvailability(ctx context.Context, venue, date string, partySize int, excludeHoldID *string) (*response.AvailabilityResponse, error)

	// BoothsForSlot lists booths that can take a session over the exact
	// window [start, end) with at least partySize capacity.
	BoothsForSlot(ctx context.Context, venue, date, start, end string, partySize int) ([]response.BoothResponse, error)

	// ListBooths is the booth catalog for a venue.
	ListBooths(ctx context.Context, venue string, partySize int) ([]response.BoothResponse, error)
}

type availabilityService struct {
	repo  *repository.Repository
	slots utils.SlotConfig
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		slots: config.Slots,
		log:   log.With(zap.String("service", "availability")),
	}
}

func parseVenue(venue string) (entity.Venue, error) {
	switch entity.Venue(venue) {
	case entity.VenueManor, entity.VenueHippie:
		return entity.Venue(venue), nil
	default:
		return "", fmt.Errorf("%w: unknown venue %q", ErrValidation, venue)
	}
}

func parseBookingDate(date string) (string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", fmt.Errorf("%w: invalid date %q", ErrValidation, date)
	}
	return date, nil
}

func (s *availabilityService) GetAvailability(ctx context.Context, venue, date string, partySize int, excludeHoldID *string) (*response.AvailabilityResponse, error) {
	v, err := parseVenue(venue)
	if err != nil {
		return nil, err
	}
	if _, err := parseBookingDate(date); err != nil {
		return nil, err
	}
	if partySize < 1 {
		partySize = 1
	}

	var excludeID uuid.UUID
	if excludeHoldID != nil {
		excludeID, err = utils.ParseUUID(*excludeHoldID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hold ID format", ErrValidation)
		}
	}

	booths, err := s.repo.Booth.FindByVenue(ctx, v, partySize)
	if err != nil {
		return nil, err
	}

	holds, err := s.repo.Hold.FindLiveByVenueDate(ctx, v, date)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindConfirmedBoothBookings(ctx, v, date)
	if err != nil {
		return nil, err
	}

	grid := buildGrid(s.slots)

	result := &response.AvailabilityResponse{
		Venue:  venue,
		Date:   date,
		Booths: make([]response.BoothAvailabilityResponse, 0, len(booths)),
	}

	for _, booth := range booths {
		slots := make([]response.SlotResponse, 0, len(grid))
		for _, window := range grid {
			status := response.SlotStatusAvailable

			for _, hold := range holds {
				if hold.BoothID != booth.ID || hold.ID == excludeID {
					continue
				}
				if overlaps(window.Start, window.End, hold.StartTime, hold.EndTime) {
					status = response.SlotStatusHeld
					break
				}
			}

			// A confirmed booking always wins over a hold.
			for _, booking := range bookings {
				if booking.BoothID == nil || *booking.BoothID != booth.ID {
					continue
				}
				if booking.StartTime == nil || booking.EndTime == nil {
					continue
				}
				if overlaps(window.Start, window.End, *booking.StartTime, *booking.EndTime) {
					status = response.SlotStatusBooked
					break
				}
			}

			slots = append(slots, response.SlotResponse{
				StartTime: window.Start,
				EndTime:   window.End,
				Status:    status,
			})
		}

		result.Booths = append(result.Booths, response.BoothAvailabilityResponse{
			Booth: response.BoothToResponse(booth),
			Slots: slots,
		})
	}

	return result, nil
}

func (s *availabilityService) BoothsForSlot(ctx context.Context, venue, date, start, end string, partySize int) ([]response.BoothResponse, error) {
	v, err := parseVenue(venue)
	if err != nil {
		return nil, err
	}
	if _, err := parseBookingDate(date); err != nil {
		return nil, err
	}

	hours, err := sessionHours(start, end)
	if err != nil {
		return nil, err
	}
	if hours > MaxSessionHours {
		return nil, fmt.Errorf("%w: sessions run at most %d hours", ErrValidation, MaxSessionHours)
	}
	if partySize < 1 {
		partySize = 1
	}

	booths, err := s.repo.Booth.FindAvailableForSlot(ctx, v, date, start, end, partySize)
	if err != nil {
		s.log.Error("Failed to list booths for slot",
			zap.Error(err),
			zap.String("venue", venue),
			zap.String("date", date),
			zap.String("start", start),
		)
		return nil, err
	}

	results := make([]response.BoothResponse, 0, len(booths))
	for _, booth := range booths {
		results = append(results, response.BoothToResponse(booth))
	}

	return results, nil
}

func (s *availabilityService) ListBooths(ctx context.Context, venue string, partySize int) ([]response.BoothResponse, error) {
	v, err := parseVenue(venue)
	if err != nil {
		return nil, err
	}
	if partySize < 1 {
		partySize = 1
	}

	booths, err := s.repo.Booth.FindByVenue(ctx, v, partySize)
	if err != nil {
		s.log.Error("Failed to list booths", zap.Error(err), zap.String("venue", venue))
		return nil, err
	}

	results := make([]response.BoothResponse, 0, len(booths))
	for _, booth := range booths {
		results = append(results, response.BoothToResponse(booth))
	}

	return results, nil
}
