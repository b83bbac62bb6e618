package usecase

import (
	"venue-booking/internal/data/repository"
	"venue-booking/pkg/payment"
	"venue-booking/pkg/token"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Availability AvailabilityService
	Hold         HoldService
	Booking      BookingService
	Occasion     OccasionService
	Roster       RosterService
}

func NewService(
	repo *repository.Repository,
	charger payment.Charger,
	tokens *token.Issuer,
	publisher BookingEventPublisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	holds := NewHoldService(repo, config, log)

	return &Service{
		Availability: NewAvailabilityService(repo, config, log),
		Hold:         holds,
		Booking:      NewBookingService(repo, holds, charger, tokens, publisher, config, log),
		Occasion:     NewOccasionService(repo, log),
		Roster:       NewRosterService(repo, tokens, config, log),
	}
}
