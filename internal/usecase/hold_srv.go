package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/monitoring"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type HoldService interface {
	// CreateHold claims a short exclusive lease on a booth slot. Exactly
	// one client can hold a given (booth, date, start, end) at a time;
	// losers get ErrConflict.
	CreateHold(ctx context.Context, req *request.CreateHoldRequest) (*response.HoldResponse, error)

	// ReleaseHold ends a lease early. Releasing an unknown, expired or
	// consumed hold succeeds; clients race with expiry.
	ReleaseHold(ctx context.Context, holdID string) error

	// ValidateHold returns the hold when it is still live. Expired holds
	// yield ErrHoldExpired; released, consumed, or unknown ones yield
	// ErrHoldNotFound.
	ValidateHold(ctx context.Context, holdID string) (*entity.Hold, error)
}

type holdService struct {
	repo *repository.Repository
	ttl  time.Duration
	log  *zap.Logger
}

func NewHoldService(repo *repository.Repository, config *utils.Config, log *zap.Logger) HoldService {
	return &holdService{
		repo: repo,
		ttl:  time.Duration(config.Hold.TTLMinutes) * time.Minute,
		log:  log.With(zap.String("service", "hold")),
	}
}

func (s *holdService) CreateHold(ctx context.Context, req *request.CreateHoldRequest) (*response.HoldResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hold validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	venue, err := parseVenue(req.Venue)
	if err != nil {
		return nil, err
	}

	boothID, err := utils.ParseUUID(req.BoothID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booth ID format", ErrValidation)
	}

	hours, err := sessionHours(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if hours > MaxSessionHours {
		return nil, fmt.Errorf("%w: sessions run at most %d hours", ErrValidation, MaxSessionHours)
	}

	booth, err := s.repo.Booth.FindByID(ctx, boothID)
	if err != nil {
		return nil, err
	}
	if booth == nil || !booth.IsActive {
		return nil, fmt.Errorf("%w: booth %s", ErrNotFound, req.BoothID)
	}
	if booth.Venue != venue {
		return nil, fmt.Errorf("%w: booth does not belong to venue %s", ErrValidation, req.Venue)
	}

	// A client switching slots hands over its previous hold; releasing
	// it is best-effort so a stale id never blocks the new claim.
	if req.ReplacesHoldID != nil {
		if prevID, err := utils.ParseUUID(*req.ReplacesHoldID); err == nil {
			if err := s.repo.Hold.Release(ctx, prevID); err != nil {
				s.log.Warn("Failed to release replaced hold",
					zap.Error(err),
					zap.String("hold_id", prevID.String()),
				)
			}
		}
	}

	now := time.Now().UTC()
	hold := &entity.Hold{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		BoothID:     boothID,
		Venue:       venue,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      entity.HoldStatusActive,
		ExpiresAt:   now.Add(s.ttl),
	}

	if err := s.repo.Hold.CreateExclusive(ctx, hold); err != nil {
		if errors.Is(err, repository.ErrHoldConflict) {
			monitoring.HoldConflicts.Inc()
			return nil, fmt.Errorf("%w: booth %s at %s", ErrConflict, booth.Name, req.StartTime)
		}
		s.log.Error("Failed to create hold",
			zap.Error(err),
			zap.String("booth_id", req.BoothID),
			zap.String("date", req.BookingDate),
		)
		return nil, err
	}

	monitoring.HoldsCreated.Inc()
	s.log.Info("Hold created",
		zap.String("hold_id", hold.ID.String()),
		zap.String("booth_id", req.BoothID),
		zap.String("date", req.BookingDate),
		zap.String("start", req.StartTime),
		zap.Time("expires_at", hold.ExpiresAt),
	)

	resp := response.HoldToResponse(hold)
	return &resp, nil
}

func (s *holdService) ReleaseHold(ctx context.Context, holdID string) error {
	id, err := utils.ParseUUID(holdID)
	if err != nil {
		return fmt.Errorf("%w: invalid hold ID format", ErrValidation)
	}

	if err := s.repo.Hold.Release(ctx, id); err != nil {
		return err
	}

	monitoring.HoldsReleased.Inc()
	return nil
}

func (s *holdService) ValidateHold(ctx context.Context, holdID string) (*entity.Hold, error) {
	id, err := utils.ParseUUID(holdID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hold ID format", ErrValidation)
	}

	hold, err := s.repo.Hold.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, ErrHoldNotFound
	}

	// Expiry is evaluated lazily against the wall clock; a row can be
	// expired without ever having been updated.
	switch {
	case hold.Status != entity.HoldStatusActive:
		return nil, ErrHoldNotFound
	case hold.Expired(time.Now().UTC()):
		return nil, ErrHoldExpired
	}

	return hold, nil
}
