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
	"venue-booking/internal/queue"
	"venue-booking/pkg/monitoring"
	"venue-booking/pkg/payment"
	"venue-booking/pkg/token"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingEventPublisher decouples finalization from the broker; a nil
// publisher disables eventing without touching the booking path.
type BookingEventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event queue.BookingConfirmedEvent) error
}

type BookingService interface {
	// FinalizeKaraoke redeems a live hold into a confirmed booth
	// booking. Charge first, then consume the hold and write the booking
	// in one transaction; a post-charge failure is compensated with a
	// refund.
	FinalizeKaraoke(ctx context.Context, req *request.FinalizeKaraokeRequest) (*response.BookingResponse, error)

	// FinalizeTickets confirms a ticket-only purchase: priority entry,
	// a group root, or an entry linked to a root via its share token.
	// Linked purchases are capacity-checked against the root under a
	// row lock.
	FinalizeTickets(ctx context.Context, req *request.FinalizeTicketsRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	holds     HoldService
	charger   payment.Charger
	tokens    *token.Issuer
	publisher BookingEventPublisher
	config    *utils.Config
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	holds HoldService,
	charger payment.Charger,
	tokens *token.Issuer,
	publisher BookingEventPublisher,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		holds:     holds,
		charger:   charger,
		tokens:    tokens,
		publisher: publisher,
		config:    config,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) FinalizeKaraoke(ctx context.Context, req *request.FinalizeKaraokeRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Finalize karaoke validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	hold, err := s.holds.ValidateHold(ctx, req.HoldID)
	if err != nil {
		return nil, err
	}

	booth, err := s.repo.Booth.FindByID(ctx, hold.BoothID)
	if err != nil {
		return nil, err
	}
	if booth == nil {
		return nil, fmt.Errorf("%w: booth %s", ErrNotFound, hold.BoothID.String())
	}
	if req.PartySize > booth.Capacity {
		return nil, fmt.Errorf("%w: booth %s seats at most %d", ErrValidation, booth.Name, booth.Capacity)
	}

	hours, err := sessionHours(hold.StartTime, hold.EndTime)
	if err != nil {
		return nil, err
	}

	currency := s.config.Payment.Currency
	total := payment.FromCents(booth.HourlyRateCents, currency).MulInt(int64(hours)).
		Add(payment.FromCents(s.config.Pricing.TicketPriceCents, currency).MulInt(int64(req.TicketQuantity)))

	booking, err := s.newBooking(entity.BookingTypeKaraoke, hold.Venue, hold.BookingDate, req.CustomerName, req.CustomerEmail, req.CustomerPhone, req.TicketQuantity, total.Cents())
	if err != nil {
		return nil, err
	}
	booking.BoothID = &hold.BoothID
	booking.StartTime = &hold.StartTime
	booking.EndTime = &hold.EndTime

	shareToken, err := utils.GenerateShareToken()
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}
	booking.ShareToken = &shareToken

	// Charge before touching state. On decline nothing was written and
	// the hold stays live for a retry with another card.
	paymentID, err := s.charge(ctx, req.PaymentToken, total, booking.ReferenceCode)
	if err != nil {
		return nil, err
	}
	booking.PaymentID = &paymentID

	err = runInTx(ctx, s.repo.DB, func(tx pgx.Tx) error {
		if err := s.repo.Hold.ConsumeTx(ctx, tx, hold.ID); err != nil {
			if errors.Is(err, repository.ErrHoldNotActive) {
				return ErrHoldExpired
			}
			return err
		}
		if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
			return err
		}
		return s.repo.Guest.CreateBatchTx(ctx, tx, buildGuestRows(booking))
	})
	if err != nil {
		// The money moved but the booking did not: compensate.
		s.refund(ctx, paymentID, total, "finalization failed after charge")
		return nil, err
	}

	s.confirmed(ctx, booking)

	return s.toResponse(booking), nil
}

func (s *bookingService) FinalizeTickets(ctx context.Context, req *request.FinalizeTicketsRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Finalize tickets validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	venue, err := parseVenue(req.Venue)
	if err != nil {
		return nil, err
	}

	// A group token ties the purchase to a root booking; date and venue
	// are the root's, not the request's.
	var root *entity.Booking
	if req.GroupToken != nil && *req.GroupToken != "" {
		root, err = s.repo.Booking.FindByShareToken(ctx, *req.GroupToken)
		if err != nil {
			return nil, err
		}
		if root == nil || root.Status != entity.BookingStatusConfirmed {
			return nil, fmt.Errorf("%w: group link is not valid", ErrNotFound)
		}
		venue = root.Venue
	}

	bookingType, err := resolveTicketType(req.TicketType, root)
	if err != nil {
		return nil, err
	}

	bookingDate := req.BookingDate
	if root != nil {
		bookingDate = root.BookingDate
	}
	if bookingDate == "" {
		return nil, fmt.Errorf("%w: booking date is required", ErrValidation)
	}

	currency := s.config.Payment.Currency
	unitCents := s.config.Pricing.TicketPriceCents
	if root != nil && root.TicketPriceCents != nil {
		unitCents = *root.TicketPriceCents
	}
	total := payment.FromCents(unitCents, currency).MulInt(int64(req.TicketQuantity))

	// Cheap capacity pre-check before any money moves. The binding check
	// happens again inside the transaction under the root lock.
	if root != nil && root.Capacity != nil {
		remaining, err := s.repo.Booking.RemainingCapacity(ctx, root.ID)
		if err != nil {
			return nil, err
		}
		if req.TicketQuantity > remaining {
			monitoring.CapacityRejections.Inc()
			return nil, fmt.Errorf("%w: %d tickets left", ErrCapacityExceeded, remaining)
		}
	}

	booking, err := s.newBooking(bookingType, venue, bookingDate, req.CustomerName, req.CustomerEmail, req.CustomerPhone, req.TicketQuantity, total.Cents())
	if err != nil {
		return nil, err
	}
	if root != nil {
		booking.ParentBookingID = &root.ID
	} else if bookingType != entity.BookingTypePriority {
		// Organiser purchases become roots others can link against.
		// Priority tickets carry no roster, so there is nothing to share.
		shareToken, err := utils.GenerateShareToken()
		if err != nil {
			return nil, fmt.Errorf("generate share token: %w", err)
		}
		booking.ShareToken = &shareToken
	}

	paymentID, err := s.charge(ctx, req.PaymentToken, total, booking.ReferenceCode)
	if err != nil {
		return nil, err
	}
	booking.PaymentID = &paymentID

	err = runInTx(ctx, s.repo.DB, func(tx pgx.Tx) error {
		if root != nil && root.Capacity != nil {
			locked, err := s.repo.Booking.LockRootTx(ctx, tx, root.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				return fmt.Errorf("%w: group link is not valid", ErrNotFound)
			}

			taken, err := s.repo.Booking.SumActiveChildrenTx(ctx, tx, root.ID)
			if err != nil {
				return err
			}
			if taken+req.TicketQuantity > *locked.Capacity {
				monitoring.CapacityRejections.Inc()
				return fmt.Errorf("%w: %d tickets left", ErrCapacityExceeded, *locked.Capacity-taken)
			}
		}

		if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
			return err
		}
		return s.repo.Guest.CreateBatchTx(ctx, tx, buildGuestRows(booking))
	})
	if err != nil {
		s.refund(ctx, paymentID, total, "finalization failed after charge")
		return nil, err
	}

	s.confirmed(ctx, booking)

	return s.toResponse(booking), nil
}

// resolveTicketType checks the requested type against the root it links
// to. Occasion roots take occasion tickets; everything else takes group
// tickets.
func resolveTicketType(requested string, root *entity.Booking) (entity.BookingType, error) {
	t := entity.BookingType(requested)

	if root == nil {
		if t == entity.BookingTypeOccasionTicket {
			return "", fmt.Errorf("%w: occasion tickets require a group link", ErrValidation)
		}
		return t, nil
	}

	if root.BookingType == entity.BookingTypeOccasion {
		if t != entity.BookingTypeOccasionTicket {
			return "", fmt.Errorf("%w: this link sells occasion tickets", ErrValidation)
		}
		return t, nil
	}

	if t != entity.BookingTypeGroupTicket {
		return "", fmt.Errorf("%w: this link sells group tickets", ErrValidation)
	}
	return t, nil
}

func (s *bookingService) newBooking(bookingType entity.BookingType, venue entity.Venue, date, customerName string, email, phone *string, quantity int, totalCents int64) (*entity.Booking, error) {
	now := time.Now().UTC()
	id := utils.GenerateUUID()

	guestListTTL := time.Duration(s.config.Link.GuestListExpiryDays) * 24 * time.Hour
	guestListToken, err := s.tokens.Issue(id, token.PurposeGuestList, guestListTTL)
	if err != nil {
		return nil, fmt.Errorf("issue guest list token: %w", err)
	}

	return &entity.Booking{
		Base: entity.Base{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReferenceCode:  utils.GenerateReferenceCode(),
		BookingType:    bookingType,
		Venue:          venue,
		BookingDate:    date,
		TicketQuantity: quantity,
		CustomerName:   customerName,
		CustomerEmail:  email,
		CustomerPhone:  phone,
		TotalCents:     totalCents,
		Status:         entity.BookingStatusConfirmed,
		GuestListToken: guestListToken,
	}, nil
}

// buildGuestRows creates the booking's initial door-list rows. Blank
// slots are never stored; the roster pads to the ticket quantity at
// read time. Types that include the organiser start with one named row.
func buildGuestRows(booking *entity.Booking) []*entity.Guest {
	if !booking.BookingType.IncludesOrganiserSlot() {
		return nil
	}

	return []*entity.Guest{{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now().UTC(),
		},
		BookingID:   booking.ID,
		GuestName:   booking.CustomerName,
		IsOrganiser: true,
	}}
}

// newGuestRow builds one non-organiser row. The index staggers the
// timestamp so insertion order survives the created_at sort.
func newGuestRow(bookingID uuid.UUID, name string, index int) *entity.Guest {
	return &entity.Guest{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: time.Now().UTC().Add(time.Duration(index) * time.Microsecond),
		},
		BookingID: bookingID,
		GuestName: name,
	}
}

func (s *bookingService) charge(ctx context.Context, cardToken string, amount payment.Amount, reference string) (string, error) {
	paymentID, err := s.charger.Charge(ctx, cardToken, amount, reference)
	if err != nil {
		monitoring.PaymentFailures.Inc()
		s.log.Warn("Charge failed",
			zap.Error(err),
			zap.String("reference_code", reference),
			zap.String("amount", amount.String()),
		)
		if errors.Is(err, payment.ErrDeclined) {
			return "", fmt.Errorf("%w: card declined", ErrPaymentFailed)
		}
		return "", fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return paymentID, nil
}

func (s *bookingService) refund(ctx context.Context, paymentID string, amount payment.Amount, reason string) {
	if err := s.charger.Refund(ctx, paymentID, amount, reason); err != nil {
		// Needs manual reconciliation; the payment id is in the log.
		s.log.Error("Compensating refund failed",
			zap.Error(err),
			zap.String("payment_id", paymentID),
			zap.String("amount", amount.String()),
		)
	}
}

func (s *bookingService) confirmed(ctx context.Context, booking *entity.Booking) {
	monitoring.BookingsFinalized.WithLabelValues(string(booking.BookingType)).Inc()
	s.log.Info("Booking finalized",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference_code", booking.ReferenceCode),
		zap.String("booking_type", string(booking.BookingType)),
		zap.Int64("total_cents", booking.TotalCents),
	)

	if s.publisher == nil {
		return
	}
	event := queue.BookingConfirmedEvent{
		BookingID:      booking.ID.String(),
		ReferenceCode:  booking.ReferenceCode,
		BookingType:    string(booking.BookingType),
		Venue:          string(booking.Venue),
		BookingDate:    booking.BookingDate,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		TicketQuantity: booking.TicketQuantity,
		CustomerName:   booking.CustomerName,
		CustomerEmail:  booking.CustomerEmail,
		TotalCents:     booking.TotalCents,
		ConfirmedAt:    time.Now().UTC(),
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, event); err != nil {
		s.log.Warn("Booking confirmed event not published", zap.Error(err))
	}
}

func (s *bookingService) toResponse(booking *entity.Booking) *response.BookingResponse {
	resp := response.BookingToResponse(booking, shareURL(s.config.App.ShareBaseURL, booking.ShareToken))
	return &resp
}

// shareURL renders the organiser-facing link for a root's share token.
func shareURL(base string, shareToken *string) *string {
	if shareToken == nil || base == "" {
		return nil
	}
	url := fmt.Sprintf("%s/join/%s", base, *shareToken)
	return &url
}
