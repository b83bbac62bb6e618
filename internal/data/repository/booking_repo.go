package repository

import (
	"context"
	"errors"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByShareToken(ctx context.Context, shareToken string) (*entity.Booking, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Booking, error)
	FindConfirmedBoothBookings(ctx context.Context, venue entity.Venue, date string) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	// RemainingCapacity computes root capacity minus the ticket
	// quantities of non-cancelled children in one consistent read.
	RemainingCapacity(ctx context.Context, rootID uuid.UUID) (int, error)
	// LockRootTx reads the root FOR UPDATE so a capacity re-check and
	// the child insert that follows cannot interleave with another
	// finalization against the same root.
	LockRootTx(ctx context.Context, tx pgx.Tx, rootID uuid.UUID) (*entity.Booking, error)
	SumActiveChildrenTx(ctx context.Context, tx pgx.Tx, rootID uuid.UUID) (int, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference_code, booking_type, venue, parent_booking_id, booth_id,
	booking_date, start_time, end_time, ticket_quantity, capacity, occasion_name,
	ticket_price_cents, customer_name, customer_email, customer_phone, total_cents,
	payment_id, status, share_token, guest_list_token, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.ReferenceCode,
		&b.BookingType,
		&b.Venue,
		&b.ParentBookingID,
		&b.BoothID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.TicketQuantity,
		&b.Capacity,
		&b.OccasionName,
		&b.TicketPriceCents,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.TotalCents,
		&b.PaymentID,
		&b.Status,
		&b.ShareToken,
		&b.GuestListToken,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) CreateTx(ctx context.Context, tx pgx.Tx, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, reference_code, booking_type, venue, parent_booking_id, booth_id,
			booking_date, start_time, end_time, ticket_quantity, capacity, occasion_name,
			ticket_price_cents, customer_name, customer_email, customer_phone, total_cents,
			payment_id, status, share_token, guest_list_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := tx.Exec(ctx, query,
		booking.ID,
		booking.ReferenceCode,
		booking.BookingType,
		booking.Venue,
		booking.ParentBookingID,
		booking.BoothID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.TicketQuantity,
		booking.Capacity,
		booking.OccasionName,
		booking.TicketPriceCents,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.TotalCents,
		booking.PaymentID,
		booking.Status,
		booking.ShareToken,
		booking.GuestListToken,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference_code", booking.ReferenceCode),
			zap.String("booking_type", string(booking.BookingType)),
		)
		return fmt.Errorf("create booking %s: %w", booking.ReferenceCode, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByShareToken(ctx context.Context, shareToken string) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE share_token = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, shareToken))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by share token", zap.Error(err))
		return nil, fmt.Errorf("find booking by share token: %w", err)
	}

	return booking, nil
}

func (r *bookingRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE parent_booking_id = $1
		ORDER BY created_at
	`, bookingColumns)

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		r.log.Error("Failed to find child bookings",
			zap.Error(err),
			zap.String("parent_booking_id", parentID.String()),
		)
		return nil, fmt.Errorf("find children of booking %s: %w", parentID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindConfirmedBoothBookings(ctx context.Context, venue entity.Venue, date string) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE venue = $1 AND booking_date = $2
		  AND booth_id IS NOT NULL AND status = 'confirmed'
		ORDER BY start_time
	`, bookingColumns)

	rows, err := r.db.Query(ctx, query, venue, date)
	if err != nil {
		r.log.Error("Failed to find confirmed booth bookings",
			zap.Error(err),
			zap.String("venue", string(venue)),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find confirmed booth bookings for %s on %s: %w", venue, date, err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) RemainingCapacity(ctx context.Context, rootID uuid.UUID) (int, error) {
	// One aggregate query: assembling this from two reads would race
	// against a concurrent finalize.
	query := `
		SELECT COALESCE(b.capacity, 0) - COALESCE(SUM(c.ticket_quantity), 0)
		FROM bookings b
		LEFT JOIN bookings c ON c.parent_booking_id = b.id AND c.status != 'cancelled'
		WHERE b.id = $1
		GROUP BY b.capacity
	`

	var remaining int
	err := r.db.QueryRow(ctx, query, rootID).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("booking %s not found", rootID.String())
	}
	if err != nil {
		r.log.Error("Failed to compute remaining capacity",
			zap.Error(err),
			zap.String("booking_id", rootID.String()),
		)
		return 0, fmt.Errorf("remaining capacity of booking %s: %w", rootID.String(), err)
	}

	return remaining, nil
}

func (r *bookingRepository) LockRootTx(ctx context.Context, tx pgx.Tx, rootID uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 FOR UPDATE`, bookingColumns)

	booking, err := scanBooking(tx.QueryRow(ctx, query, rootID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock booking %s: %w", rootID.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) SumActiveChildrenTx(ctx context.Context, tx pgx.Tx, rootID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(ticket_quantity), 0)
		FROM bookings
		WHERE parent_booking_id = $1 AND status != 'cancelled'
	`

	var total int
	if err := tx.QueryRow(ctx, query, rootID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum children of booking %s: %w", rootID.String(), err)
	}

	return total, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}
