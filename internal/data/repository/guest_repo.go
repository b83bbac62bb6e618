package repository

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GuestRepository interface {
	CreateBatchTx(ctx context.Context, tx pgx.Tx, guests []*entity.Guest) error
	// FindByBookingID returns guests organiser-first, then by creation order.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Guest, error)
	FindByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]*entity.Guest, error)
	// ReplaceNonOrganisersTx deletes every non-organiser row of the
	// booking and inserts the given replacements. Full replace, not a
	// diff; concurrent saves are last-write-wins.
	ReplaceNonOrganisersTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, guests []*entity.Guest) error
	UpdateOrganiserNameTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, name string) error
}

type guestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGuestRepository(db database.PgxIface, log *zap.Logger) GuestRepository {
	return &guestRepository{
		db:  db,
		log: log.With(zap.String("repository", "guest")),
	}
}

const guestColumns = `id, booking_id, guest_name, is_organiser, created_at`

func (r *guestRepository) CreateBatchTx(ctx context.Context, tx pgx.Tx, guests []*entity.Guest) error {
	if len(guests) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO booking_guests (id, booking_id, guest_name, is_organiser, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, guest := range guests {
		batch.Queue(query, guest.ID, guest.BookingID, guest.GuestName, guest.IsOrganiser, guest.CreatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range guests {
		if _, err := results.Exec(); err != nil {
			r.log.Error("Failed to insert guest batch", zap.Error(err))
			return fmt.Errorf("insert guest batch: %w", err)
		}
	}

	return nil
}

func (r *guestRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Guest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM booking_guests
		WHERE booking_id = $1
		ORDER BY is_organiser DESC, created_at
	`, guestColumns)

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find guests by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find guests of booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	return collectGuests(rows)
}

func (r *guestRepository) FindByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]*entity.Guest, error) {
	grouped := make(map[uuid.UUID][]*entity.Guest, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return grouped, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM booking_guests
		WHERE booking_id = ANY($1)
		ORDER BY is_organiser DESC, created_at
	`, guestColumns)

	rows, err := r.db.Query(ctx, query, bookingIDs)
	if err != nil {
		r.log.Error("Failed to find guests by booking IDs", zap.Error(err))
		return nil, fmt.Errorf("find guests of %d bookings: %w", len(bookingIDs), err)
	}
	defer rows.Close()

	guests, err := collectGuests(rows)
	if err != nil {
		return nil, err
	}

	for _, guest := range guests {
		grouped[guest.BookingID] = append(grouped[guest.BookingID], guest)
	}

	return grouped, nil
}

func (r *guestRepository) ReplaceNonOrganisersTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, guests []*entity.Guest) error {
	_, err := tx.Exec(ctx,
		`DELETE FROM booking_guests WHERE booking_id = $1 AND NOT is_organiser`,
		bookingID,
	)
	if err != nil {
		return fmt.Errorf("delete non-organiser guests of booking %s: %w", bookingID.String(), err)
	}

	return r.CreateBatchTx(ctx, tx, guests)
}

func (r *guestRepository) UpdateOrganiserNameTx(ctx context.Context, tx pgx.Tx, bookingID uuid.UUID, name string) error {
	_, err := tx.Exec(ctx,
		`UPDATE booking_guests SET guest_name = $2 WHERE booking_id = $1 AND is_organiser`,
		bookingID, name,
	)
	if err != nil {
		return fmt.Errorf("update organiser name of booking %s: %w", bookingID.String(), err)
	}

	return nil
}

func collectGuests(rows pgx.Rows) ([]*entity.Guest, error) {
	var guests []*entity.Guest
	for rows.Next() {
		var guest entity.Guest
		err := rows.Scan(
			&guest.ID,
			&guest.BookingID,
			&guest.GuestName,
			&guest.IsOrganiser,
			&guest.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan guest row: %w", err)
		}
		guests = append(guests, &guest)
	}
	return guests, nil
}
