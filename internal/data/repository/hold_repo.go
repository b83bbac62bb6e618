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

type HoldRepository interface {
	// CreateExclusive atomically claims the hold's window. It fails
	// with ErrHoldConflict when a live hold or a confirmed booking
	// already occupies any part of [StartTime, EndTime). The store is
	// the guard: claim attempts for one booth and date are serialized
	// by a transaction-scoped advisory lock, so two racing claims with
	// overlapping but distinct windows can never both go live, and the
	// partial unique index backstops identical windows.
	CreateExclusive(ctx context.Context, hold *entity.Hold) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error)
	// Release is an idempotent no-op for unknown or terminal holds.
	Release(ctx context.Context, id uuid.UUID) error
	// ConsumeTx moves an active, unexpired hold to consumed inside the
	// caller's transaction; ErrHoldNotActive otherwise.
	ConsumeTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	FindLiveByVenueDate(ctx context.Context, venue entity.Venue, date string) ([]*entity.Hold, error)
}

type holdRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHoldRepository(db database.PgxIface, log *zap.Logger) HoldRepository {
	return &holdRepository{
		db:  db,
		log: log.With(zap.String("repository", "hold")),
	}
}

func (r *holdRepository) CreateExclusive(ctx context.Context, hold *entity.Hold) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create hold: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize claims per booth and date. Overlapping windows hash to
	// different index keys, so without the lock two concurrent inserts
	// could each pass the overlap check below without seeing the
	// other's uncommitted row. The lock releases on commit or rollback.
	_, err = tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1 || '|' || $2, 0))`,
		hold.BoothID.String(), hold.BookingDate,
	)
	if err != nil {
		return fmt.Errorf("lock booth date: %w", err)
	}

	// Purge lapsed leases on overlapping keys so they stop occupying the
	// partial unique index. Lazy expiry: no sweeper needed.
	_, err = tx.Exec(ctx, `
		UPDATE booth_holds
		SET status = 'released'
		WHERE booth_id = $1 AND booking_date = $2
		  AND status = 'active' AND expires_at <= NOW()
	`, hold.BoothID, hold.BookingDate)
	if err != nil {
		return fmt.Errorf("expire stale holds: %w", err)
	}

	// Multi-hour sessions span several hourly keys; a hold on any
	// overlapping window must block this insert. Safe under the
	// advisory lock: every competing claim for this booth and date has
	// already committed or rolled back before this read.
	var overlapping int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM booth_holds
		WHERE booth_id = $1 AND booking_date = $2
		  AND status = 'active' AND expires_at > NOW()
		  AND start_time < $4 AND end_time > $3
	`, hold.BoothID, hold.BookingDate, hold.StartTime, hold.EndTime).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("check overlapping holds: %w", err)
	}
	if overlapping > 0 {
		return ErrHoldConflict
	}

	// The partial unique index on (booth_id, booking_date, start_time,
	// end_time) WHERE status = 'active' backstops identical windows.
	tag, err := tx.Exec(ctx, `
		INSERT INTO booth_holds (id, booth_id, venue, booking_date, start_time, end_time, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (booth_id, booking_date, start_time, end_time) WHERE status = 'active'
		DO NOTHING
	`,
		hold.ID,
		hold.BoothID,
		hold.Venue,
		hold.BookingDate,
		hold.StartTime,
		hold.EndTime,
		hold.Status,
		hold.ExpiresAt,
		hold.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert hold",
			zap.Error(err),
			zap.String("booth_id", hold.BoothID.String()),
			zap.String("date", hold.BookingDate),
			zap.String("start", hold.StartTime),
		)
		return fmt.Errorf("insert hold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrHoldConflict
	}

	// Confirmed bookings are checked after the insert: once our hold row
	// is in, any finalize racing on this key has already committed and
	// its booking is visible to this read.
	var booked int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM bookings
		WHERE booth_id = $1 AND booking_date = $2
		  AND status = 'confirmed'
		  AND start_time < $4 AND end_time > $3
	`, hold.BoothID, hold.BookingDate, hold.StartTime, hold.EndTime).Scan(&booked)
	if err != nil {
		return fmt.Errorf("check booked slots: %w", err)
	}
	if booked > 0 {
		return ErrHoldConflict
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create hold: %w", err)
	}

	return nil
}

func (r *holdRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error) {
	query := `
		SELECT id, booth_id, venue, booking_date, start_time, end_time, status, expires_at, created_at
		FROM booth_holds
		WHERE id = $1
	`

	var hold entity.Hold
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hold.ID,
		&hold.BoothID,
		&hold.Venue,
		&hold.BookingDate,
		&hold.StartTime,
		&hold.EndTime,
		&hold.Status,
		&hold.ExpiresAt,
		&hold.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hold by ID",
			zap.Error(err),
			zap.String("hold_id", id.String()),
		)
		return nil, fmt.Errorf("find hold by ID %s: %w", id.String(), err)
	}

	return &hold, nil
}

func (r *holdRepository) Release(ctx context.Context, id uuid.UUID) error {
	// Releasing an unknown, expired or consumed hold is a success no-op;
	// clients race with expiry and with finalization.
	_, err := r.db.Exec(ctx,
		`UPDATE booth_holds SET status = 'released' WHERE id = $1 AND status = 'active'`,
		id,
	)
	if err != nil {
		r.log.Error("Failed to release hold",
			zap.Error(err),
			zap.String("hold_id", id.String()),
		)
		return fmt.Errorf("release hold %s: %w", id.String(), err)
	}

	return nil
}

func (r *holdRepository) ConsumeTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
		UPDATE booth_holds
		SET status = 'consumed'
		WHERE id = $1 AND status = 'active' AND expires_at > NOW()
	`, id)
	if err != nil {
		return fmt.Errorf("consume hold %s: %w", id.String(), err)
	}

	if tag.RowsAffected() == 0 {
		return ErrHoldNotActive
	}

	return nil
}

func (r *holdRepository) FindLiveByVenueDate(ctx context.Context, venue entity.Venue, date string) ([]*entity.Hold, error) {
	query := `
		SELECT id, booth_id, venue, booking_date, start_time, end_time, status, expires_at, created_at
		FROM booth_holds
		WHERE venue = $1 AND booking_date = $2
		  AND status = 'active' AND expires_at > NOW()
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, venue, date)
	if err != nil {
		r.log.Error("Failed to find live holds",
			zap.Error(err),
			zap.String("venue", string(venue)),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find live holds for %s on %s: %w", venue, date, err)
	}
	defer rows.Close()

	var holds []*entity.Hold
	for rows.Next() {
		var hold entity.Hold
		err := rows.Scan(
			&hold.ID,
			&hold.BoothID,
			&hold.Venue,
			&hold.BookingDate,
			&hold.StartTime,
			&hold.EndTime,
			&hold.Status,
			&hold.ExpiresAt,
			&hold.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan hold row", zap.Error(err))
			return nil, fmt.Errorf("scan hold row: %w", err)
		}
		holds = append(holds, &hold)
	}

	return holds, nil
}
