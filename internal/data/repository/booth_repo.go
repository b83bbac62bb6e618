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

type BoothRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booth, error)
	FindByVenue(ctx context.Context, venue entity.Venue, minCapacity int) ([]*entity.Booth, error)
	// FindAvailableForSlot returns active booths with no live hold and no
	// confirmed booking overlapping [start, end) on the given date.
	FindAvailableForSlot(ctx context.Context, venue entity.Venue, date, start, end string, minCapacity int) ([]*entity.Booth, error)
}

type boothRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBoothRepository(db database.PgxIface, log *zap.Logger) BoothRepository {
	return &boothRepository{
		db:  db,
		log: log.With(zap.String("repository", "booth")),
	}
}

const boothColumns = `id, venue, name, capacity, hourly_rate_cents, is_active, created_at, updated_at`

func (r *boothRepository) scanBooth(row pgx.Row) (*entity.Booth, error) {
	var booth entity.Booth
	err := row.Scan(
		&booth.ID,
		&booth.Venue,
		&booth.Name,
		&booth.Capacity,
		&booth.HourlyRateCents,
		&booth.IsActive,
		&booth.CreatedAt,
		&booth.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booth, nil
}

func (r *boothRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booth, error) {
	query := fmt.Sprintf(`SELECT %s FROM karaoke_booths WHERE id = $1`, boothColumns)

	booth, err := r.scanBooth(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booth by ID",
			zap.Error(err),
			zap.String("booth_id", id.String()),
		)
		return nil, fmt.Errorf("find booth by ID %s: %w", id.String(), err)
	}

	return booth, nil
}

func (r *boothRepository) FindByVenue(ctx context.Context, venue entity.Venue, minCapacity int) ([]*entity.Booth, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM karaoke_booths
		WHERE venue = $1 AND is_active AND capacity >= $2
		ORDER BY name
	`, boothColumns)

	rows, err := r.db.Query(ctx, query, venue, minCapacity)
	if err != nil {
		r.log.Error("Failed to find booths by venue",
			zap.Error(err),
			zap.String("venue", string(venue)),
			zap.Int("min_capacity", minCapacity),
		)
		return nil, fmt.Errorf("find booths for venue %s: %w", venue, err)
	}
	defer rows.Close()

	return r.collectBooths(rows)
}

func (r *boothRepository) FindAvailableForSlot(ctx context.Context, venue entity.Venue, date, start, end string, minCapacity int) ([]*entity.Booth, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM karaoke_booths b
		WHERE b.venue = $1 AND b.is_active AND b.capacity >= $2
		  AND NOT EXISTS (
			SELECT 1 FROM booth_holds h
			WHERE h.booth_id = b.id AND h.booking_date = $3
			  AND h.status = 'active' AND h.expires_at > NOW()
			  AND h.start_time < $5 AND h.end_time > $4
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM bookings bk
			WHERE bk.booth_id = b.id AND bk.booking_date = $3
			  AND bk.status = 'confirmed'
			  AND bk.start_time < $5 AND bk.end_time > $4
		  )
		ORDER BY b.name
	`, boothColumns)

	rows, err := r.db.Query(ctx, query, venue, minCapacity, date, start, end)
	if err != nil {
		r.log.Error("Failed to find booths for slot",
			zap.Error(err),
			zap.String("venue", string(venue)),
			zap.String("date", date),
			zap.String("start", start),
			zap.String("end", end),
		)
		return nil, fmt.Errorf("find booths for slot %s-%s: %w", start, end, err)
	}
	defer rows.Close()

	return r.collectBooths(rows)
}

func (r *boothRepository) collectBooths(rows pgx.Rows) ([]*entity.Booth, error) {
	var booths []*entity.Booth
	for rows.Next() {
		booth, err := r.scanBooth(rows)
		if err != nil {
			r.log.Error("Failed to scan booth row", zap.Error(err))
			return nil, fmt.Errorf("scan booth row: %w", err)
		}
		booths = append(booths, booth)
	}
	return booths, nil
}
