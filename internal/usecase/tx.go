package usecase

import (
	"context"
	"fmt"

	"venue-booking/pkg/database"

	"github.com/jackc/pgx/v5"
)

// runInTx runs fn inside a single database transaction. It commits when
// fn returns nil and rolls back otherwise; fn's error passes through
// unwrapped so callers can errors.Is on it.
func runInTx(ctx context.Context, db database.PgxIface, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
