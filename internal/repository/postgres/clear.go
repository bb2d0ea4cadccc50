package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ClearData deletes every note and folder and resets the id sequences.
// The schema is kept.
func ClearData(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `TRUNCATE notes, folders RESTART IDENTITY CASCADE`); err != nil {
		return storageError("clear data", err)
	}
	return nil
}
