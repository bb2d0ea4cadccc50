package sqlite

import (
	"context"
	"database/sql"
)

// ClearData deletes every note and folder and resets the id sequences.
// The schema is kept.
func ClearData(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("clear data", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM notes`,
		`DELETE FROM folders`,
		`DELETE FROM sqlite_sequence WHERE name IN ('notes', 'folders')`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return storageError("clear data", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageError("clear data", err)
	}
	return nil
}
