package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const driverName = "sqlite3"

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB     *sql.DB
	Logger zerolog.Logger
}

// DSN builds a go-sqlite3 connection string for the database file at path.
//
// Foreign keys are switched on for every connection (folder cascade and the
// notes RESTRICT rule depend on them). Transactions begin IMMEDIATE so a writer
// takes the database lock up front instead of failing at its first write, and
// busyTimeout bounds how long a writer waits for that lock.
func DSN(path string, busyTimeout time.Duration) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_foreign_keys=1&_busy_timeout=%d&_txlock=immediate&_journal_mode=WAL",
		path, sep, busyTimeout.Milliseconds())
}

// Open migrates and opens the database at path.
//
// The handle is limited to a single connection: every mutating transaction
// is serialized, and readers outside a transaction wait for the writer to
// commit, so nobody observes a half-rewritten subtree.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*sql.DB, error) {
	dsn := DSN(path, busyTimeout)

	if err := Migrate(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
