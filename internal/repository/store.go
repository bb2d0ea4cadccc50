// Package repository opens the storage engine selected by configuration.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"pinknote/internal/config"
	"pinknote/internal/domain/repositories"
	"pinknote/internal/repository/postgres"
	"pinknote/internal/repository/sqlite"
)

// Store bundles the repositories of one migrated database
type Store struct {
	Folders   repositories.FolderRepository
	Notes     repositories.NoteRepository
	TxManager repositories.TransactionManager
	Driver    string

	db    *sql.DB
	pool  *pgxpool.Pool
	reset func() error
}

// Open migrates and opens the database named by cfg.DBDriver and cfg.DatabaseURL.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DatabaseURL, cfg.BusyTimeout)
		if err != nil {
			return nil, err
		}
		repoConfig := &sqlite.RepositoryConfig{DB: db, Logger: logger}
		return &Store{
			Folders:   sqlite.NewFolderRepository(repoConfig),
			Notes:     sqlite.NewNoteRepository(repoConfig),
			TxManager: sqlite.NewTransactionManager(db, cfg.TxTimeout, logger),
			Driver:    cfg.DBDriver,
			db:        db,
			reset: func() error {
				return sqlite.Reset(sqlite.DSN(cfg.DatabaseURL, cfg.BusyTimeout))
			},
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		repoConfig := &postgres.RepositoryConfig{Pool: pool, Logger: logger}
		return &Store{
			Folders:   postgres.NewFolderRepository(repoConfig),
			Notes:     postgres.NewNoteRepository(repoConfig),
			TxManager: postgres.NewTransactionManager(pool, cfg.TxTimeout, logger),
			Driver:    cfg.DBDriver,
			pool:      pool,
			reset: func() error {
				return postgres.Reset(cfg.DatabaseURL)
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want %q or %q)", cfg.DBDriver, config.DriverSQLite, config.DriverPostgres)
	}
}

// ClearData deletes every note and folder, keeping the schema
func (s *Store) ClearData(ctx context.Context) error {
	if s.pool != nil {
		return postgres.ClearData(ctx, s.pool)
	}
	return sqlite.ClearData(ctx, s.db)
}

// Reset drops the schema and migrates it again from scratch
func (s *Store) Reset() error {
	return s.reset()
}

// Close releases the underlying connections
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}
