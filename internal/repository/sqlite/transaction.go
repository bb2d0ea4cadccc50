package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/repositories"
)

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	db      *sql.DB
	timeout time.Duration
	logger  zerolog.Logger
}

// NewTransactionManager creates a new transaction manager. A positive timeout
// bounds how long a single transaction may run.
func NewTransactionManager(db *sql.DB, timeout time.Duration, logger zerolog.Logger) repositories.TransactionManager {
	return &TransactionManager{db: db, timeout: timeout, logger: logger}
}

// ExecTx executes a function within a transaction. A call made while ctx
// already carries a transaction joins it.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if GetTx(ctx) != nil {
		return fn(ctx)
	}

	if tm.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tm.timeout)
		defer cancel()
	}

	start := time.Now()
	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}

	// Defer rollback - safe even if commit succeeds
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			tm.logger.Warn().Err(err).Msg("rollback failed")
		}
	}()

	if err := fn(SetTx(ctx, tx)); err != nil {
		if IsBusy(err) {
			tm.logger.Warn().Err(err).Dur("waited", time.Since(start)).Msg("transaction aborted by lock contention")
		}
		if ctxErr := ctx.Err(); ctxErr != nil && domain.KindOf(err) != domain.KindStorage {
			return storageError("transaction", ctxErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit transaction", err)
	}

	tm.logger.Debug().Dur("duration", time.Since(start)).Msg("transaction committed")
	return nil
}
