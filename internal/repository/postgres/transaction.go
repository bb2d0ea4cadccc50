package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/repositories"
)

// folderWriteLockKey is the advisory lock every mutating transaction takes,
// so structural changes to the folder tree run one at a time.
const folderWriteLockKey int64 = 0x70696e6b // "pink"

// TransactionManager implements the TransactionManager interface
type TransactionManager struct {
	pool    *pgxpool.Pool
	timeout time.Duration
	logger  zerolog.Logger
}

// NewTransactionManager creates a new transaction manager. A positive timeout
// bounds how long a single transaction may run.
func NewTransactionManager(pool *pgxpool.Pool, timeout time.Duration, logger zerolog.Logger) repositories.TransactionManager {
	return &TransactionManager{pool: pool, timeout: timeout, logger: logger}
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
	tx, err := tm.pool.Begin(ctx)
	if err != nil {
		return storageError("begin transaction", err)
	}

	// Defer rollback - safe even if commit succeeds
	defer func() {
		if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			tm.logger.Warn().Err(err).Msg("rollback failed")
		}
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, folderWriteLockKey); err != nil {
		return storageError("acquire folder write lock", err)
	}

	// Store transaction in context so repositories can access it
	if err := fn(SetTx(ctx, tx)); err != nil {
		if IsPgContentionError(err) {
			tm.logger.Warn().Err(err).Dur("waited", time.Since(start)).Msg("transaction aborted by lock contention")
		}
		if ctxErr := ctx.Err(); ctxErr != nil && domain.KindOf(err) != domain.KindStorage {
			return storageError("transaction", ctxErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return storageError("commit transaction", err)
	}

	tm.logger.Debug().Dur("duration", time.Since(start)).Msg("transaction committed")
	return nil
}
