// Package postgres is the record store. All rows are keyed by store-generated
// UUIDs; callers never pick ids.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/scoutlens/tracking-service/internal/domain"
)

type base struct {
	db      *sql.DB
	timeout time.Duration
}

// opCtx bounds a single store round-trip. A zero timeout means the caller's
// context rules alone.
func (b base) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

// mapErr folds connectivity failures into the store_unavailable class so the
// transport can report them uniformly. Anything else passes through.
func (b base) mapErr(err error) error {
	if err == nil {
		return nil
	}
	var ae *domain.AppError
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrStoreUnavailable("record store timed out")
	}
	if errors.Is(err, driver.ErrBadConn) {
		return domain.ErrStoreUnavailable("record store connection lost")
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return domain.ErrStoreUnavailable("record store unreachable")
	}
	return err
}

func (b base) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := b.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return b.mapErr(err)
	}

	defer func() {
		// Safety: in case fn panics, rollback to avoid leaked tx.
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return b.mapErr(err)
	}
	if err := tx.Commit(); err != nil {
		return b.mapErr(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}
