// Package ledger reads the merchant's prepaid balance from the billing database.
//
// The balance lives in the prepaid_accounts table owned by billing; labels are
// charged by the carrier aggregator and billing keeps the table current. This
// adapter only reads it.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	_ "github.com/lib/pq"
	"golang.org/x/sync/singleflight"
)

const queryTimeout = 10 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS prepaid_accounts (
	account_id    TEXT PRIMARY KEY,
	balance_cents BIGINT NOT NULL DEFAULT 0,
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresLedger implements ports.BalanceLedger for one prepaid account.
//
// Concurrent Balance calls share one query: the review screen and the
// confirmation check often ask at the same moment.
type PostgresLedger struct {
	db        *sql.DB
	accountID string
	sf        singleflight.Group
}

// Open connects with the lib/pq driver and pings the database.
func Open(ctx context.Context, dsn, accountID string) (*PostgresLedger, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger db: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping ledger db: %w", err)
	}

	return NewPostgresLedger(db, accountID), nil
}

// NewPostgresLedger wraps an open connection.
func NewPostgresLedger(db *sql.DB, accountID string) *PostgresLedger {
	return &PostgresLedger{db: db, accountID: accountID}
}

// EnsureSchema creates the prepaid_accounts table when it is missing.
func (l *PostgresLedger) EnsureSchema(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, schema)
	return err
}

// Balance returns the current balance of the configured account, or an
// errs.ObjectNotFoundError when billing never opened it.
func (l *PostgresLedger) Balance(ctx context.Context) (kernel.Money, error) {
	if err := ctx.Err(); err != nil {
		return kernel.Money{}, err
	}

	ch := l.sf.DoChan("balance:"+l.accountID, func() (any, error) {
		// Shared by every waiting caller; one caller leaving must not fail the rest.
		queryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), queryTimeout)
		defer cancel()
		return l.readBalance(queryCtx)
	})

	select {
	case <-ctx.Done():
		return kernel.Money{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return kernel.Money{}, res.Err
		}
		return res.Val.(kernel.Money), nil
	}
}

func (l *PostgresLedger) readBalance(ctx context.Context) (kernel.Money, error) {
	var cents int64
	err := l.db.QueryRowContext(ctx,
		`SELECT balance_cents FROM prepaid_accounts WHERE account_id = $1`,
		l.accountID,
	).Scan(&cents)
	if errors.Is(err, sql.ErrNoRows) {
		return kernel.Money{}, errs.NewObjectNotFoundError("prepaidAccount", l.accountID)
	}
	if err != nil {
		return kernel.Money{}, fmt.Errorf("failed to read balance: %w", err)
	}

	return kernel.NewMoney(cents), nil
}

// Close closes the underlying connection pool.
func (l *PostgresLedger) Close() error {
	return l.db.Close()
}
