package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations the CRUD engine needs. It is
// satisfied by both *pgxpool.Pool and pgx.Tx, so engine code is written once
// and runs inside whatever transaction scope it is handed.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// txKey is the context key for an open transaction.
const txKey contextKey = "tx"

// TxFromContext retrieves an open transaction from the context.
// Returns nil and false if none is present.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}

// WithTxContext stores an open transaction in the context so nested
// operations participate in it instead of opening their own.
func WithTxContext(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// InTx runs fn inside exactly one transaction. If the context already
// carries an open transaction the function joins it and commit/rollback
// stay with the outer caller. Otherwise a transaction is begun, made
// available through the context passed to fn, and committed on success or
// rolled back on any error. A transaction opened here is never left in a
// partially committed state.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	if tx, ok := TxFromContext(ctx); ok {
		return fn(ctx, tx)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(WithTxContext(ctx, tx), tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
