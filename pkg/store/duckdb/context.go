package duckdb

import (
	"context"
	"database/sql"
	"fmt"
)

type txKey struct{}

// WithTransaction returns a context carrying tx. Stores that find it join
// the transaction instead of writing through the pool.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// InTransaction runs fn with a context carrying a new transaction, committing
// when fn succeeds and rolling back otherwise. When ctx already carries a
// transaction fn joins it and its owner decides the outcome.
func InTransaction(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) error {
	if GetTransaction(ctx) != nil {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(WithTransaction(ctx, tx)); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
