package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines the operations for managing database transactions.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits the transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back the transaction. Safe to defer after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
