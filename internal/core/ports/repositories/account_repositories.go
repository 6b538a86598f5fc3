package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique account code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts at once, keyed by ID.
	// Missing IDs are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts sorted by code, optionally
	// including deactivated ones.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account. Duplicate codes fail with ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates name, sub-type and description of an account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deletes an account. Ledger history stays intact.
	DeactivateAccount(ctx context.Context, accountID, userID string, at time.Time) error
}

// AccountTxReader defines account reads that participate in an outer
// database transaction.
type AccountTxReader interface {
	// FindAccountsByIDsInTx retrieves accounts inside the given transaction,
	// so callers composing a larger atomic write avoid a stale read.
	FindAccountsByIDsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTxReader
}
