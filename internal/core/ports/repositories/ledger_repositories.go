package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// LedgerRowFilter bounds a ledger row query. Nil bounds are open-ended;
// both bounds are inclusive.
type LedgerRowFilter struct {
	From *time.Time
	To   *time.Time
}

// LedgerReader defines read operations over the append-only general ledger.
type LedgerReader interface {
	// FindRowsByAccount retrieves ledger rows matching either the account ID
	// or the legacy account code, deduplicated by row identity and ordered by
	// (entry_date, entry_number, row_id).
	FindRowsByAccount(ctx context.Context, accountID, accountCode string, filter LedgerRowFilter) ([]domain.GeneralLedgerRow, error)

	// FindRowsByEntryID retrieves the fan-out rows of a single journal entry.
	FindRowsByEntryID(ctx context.Context, entryID string) ([]domain.GeneralLedgerRow, error)

	// SumNetByAccount aggregates net (debit minus credit) per account over
	// the filter range. Accounts with no rows in range are absent.
	SumNetByAccount(ctx context.Context, filter LedgerRowFilter) (map[string]decimal.Decimal, error)
}

// LedgerWriter appends fan-out rows. Rows are only ever inserted, and only
// inside the transaction that also flips the owning entry's status.
type LedgerWriter interface {
	InsertRowsInTx(ctx context.Context, tx pgx.Tx, rows []domain.GeneralLedgerRow) error
}

// LedgerRepositoryFacade combines ledger read and write interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
