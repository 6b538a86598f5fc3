package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entry data.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry in line-number order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// FindLinesByEntryIDInTx is FindLinesByEntryID through the given
	// transaction, so lifecycle transitions read every input inside the
	// same transaction that flips the status.
	FindLinesByEntryIDInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]domain.JournalEntryLine, error)

	// ListEntries retrieves a paginated list of entries using token-based
	// pagination, newest first. Returns the entries, a token for the next
	// page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string, includeVoid bool) ([]domain.JournalEntry, *string, error)

	// ListPostedEntriesBetween retrieves posted entries (with lines) in a
	// date range, oldest first. Read-only feed for export adapters.
	ListPostedEntriesBetween(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entry data. Status
// transitions happen inside a caller-owned transaction so the status check,
// the fan-out and the flip commit or fail together.
type JournalWriter interface {
	// SaveEntryInTx persists an entry header and its lines inside the given
	// transaction. Fan-out rows are inserted separately by the ledger writer.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// FindEntryForUpdate retrieves and row-locks an entry header inside the
	// given transaction, guarding against a concurrent post or void.
	FindEntryForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error)

	// MarkEntryPosted flips DRAFT -> POSTED inside the given transaction.
	MarkEntryPosted(ctx context.Context, tx pgx.Tx, entryID, userID string, at time.Time) error

	// MarkEntryVoided flips POSTED -> VOID inside the given transaction.
	MarkEntryVoided(ctx context.Context, tx pgx.Tx, entryID, userID, reason string, at time.Time) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction
// management, letting the engine compose atomic multi-row writes.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
