package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// SequenceRepository owns the per-year entry number counters and the tenant
// settings document. Counters are mutated only through atomic increments so
// numbering stays gap-free across concurrent service instances.
type SequenceRepository interface {
	// NextSequence atomically reserves and returns the next sequence value
	// for the year.
	NextSequence(ctx context.Context, year int) (int, error)

	// NextSequenceInTx is NextSequence inside a caller-owned transaction, so
	// a failed entry write releases nothing outside its own rollback scope.
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, year int) (int, error)

	// AllocateBlock atomically reserves size consecutive sequence values and
	// returns the first of them. Used by batch-posting flows.
	AllocateBlock(ctx context.Context, year, size int) (int, error)

	// GetSettings retrieves the singleton ledger settings document.
	GetSettings(ctx context.Context) (*domain.LedgerSettings, error)

	// SaveSettings upserts the singleton ledger settings document.
	SaveSettings(ctx context.Context, settings domain.LedgerSettings) error
}
