package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	"github.com/finbooks/gl_engine/internal/models"
)

// PgxSequenceRepository owns the per-year entry number counters and the
// singleton ledger settings row. Counters only ever increment, so numbering
// stays gap-free across concurrent service instances: a rolled-back
// allocation burns its number rather than reusing it out of order.
type PgxSequenceRepository struct {
	pool *pgxpool.Pool
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{pool: pool}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// The upsert seeds the counter at its post-allocation value and returns the
// first allocated number, so the very first call for a year yields 1.
const allocateQuery = `
	INSERT INTO entry_sequences (year, next_seq)
	VALUES ($1, 1 + $2)
	ON CONFLICT (year) DO UPDATE
	SET next_seq = entry_sequences.next_seq + $2
	RETURNING next_seq - $2;
`

// NextSequence atomically reserves the next sequence value for the year.
func (r *PgxSequenceRepository) NextSequence(ctx context.Context, year int) (int, error) {
	return allocate(ctx, r.pool, year, 1)
}

// NextSequenceInTx is NextSequence inside a caller-owned transaction.
func (r *PgxSequenceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, year int) (int, error) {
	return allocate(ctx, tx, year, 1)
}

// AllocateBlock atomically reserves size consecutive values and returns the
// first of them.
func (r *PgxSequenceRepository) AllocateBlock(ctx context.Context, year, size int) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("%w: block size must be at least 1", apperrors.ErrValidation)
	}
	return allocate(ctx, r.pool, year, size)
}

func allocate(ctx context.Context, q querier, year, size int) (int, error) {
	var first int
	if err := q.QueryRow(ctx, allocateQuery, year, size).Scan(&first); err != nil {
		return 0, fmt.Errorf("failed to allocate sequence for year %d: %w", year, mapPgError(err))
	}
	return first, nil
}

// GetSettings retrieves the singleton ledger settings row.
func (r *PgxSequenceRepository) GetSettings(ctx context.Context) (*domain.LedgerSettings, error) {
	query := `
		SELECT journal_entry_prefix, currency, fiscal_year_start_month,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_settings
		WHERE singleton = TRUE;
	`
	var m models.LedgerSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&m.JournalEntryPrefix,
		&m.Currency,
		&m.FiscalYearStartMonth,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load ledger settings: %w", err)
	}
	return &domain.LedgerSettings{
		JournalEntryPrefix:   m.JournalEntryPrefix,
		Currency:             m.Currency,
		FiscalYearStartMonth: m.FiscalYearStartMonth,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// SaveSettings upserts the singleton ledger settings row.
func (r *PgxSequenceRepository) SaveSettings(ctx context.Context, settings domain.LedgerSettings) error {
	query := `
		INSERT INTO ledger_settings (singleton, journal_entry_prefix, currency, fiscal_year_start_month,
		                             created_at, created_by, last_updated_at, last_updated_by)
		VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (singleton) DO UPDATE
		SET journal_entry_prefix = EXCLUDED.journal_entry_prefix,
		    currency = EXCLUDED.currency,
		    fiscal_year_start_month = EXCLUDED.fiscal_year_start_month,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		settings.JournalEntryPrefix,
		settings.Currency,
		settings.FiscalYearStartMonth,
		settings.CreatedAt,
		settings.CreatedBy,
		settings.LastUpdatedAt,
		settings.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger settings: %w", err)
	}
	return nil
}
