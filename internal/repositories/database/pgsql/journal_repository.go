package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	"github.com/finbooks/gl_engine/internal/models"
	"github.com/finbooks/gl_engine/internal/utils/mapping"
	"github.com/finbooks/gl_engine/internal/utils/pagination"
)

// PgxJournalRepository persists journal entry headers and lines.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_number, entry_date, description, source, source_id, source_ref,
	total_debit, total_credit, status, fiscal_year, fiscal_period,
	posted_at, posted_by, voided_at, voided_by, void_reason,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_number, account_id, account_code, account_name,
	debit, credit, description, department_id, employee_id, project_id`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Source,
		&m.SourceID,
		&m.SourceRef,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.FiscalYear,
		&m.FiscalPeriod,
		&m.PostedAt,
		&m.PostedBy,
		&m.VoidedAt,
		&m.VoidedBy,
		&m.VoidReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNumber,
		&m.AccountID,
		&m.AccountCode,
		&m.AccountName,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.DepartmentID,
		&m.EmployeeID,
		&m.ProjectID,
	)
	return m, err
}

// SaveEntryInTx persists the entry header and its lines inside tx. The
// fan-out rows belong to the ledger writer and are inserted separately
// within the same transaction.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.Description,
		m.Source,
		m.SourceID,
		m.SourceRef,
		m.TotalDebit,
		m.TotalCredit,
		m.Status,
		m.FiscalYear,
		m.FiscalPeriod,
		m.PostedAt,
		m.PostedBy,
		m.VoidedAt,
		m.VoidedBy,
		m.VoidReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: entry number %s", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range entry.Lines {
		lm := mapping.ToModelEntryLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.EntryID,
			lm.LineNumber,
			lm.AccountID,
			lm.AccountCode,
			lm.AccountName,
			lm.Debit,
			lm.Credit,
			lm.Description,
			lm.DepartmentID,
			lm.EmployeeID,
			lm.ProjectID,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert journal entry line for %s: %w", m.EntryID, err)
		}
	}
	return nil
}

// FindEntryByID retrieves an entry header by ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindEntryForUpdate retrieves and row-locks an entry header inside tx so a
// concurrent post or void serializes on the row.
func (r *PgxJournalRepository) FindEntryForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`

	m, err := scanEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

// FindLinesByEntryID retrieves an entry's lines in line-number order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	return queryEntryLines(ctx, r.Pool, entryID)
}

// FindLinesByEntryIDInTx retrieves an entry's lines through tx.
func (r *PgxJournalRepository) FindLinesByEntryIDInTx(ctx context.Context, tx pgx.Tx, entryID string) ([]domain.JournalEntryLine, error) {
	return queryEntryLines(ctx, tx, entryID)
}

func queryEntryLines(ctx context.Context, q querier, entryID string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_number;`

	rows, err := q.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry line: %w", err)
		}
		lines = append(lines, mapping.ToDomainEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry lines: %w", err)
	}
	return lines, nil
}

// MarkEntryPosted flips DRAFT to POSTED inside tx. The status predicate in
// the WHERE clause makes a lost-update impossible even without the row lock.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, tx pgx.Tx, entryID, userID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'POSTED', posted_at = $2, posted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query, entryID, at, userID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s posted: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not in DRAFT status", apperrors.ErrInvalidTransition, entryID)
	}
	return nil
}

// MarkEntryVoided flips POSTED to VOID inside tx.
func (r *PgxJournalRepository) MarkEntryVoided(ctx context.Context, tx pgx.Tx, entryID, userID, reason string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'VOID', voided_at = $2, voided_by = $3, void_reason = $4, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'POSTED';
	`
	tag, err := tx.Exec(ctx, query, entryID, at, userID, reason)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s voided: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not in POSTED status", apperrors.ErrInvalidTransition, entryID)
	}
	return nil
}

// ListEntries retrieves a page of entries, newest first, using token-based
// pagination on (entry_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, includeVoid bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{}
	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	conds := []string{}
	if !includeVoid {
		conds = append(conds, `status <> 'VOID'`)
	}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, entryDate, createdAt)
		conds = append(conds, fmt.Sprintf(`(entry_date, created_at) < ($%d, $%d)`, len(args)-1, len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entries: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// ListPostedEntriesBetween retrieves posted entries with their lines in a
// date range, oldest first.
func (r *PgxJournalRepository) ListPostedEntriesBetween(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE status = 'POSTED' AND entry_date >= $1 AND entry_date <= $2
		ORDER BY entry_date, entry_number;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posted entry: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted entries: %w", err)
	}

	for i := range entries {
		lines, err := r.FindLinesByEntryID(ctx, entries[i].EntryID)
		if err != nil {
			return nil, err
		}
		entries[i].Lines = lines
	}
	return entries, nil
}
