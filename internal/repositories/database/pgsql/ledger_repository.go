package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	"github.com/finbooks/gl_engine/internal/models"
	"github.com/finbooks/gl_engine/internal/utils/mapping"
)

// PgxLedgerRepository persists the append-only general ledger. Rows are
// only ever inserted; voids append reversing rows instead of deleting.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `row_id, account_id, account_code, entry_id, entry_number, entry_date,
	debit, credit, fiscal_year, fiscal_period, created_at`

func scanLedgerRow(row pgx.Row) (models.GeneralLedgerRow, error) {
	var m models.GeneralLedgerRow
	err := row.Scan(
		&m.RowID,
		&m.AccountID,
		&m.AccountCode,
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Debit,
		&m.Credit,
		&m.FiscalYear,
		&m.FiscalPeriod,
		&m.CreatedAt,
	)
	return m, err
}

// InsertRowsInTx appends fan-out rows inside tx.
func (r *PgxLedgerRepository) InsertRowsInTx(ctx context.Context, tx pgx.Tx, rows []domain.GeneralLedgerRow) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO general_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, row := range rows {
		batch.Queue(query,
			row.RowID,
			row.AccountID,
			row.AccountCode,
			row.EntryID,
			row.EntryNumber,
			row.EntryDate,
			row.Debit,
			row.Credit,
			row.FiscalYear,
			row.FiscalPeriod,
			row.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range rows {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert ledger row: %w", err)
		}
	}
	return nil
}

// FindRowsByAccount retrieves ledger rows matching either the account ID or
// the account code. Historical rows written before an account merge may
// carry only the code, so both keys are queried and deduplicated by row ID.
func (r *PgxLedgerRepository) FindRowsByAccount(ctx context.Context, accountID, accountCode string, filter portsrepo.LedgerRowFilter) ([]domain.GeneralLedgerRow, error) {
	args := []any{accountID, accountCode}
	query := `
		SELECT ` + ledgerColumns + `
		FROM general_ledger
		WHERE (account_id = $1 OR account_code = $2)
	`
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND entry_date >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND entry_date <= $%d`, len(args))
	}
	query += ` ORDER BY entry_date, entry_number, row_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows for account %s: %w", accountID, err)
	}
	defer rows.Close()

	out := []domain.GeneralLedgerRow{}
	seen := map[string]bool{}
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		if seen[m.RowID] {
			continue
		}
		seen[m.RowID] = true
		out = append(out, mapping.ToDomainLedgerRow(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return out, nil
}

// FindRowsByEntryID retrieves the fan-out rows of one journal entry.
func (r *PgxLedgerRepository) FindRowsByEntryID(ctx context.Context, entryID string) ([]domain.GeneralLedgerRow, error) {
	query := `SELECT ` + ledgerColumns + ` FROM general_ledger WHERE entry_id = $1 ORDER BY row_id;`

	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	out := []domain.GeneralLedgerRow{}
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		out = append(out, mapping.ToDomainLedgerRow(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return out, nil
}

// SumNetByAccount aggregates net (debit minus credit) per account over the
// filter range. Accounts with no rows in range are absent from the map.
func (r *PgxLedgerRepository) SumNetByAccount(ctx context.Context, filter portsrepo.LedgerRowFilter) (map[string]decimal.Decimal, error) {
	args := []any{}
	query := `SELECT account_id, COALESCE(SUM(debit - credit), 0) FROM general_ledger`
	conds := []string{}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf(`entry_date >= $%d`, len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf(`entry_date <= $%d`, len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}
	query += ` GROUP BY account_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger nets: %w", err)
	}
	defer rows.Close()

	nets := map[string]decimal.Decimal{}
	for rows.Next() {
		var accountID string
		var net decimal.Decimal
		if err := rows.Scan(&accountID, &net); err != nil {
			return nil, fmt.Errorf("failed to scan ledger aggregate: %w", err)
		}
		nets[accountID] = net
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger aggregates: %w", err)
	}
	return nets, nil
}
