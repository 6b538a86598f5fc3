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
)

// PgxSnapshotRepository persists period-boundary balance checkpoints.
// Snapshots are derived data, rebuildable from the ledger at any time.
type PgxSnapshotRepository struct {
	BaseRepository
}

func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

// SaveSnapshot upserts the snapshot for its (year, period). The header
// upsert and the balance rewrite share one transaction so readers never see
// a half-written snapshot.
func (r *PgxSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Drop the previous snapshot of this period (if any) before the rewrite.
	if _, err := tx.Exec(ctx, `
		DELETE FROM snapshot_balances
		WHERE snapshot_id IN (SELECT snapshot_id FROM balance_snapshots WHERE year = $1 AND period = $2);
	`, snapshot.Year, snapshot.Period); err != nil {
		return fmt.Errorf("failed to clear snapshot balances for %d-%02d: %w", snapshot.Year, snapshot.Period, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM balance_snapshots WHERE year = $1 AND period = $2;`, snapshot.Year, snapshot.Period); err != nil {
		return fmt.Errorf("failed to clear snapshot for %d-%02d: %w", snapshot.Year, snapshot.Period, err)
	}

	headerQuery := `
		INSERT INTO balance_snapshots (snapshot_id, year, period, period_end_date, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = tx.Exec(ctx, headerQuery,
		snapshot.SnapshotID,
		snapshot.Year,
		snapshot.Period,
		snapshot.PeriodEndDate,
		snapshot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot %d-%02d: %w", snapshot.Year, snapshot.Period, err)
	}

	batch := &pgx.Batch{}
	balanceQuery := `
		INSERT INTO snapshot_balances (snapshot_id, account_id, account_code, cumulative_net)
		VALUES ($1, $2, $3, $4);
	`
	for _, bal := range snapshot.Accounts {
		batch.Queue(balanceQuery, snapshot.SnapshotID, bal.AccountID, bal.AccountCode, bal.CumulativeNet)
	}
	br := tx.SendBatch(ctx, batch)
	for range snapshot.Accounts {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert snapshot balance: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to flush snapshot balances: %w", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteSnapshotsOnOrAfter removes every snapshot whose period end date is
// on or after the boundary. Missing snapshots are not an error.
func (r *PgxSnapshotRepository) DeleteSnapshotsOnOrAfter(ctx context.Context, boundary time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM snapshot_balances
		WHERE snapshot_id IN (SELECT snapshot_id FROM balance_snapshots WHERE period_end_date >= $1);
	`, boundary); err != nil {
		return fmt.Errorf("failed to delete snapshot balances from %s: %w", boundary.Format("2006-01-02"), err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM balance_snapshots WHERE period_end_date >= $1;`, boundary); err != nil {
		return fmt.Errorf("failed to delete snapshots from %s: %w", boundary.Format("2006-01-02"), err)
	}
	return r.Commit(ctx, tx)
}

// FindSnapshot retrieves the snapshot for a specific period.
func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context, year, period int) (*domain.BalanceSnapshot, error) {
	query := `
		SELECT snapshot_id, year, period, period_end_date, created_at
		FROM balance_snapshots
		WHERE year = $1 AND period = $2;
	`
	return r.loadSnapshot(ctx, query, year, period)
}

// FindLatestSnapshotBefore retrieves the snapshot with the greatest period
// end date strictly before the boundary.
func (r *PgxSnapshotRepository) FindLatestSnapshotBefore(ctx context.Context, boundary time.Time) (*domain.BalanceSnapshot, error) {
	query := `
		SELECT snapshot_id, year, period, period_end_date, created_at
		FROM balance_snapshots
		WHERE period_end_date < $1
		ORDER BY period_end_date DESC
		LIMIT 1;
	`
	return r.loadSnapshot(ctx, query, boundary)
}

func (r *PgxSnapshotRepository) loadSnapshot(ctx context.Context, query string, args ...any) (*domain.BalanceSnapshot, error) {
	var snapshot domain.BalanceSnapshot
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&snapshot.SnapshotID,
		&snapshot.Year,
		&snapshot.Period,
		&snapshot.PeriodEndDate,
		&snapshot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance snapshot: %w", err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT account_id, account_code, cumulative_net
		FROM snapshot_balances
		WHERE snapshot_id = $1
		ORDER BY account_code;
	`, snapshot.SnapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bal domain.AccountBalance
		if err := rows.Scan(&bal.AccountID, &bal.AccountCode, &bal.CumulativeNet); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot balance: %w", err)
		}
		snapshot.Accounts = append(snapshot.Accounts, bal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot balances: %w", err)
	}
	return &snapshot, nil
}
