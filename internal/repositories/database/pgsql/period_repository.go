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
)

// PgxPeriodRepository persists fiscal period configuration.
type PgxPeriodRepository struct {
	pool *pgxpool.Pool
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{pool: pool}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `year, period, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (models.FiscalPeriod, error) {
	var m models.FiscalPeriod
	err := row.Scan(
		&m.Year,
		&m.Period,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func toDomainPeriod(m models.FiscalPeriod) domain.FiscalPeriod {
	return domain.FiscalPeriod{
		Year:      m.Year,
		Period:    m.Period,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Status:    domain.PeriodStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindPeriod retrieves a fiscal period by year and period number.
func (r *PgxPeriodRepository) FindPeriod(ctx context.Context, year, period int) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE year = $1 AND period = $2;`

	m, err := scanPeriod(r.pool.QueryRow(ctx, query, year, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period %d-%02d: %w", year, period, err)
	}
	d := toDomainPeriod(m)
	return &d, nil
}

// FindPeriodForDate retrieves the period whose boundaries contain the date.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	return r.findPeriodForDate(ctx, r.pool, date, false)
}

// FindPeriodForDateInTx is FindPeriodForDate with a row lock, so a posting
// in flight blocks a concurrent period close until it commits.
func (r *PgxPeriodRepository) FindPeriodForDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.FiscalPeriod, error) {
	return r.findPeriodForDate(ctx, tx, date, true)
}

func (r *PgxPeriodRepository) findPeriodForDate(ctx context.Context, q querier, date time.Time, lock bool) (*domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE start_date <= $1 AND end_date >= $1`
	if lock {
		query += ` FOR SHARE`
	}
	query += `;`

	m, err := scanPeriod(q.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period for date %s: %w", date.Format("2006-01-02"), err)
	}
	d := toDomainPeriod(m)
	return &d, nil
}

// ListPeriods retrieves all periods of a fiscal year in period order.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM fiscal_periods WHERE year = $1 ORDER BY period;`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query fiscal periods for year %d: %w", year, err)
	}
	defer rows.Close()

	periods := []domain.FiscalPeriod{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiscal period: %w", err)
		}
		periods = append(periods, toDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiscal periods: %w", err)
	}
	return periods, nil
}

// SavePeriods persists the periods of a newly initialized fiscal year.
func (r *PgxPeriodRepository) SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO fiscal_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, p := range periods {
		batch.Queue(query,
			p.Year,
			p.Period,
			p.StartDate,
			p.EndDate,
			string(p.Status),
			p.CreatedAt,
			p.CreatedBy,
			p.LastUpdatedAt,
			p.LastUpdatedBy,
		)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for _, p := range periods {
		if _, err := br.Exec(); err != nil {
			if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
				return fmt.Errorf("%w: fiscal period %d-%02d", apperrors.ErrDuplicate, p.Year, p.Period)
			}
			return fmt.Errorf("failed to insert fiscal period %d-%02d: %w", p.Year, p.Period, err)
		}
	}
	return nil
}

// UpdatePeriodStatus conditionally transitions a period. The status
// predicate in the WHERE clause makes the transition atomic: a concurrent
// transition loses and surfaces as ErrInvalidTransition.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, year, period int, from, to domain.PeriodStatus, userID string, at time.Time) error {
	query := `
		UPDATE fiscal_periods
		SET status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE year = $1 AND period = $2 AND status = $3;
	`
	tag, err := r.pool.Exec(ctx, query, year, period, string(from), string(to), at, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of fiscal period %d-%02d: %w", year, period, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguish a missing period from a wrong current status.
	current, err := r.FindPeriod(ctx, year, period)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: fiscal period %d-%02d is %s, expected %s",
		apperrors.ErrInvalidTransition, year, period, current.Status, from)
}
