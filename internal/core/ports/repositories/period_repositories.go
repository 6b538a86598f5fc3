package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// PeriodReader defines read operations for fiscal period data.
type PeriodReader interface {
	// FindPeriod retrieves a fiscal period by year and period number.
	FindPeriod(ctx context.Context, year, period int) (*domain.FiscalPeriod, error)

	// FindPeriodForDate retrieves the period whose boundaries contain the date.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)

	// FindPeriodForDateInTx is FindPeriodForDate inside a caller-owned
	// transaction, row-locked so a concurrent close cannot race a posting.
	FindPeriodForDateInTx(ctx context.Context, tx pgx.Tx, date time.Time) (*domain.FiscalPeriod, error)

	// ListPeriods retrieves all periods of a fiscal year in period order.
	ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error)
}

// PeriodWriter defines write operations for fiscal period data.
type PeriodWriter interface {
	// SavePeriods persists the periods of a newly initialized fiscal year.
	SavePeriods(ctx context.Context, periods []domain.FiscalPeriod) error

	// UpdatePeriodStatus conditionally transitions a period from one status
	// to another. Returns ErrNotFound if the period does not exist, and
	// ErrInvalidTransition if its current status is not `from`.
	UpdatePeriodStatus(ctx context.Context, year, period int, from, to domain.PeriodStatus, userID string, at time.Time) error
}

// PeriodRepositoryFacade combines period read and write interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
