package services

import (
	"context"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// PeriodSvcFacade owns the fiscal period lifecycle: OPEN -> CLOSED -> LOCKED,
// with reopen allowed until locked. Closing a period triggers asynchronous
// snapshot generation; reopening deletes the stale snapshots of the period
// and everything after it.
type PeriodSvcFacade interface {
	InitializeFiscalYear(ctx context.Context, year int, userID string) ([]domain.FiscalPeriod, error)
	ClosePeriod(ctx context.Context, year, period int, userID string) error
	ReopenPeriod(ctx context.Context, year, period int, userID string) error
	LockPeriod(ctx context.Context, year, period int, userID string) error
	GetPeriod(ctx context.Context, year, period int) (*domain.FiscalPeriod, error)
	ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error)
}
