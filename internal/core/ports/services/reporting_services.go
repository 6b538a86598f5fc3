package services

import (
	"context"
	"time"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// ReportingSvcFacade generates financial statements from balance snapshots
// plus delta ledger rows, falling back to a full historical scan when no
// snapshot covers the query boundary.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, asOf time.Time, fiscalYear int, periodStart *time.Time) (*domain.TrialBalance, error)
	IncomeStatement(ctx context.Context, periodStart, periodEnd time.Time, fiscalYear int) (*domain.IncomeStatement, error)
	BalanceSheet(ctx context.Context, asOf time.Time, fiscalYear int) (*domain.BalanceSheet, error)
}

// SnapshotSvcFacade maintains the derived balance checkpoints.
type SnapshotSvcFacade interface {
	GenerateSnapshot(ctx context.Context, year, period int) (*domain.BalanceSnapshot, error)

	// DeleteSnapshotsFrom removes the checkpoint of the given period and of
	// every later period. Snapshots are cumulative from inception, so a
	// backdated post into a reopened period stales all later checkpoints.
	DeleteSnapshotsFrom(ctx context.Context, year, period int) error

	RebuildSnapshots(ctx context.Context, year int) error
}
