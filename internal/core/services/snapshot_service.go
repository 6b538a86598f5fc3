package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// snapshotService maintains the period-boundary balance checkpoints.
// Snapshots are derived, rebuildable data: generation always folds the full
// ledger history through the period end, never a previous snapshot, so a
// rebuild repairs any corruption.
type snapshotService struct {
	snapshotRepo         portsrepo.SnapshotRepository
	ledgerRepo           portsrepo.LedgerRepositoryFacade
	accountRepo          portsrepo.AccountRepositoryFacade
	periodRepo           portsrepo.PeriodRepositoryFacade
	fiscalYearStartMonth int
}

// NewSnapshotService creates the balance snapshot store.
func NewSnapshotService(snapshotRepo portsrepo.SnapshotRepository, ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade, fiscalYearStartMonth int) portssvc.SnapshotSvcFacade {
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = 1
	}
	return &snapshotService{
		snapshotRepo:         snapshotRepo,
		ledgerRepo:           ledgerRepo,
		accountRepo:          accountRepo,
		periodRepo:           periodRepo,
		fiscalYearStartMonth: fiscalYearStartMonth,
	}
}

var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

// GenerateSnapshot computes cumulative per-account nets from the beginning
// of time through the period end date and upserts the checkpoint.
func (s *snapshotService) GenerateSnapshot(ctx context.Context, year, period int) (*domain.BalanceSnapshot, error) {
	endDate, err := s.periodEndDate(ctx, year, period)
	if err != nil {
		return nil, err
	}

	nets, err := s.ledgerRepo.SumNetByAccount(ctx, portsrepo.LedgerRowFilter{To: &endDate})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger for snapshot %d-%02d: %w", year, period, err)
	}

	accountIDs := make([]string, 0, len(nets))
	for accountID := range nets {
		accountIDs = append(accountIDs, accountID)
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts for snapshot %d-%02d: %w", year, period, err)
	}

	balances := make([]domain.AccountBalance, 0, len(nets))
	for accountID, net := range nets {
		code := ""
		if acc, ok := accountsMap[accountID]; ok {
			code = acc.Code
		}
		balances = append(balances, domain.AccountBalance{
			AccountID:     accountID,
			AccountCode:   code,
			CumulativeNet: net,
		})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].AccountCode < balances[j].AccountCode })

	snapshot := domain.BalanceSnapshot{
		SnapshotID:    uuid.NewString(),
		Year:          year,
		Period:        period,
		PeriodEndDate: endDate,
		Accounts:      balances,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Balance snapshot generated",
		slog.Int("year", year), slog.Int("period", period), slog.Int("accounts", len(balances)))
	return &snapshot, nil
}

// DeleteSnapshotsFrom removes the checkpoint of the given period and every
// later one. Later checkpoints fold the ledger through later boundaries, so
// any row posted into this period is baked into all of them.
func (s *snapshotService) DeleteSnapshotsFrom(ctx context.Context, year, period int) error {
	endDate, err := s.periodEndDate(ctx, year, period)
	if err != nil {
		return err
	}
	return s.snapshotRepo.DeleteSnapshotsOnOrAfter(ctx, endDate)
}

// RebuildSnapshots regenerates the checkpoints of every non-open period in
// the year, in period order.
func (s *snapshotService) RebuildSnapshots(ctx context.Context, year int) error {
	periods, err := s.periodRepo.ListPeriods(ctx, year)
	if err != nil {
		return err
	}
	for _, p := range periods {
		if p.Status == domain.PeriodOpen {
			continue
		}
		if _, err := s.GenerateSnapshot(ctx, p.Year, p.Period); err != nil {
			return fmt.Errorf("failed to rebuild snapshot %d-%02d: %w", p.Year, p.Period, err)
		}
	}
	return nil
}

func (s *snapshotService) periodEndDate(ctx context.Context, year, period int) (time.Time, error) {
	if p, err := s.periodRepo.FindPeriod(ctx, year, period); err == nil {
		return p.EndDate, nil
	}
	if period < 1 || period > 12 {
		return time.Time{}, fmt.Errorf("period %d-%02d not found", year, period)
	}
	_, end := domain.PeriodBounds(year, period, s.fiscalYearStartMonth)
	return end, nil
}
