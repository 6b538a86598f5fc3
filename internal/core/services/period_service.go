package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// periodService owns the fiscal period state machine. Snapshot generation on
// close is fire-and-forget: a snapshot failure never rolls back the close,
// because statement generation falls back to a full ledger scan until the
// snapshot materializes.
type periodService struct {
	periodRepo           portsrepo.PeriodRepositoryFacade
	snapshotSvc          portssvc.SnapshotSvcFacade
	auditSvc             portssvc.AuditSvcFacade
	fiscalYearStartMonth int
}

// NewPeriodService creates the fiscal period manager.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, snapshotSvc portssvc.SnapshotSvcFacade, auditSvc portssvc.AuditSvcFacade, fiscalYearStartMonth int) portssvc.PeriodSvcFacade {
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = 1
	}
	return &periodService{
		periodRepo:           periodRepo,
		snapshotSvc:          snapshotSvc,
		auditSvc:             auditSvc,
		fiscalYearStartMonth: fiscalYearStartMonth,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// InitializeFiscalYear creates the 12 open periods of a fiscal year.
func (s *periodService) InitializeFiscalYear(ctx context.Context, year int, userID string) ([]domain.FiscalPeriod, error) {
	now := time.Now().UTC()
	periods := make([]domain.FiscalPeriod, 12)
	for i := 0; i < 12; i++ {
		start, end := domain.PeriodBounds(year, i+1, s.fiscalYearStartMonth)
		periods[i] = domain.FiscalPeriod{
			Year:      year,
			Period:    i + 1,
			StartDate: start,
			EndDate:   end,
			Status:    domain.PeriodOpen,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	if err := s.periodRepo.SavePeriods(ctx, periods); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Fiscal year initialized", slog.Int("year", year))
	return periods, nil
}

// ClosePeriod transitions OPEN -> CLOSED and kicks off snapshot generation
// in the background.
func (s *periodService) ClosePeriod(ctx context.Context, year, period int, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if err := s.periodRepo.UpdatePeriodStatus(ctx, year, period, domain.PeriodOpen, domain.PeriodClosed, userID, now); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, userID, domain.AuditActionPeriodClosed, "fiscal_period",
		domain.PeriodRef{Year: year, Period: period}.String(),
		fmt.Sprintf("Fiscal period %d-%02d closed", year, period), nil)

	// Snapshot generation is detached from the request context so it
	// survives the HTTP response. A crash here is tolerated: the snapshot
	// can be regenerated and statements fall back to full scans meanwhile.
	snapshotCtx := middleware.ContextWithLogger(context.Background(), logger)
	go func() {
		if _, err := s.snapshotSvc.GenerateSnapshot(snapshotCtx, year, period); err != nil {
			logger.Error("Snapshot generation failed after period close",
				slog.Int("year", year), slog.Int("period", period), slog.String("error", err.Error()))
		}
	}()

	logger.Info("Fiscal period closed", slog.Int("year", year), slog.Int("period", period))
	return nil
}

// ReopenPeriod transitions CLOSED -> OPEN and deletes the now-stale
// snapshots: the reopened period's own checkpoint plus every later one,
// since all of them fold ledger history that a backdated post into this
// period would change. Locked periods cannot be reopened.
func (s *periodService) ReopenPeriod(ctx context.Context, year, period int, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	if err := s.periodRepo.UpdatePeriodStatus(ctx, year, period, domain.PeriodClosed, domain.PeriodOpen, userID, now); err != nil {
		return err
	}

	if err := s.snapshotSvc.DeleteSnapshotsFrom(ctx, year, period); err != nil {
		// The reopen already committed; statements fall back to full scans
		// once the delete eventually lands, and the close that follows this
		// reopen regenerates the checkpoint.
		logger.Warn("Failed to delete stale snapshots after reopen",
			slog.Int("year", year), slog.Int("period", period), slog.String("error", err.Error()))
	}

	s.auditSvc.Record(ctx, userID, domain.AuditActionPeriodReopen, "fiscal_period",
		domain.PeriodRef{Year: year, Period: period}.String(),
		fmt.Sprintf("Fiscal period %d-%02d reopened", year, period), nil)

	logger.Info("Fiscal period reopened", slog.Int("year", year), slog.Int("period", period))
	return nil
}

// LockPeriod transitions CLOSED -> LOCKED. Terminal.
func (s *periodService) LockPeriod(ctx context.Context, year, period int, userID string) error {
	now := time.Now().UTC()

	if err := s.periodRepo.UpdatePeriodStatus(ctx, year, period, domain.PeriodClosed, domain.PeriodLocked, userID, now); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, userID, domain.AuditActionPeriodLocked, "fiscal_period",
		domain.PeriodRef{Year: year, Period: period}.String(),
		fmt.Sprintf("Fiscal period %d-%02d locked", year, period), nil)

	middleware.GetLoggerFromCtx(ctx).Info("Fiscal period locked", slog.Int("year", year), slog.Int("period", period))
	return nil
}

// GetPeriod retrieves one fiscal period.
func (s *periodService) GetPeriod(ctx context.Context, year, period int) (*domain.FiscalPeriod, error) {
	return s.periodRepo.FindPeriod(ctx, year, period)
}

// ListPeriods retrieves all periods of a fiscal year.
func (s *periodService) ListPeriods(ctx context.Context, year int) ([]domain.FiscalPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, year)
}
