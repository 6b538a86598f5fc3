package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// reportingService computes statements from snapshot-plus-delta queries.
// The latest snapshot strictly before a boundary bounds the ledger scan to
// rows written after it; with no snapshot, the full history is folded.
type reportingService struct {
	ledgerRepo           portsrepo.LedgerRepositoryFacade
	accountRepo          portsrepo.AccountRepositoryFacade
	snapshotRepo         portsrepo.SnapshotRepository
	fiscalYearStartMonth int
}

// NewReportingService creates the statement generator.
func NewReportingService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, snapshotRepo portsrepo.SnapshotRepository, fiscalYearStartMonth int) portssvc.ReportingSvcFacade {
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = 1
	}
	return &reportingService{
		ledgerRepo:           ledgerRepo,
		accountRepo:          accountRepo,
		snapshotRepo:         snapshotRepo,
		fiscalYearStartMonth: fiscalYearStartMonth,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists per-account opening, period and closing nets as of a
// date. Accounts whose three nets all round to zero are skipped; the debit
// column total must equal the credit column total.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time, fiscalYear int, periodStart *time.Time) (*domain.TrialBalance, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}

	boundary := s.fiscalYearStart(fiscalYear)
	if periodStart != nil {
		boundary = periodStart.UTC()
	}

	openingNets, err := s.cumulativeNetsThrough(ctx, boundary.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	periodNets, err := s.ledgerRepo.SumNetByAccount(ctx, portsrepo.LedgerRowFilter{From: &boundary, To: &asOf})
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		AsOf:        asOf,
		FiscalYear:  fiscalYear,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, acc := range accounts {
		opening := openingNets[acc.AccountID]
		period := periodNets[acc.AccountID]
		closing := opening.Add(period)
		if opening.Round(2).IsZero() && period.Round(2).IsZero() && closing.Round(2).IsZero() {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			OpeningNet:  opening,
			PeriodNet:   period,
		}
		if closing.IsNegative() {
			row.Credit = closing.Neg()
			tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		} else {
			row.Debit = closing
			tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		}
		tb.Rows = append(tb.Rows, row)
	}
	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].AccountCode < tb.Rows[j].AccountCode })

	if tb.TotalDebit.Sub(tb.TotalCredit).Abs().GreaterThan(domain.BalanceTolerance) {
		middleware.GetLoggerFromCtx(ctx).Error("Trial balance out of balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()))
		return nil, fmt.Errorf("%w: trial balance debits %s do not equal credits %s",
			apperrors.ErrInternal, tb.TotalDebit.String(), tb.TotalCredit.String())
	}
	return tb, nil
}

// IncomeStatement sums revenue and expense nets within the period. Revenue
// is credit-normal, so its raw net is negated for display.
func (s *reportingService) IncomeStatement(ctx context.Context, periodStart, periodEnd time.Time, fiscalYear int) (*domain.IncomeStatement, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}
	periodNets, err := s.ledgerRepo.SumNetByAccount(ctx, portsrepo.LedgerRowFilter{From: &periodStart, To: &periodEnd})
	if err != nil {
		return nil, err
	}

	stmt := &domain.IncomeStatement{
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		FiscalYear:    fiscalYear,
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, acc := range accounts {
		net, ok := periodNets[acc.AccountID]
		if !ok || net.Round(2).IsZero() {
			continue
		}
		switch acc.AccountType {
		case domain.Revenue:
			amount := net.Neg()
			stmt.Revenue = append(stmt.Revenue, domain.StatementLine{
				AccountID: acc.AccountID, AccountCode: acc.Code, AccountName: acc.Name, Amount: amount,
			})
			stmt.TotalRevenue = stmt.TotalRevenue.Add(amount)
		case domain.Expense:
			stmt.Expenses = append(stmt.Expenses, domain.StatementLine{
				AccountID: acc.AccountID, AccountCode: acc.Code, AccountName: acc.Name, Amount: net,
			})
			stmt.TotalExpenses = stmt.TotalExpenses.Add(net)
		}
	}
	sortStatementLines(stmt.Revenue)
	sortStatementLines(stmt.Expenses)
	stmt.NetIncome = stmt.TotalRevenue.Sub(stmt.TotalExpenses)
	return stmt, nil
}

// BalanceSheet sums asset/liability/equity nets from inception through asOf
// and folds fiscal-year-to-date earnings into equity as the implicit Current
// Year Earnings line, then asserts A = L + E within tolerance.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time, fiscalYear int) (*domain.BalanceSheet, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}
	cumulativeNets, err := s.cumulativeNetsThrough(ctx, asOf)
	if err != nil {
		return nil, err
	}

	fyStart := s.fiscalYearStart(fiscalYear)
	ytdNets, err := s.ledgerRepo.SumNetByAccount(ctx, portsrepo.LedgerRowFilter{From: &fyStart, To: &asOf})
	if err != nil {
		return nil, err
	}

	bs := &domain.BalanceSheet{
		AsOf:             asOf,
		FiscalYear:       fiscalYear,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	earnings := decimal.Zero
	for _, acc := range accounts {
		switch acc.AccountType {
		case domain.Asset:
			net := cumulativeNets[acc.AccountID]
			if net.Round(2).IsZero() {
				continue
			}
			bs.Assets = append(bs.Assets, domain.StatementLine{
				AccountID: acc.AccountID, AccountCode: acc.Code, AccountName: acc.Name, Amount: net,
			})
			bs.TotalAssets = bs.TotalAssets.Add(net)
		case domain.Liability:
			net := cumulativeNets[acc.AccountID]
			if net.Round(2).IsZero() {
				continue
			}
			amount := net.Neg()
			bs.Liabilities = append(bs.Liabilities, domain.StatementLine{
				AccountID: acc.AccountID, AccountCode: acc.Code, AccountName: acc.Name, Amount: amount,
			})
			bs.TotalLiabilities = bs.TotalLiabilities.Add(amount)
		case domain.Equity:
			net := cumulativeNets[acc.AccountID]
			if net.Round(2).IsZero() {
				continue
			}
			amount := net.Neg()
			bs.Equity = append(bs.Equity, domain.StatementLine{
				AccountID: acc.AccountID, AccountCode: acc.Code, AccountName: acc.Name, Amount: amount,
			})
			bs.TotalEquity = bs.TotalEquity.Add(amount)
		case domain.Revenue, domain.Expense:
			// Fiscal-year-to-date income folds into equity below.
			earnings = earnings.Sub(ytdNets[acc.AccountID])
		}
	}
	sortStatementLines(bs.Assets)
	sortStatementLines(bs.Liabilities)
	sortStatementLines(bs.Equity)

	bs.CurrentYearEarnings = earnings
	bs.TotalEquity = bs.TotalEquity.Add(earnings)

	diff := bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity))
	if diff.Abs().GreaterThan(domain.BalanceTolerance) {
		middleware.GetLoggerFromCtx(ctx).Error("Balance sheet out of balance",
			slog.String("assets", bs.TotalAssets.String()),
			slog.String("liabilities", bs.TotalLiabilities.String()),
			slog.String("equity", bs.TotalEquity.String()))
		return nil, fmt.Errorf("%w: balance sheet does not balance, assets %s vs liabilities+equity %s",
			apperrors.ErrInternal, bs.TotalAssets.String(), bs.TotalLiabilities.Add(bs.TotalEquity).String())
	}
	return bs, nil
}

// cumulativeNetsThrough returns per-account net (debit minus credit) from
// inception through the boundary, preferring the latest snapshot strictly
// before it plus delta rows after.
func (s *reportingService) cumulativeNetsThrough(ctx context.Context, boundary time.Time) (map[string]decimal.Decimal, error) {
	snapshot, err := s.snapshotRepo.FindLatestSnapshotBefore(ctx, boundary)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		// No snapshot: full historical scan.
		return s.ledgerRepo.SumNetByAccount(ctx, portsrepo.LedgerRowFilter{To: &boundary})
	}

	deltaFrom := snapshot.PeriodEndDate.AddDate(0, 0, 1)
	deltaNets, err := s.ledgerRepo.SumNetByAccount(ctx, portsrepo.LedgerRowFilter{From: &deltaFrom, To: &boundary})
	if err != nil {
		return nil, err
	}

	nets := make(map[string]decimal.Decimal, len(snapshot.Accounts)+len(deltaNets))
	for _, bal := range snapshot.Accounts {
		nets[bal.AccountID] = bal.CumulativeNet
	}
	for accountID, delta := range deltaNets {
		nets[accountID] = nets[accountID].Add(delta)
	}
	return nets, nil
}

func (s *reportingService) fiscalYearStart(fiscalYear int) time.Time {
	start, _ := domain.PeriodBounds(fiscalYear, 1, s.fiscalYearStartMonth)
	return start
}

func sortStatementLines(lines []domain.StatementLine) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].AccountCode < lines[j].AccountCode })
}
