package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/dto"
	"github.com/finbooks/gl_engine/internal/utils/accounting"
)

// ledgerService answers account activity queries: opening balance from all
// prior rows plus a deterministic running balance over the in-range rows.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates the ledger query service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetEntriesByAccount resolves accountKey (ID first, code second) and folds
// the account's ledger rows into a running balance. Rows are matched by both
// account ID and legacy account code for backward compatibility.
func (s *ledgerService) GetEntriesByAccount(ctx context.Context, accountKey string, query dto.LedgerQuery) (*domain.AccountActivity, error) {
	account, err := s.resolveAccount(ctx, accountKey)
	if err != nil {
		return nil, err
	}
	side := account.NormalBalance()

	opening, err := s.openingBalance(ctx, account, side, query.StartDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.ledgerRepo.FindRowsByAccount(ctx, account.AccountID, account.Code, portsrepo.LedgerRowFilter{
		From: query.StartDate,
		To:   query.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows for account %s: %w", account.Code, err)
	}

	// Repositories already order rows, but the fold depends on it, so the
	// deterministic (date, entry number, row id) order is re-applied here.
	accounting.SortRows(rows)
	lines := accounting.FoldRunningBalance(opening, rows, side)

	closing := opening
	if len(lines) > 0 {
		closing = lines[len(lines)-1].RunningBalance
	}

	return &domain.AccountActivity{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		NormalBalance:  side,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Lines:          lines,
	}, nil
}

// openingBalance folds every row strictly before startDate into the balance
// carried into the range. A nil startDate means the range opens at zero.
func (s *ledgerService) openingBalance(ctx context.Context, account *domain.Account, side domain.BalanceSide, startDate *time.Time) (decimal.Decimal, error) {
	if startDate == nil {
		return decimal.Zero, nil
	}
	before := startDate.AddDate(0, 0, -1)
	priorRows, err := s.ledgerRepo.FindRowsByAccount(ctx, account.AccountID, account.Code, portsrepo.LedgerRowFilter{
		To: &before,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query prior ledger rows for account %s: %w", account.Code, err)
	}
	return accounting.SumDirectedNet(priorRows, side), nil
}

func (s *ledgerService) resolveAccount(ctx context.Context, accountKey string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountKey)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	account, err = s.accountRepo.FindAccountByCode(ctx, accountKey)
	if err != nil {
		return nil, fmt.Errorf("account %q: %w", accountKey, err)
	}
	return account, nil
}
