package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/dto"
	"github.com/finbooks/gl_engine/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new chart-of-accounts entry.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}
	if !domain.IsValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        name,
		AccountType: req.AccountType,
		SubType:     strings.TrimSpace(req.SubType),
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, code)
		}
		logger.Error("Failed to save account", slog.String("code", code), slog.Any("error", err))
		return nil, err
	}
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, includeInactive)
}

// UpdateAccount applies the mutable fields. Code and type never change once
// set; ledger history references them.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.SubType != nil {
		account.SubType = strings.TrimSpace(*req.SubType)
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount soft-deletes. The account stays resolvable for history.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID, userID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}
	return s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC())
}

// InitializeChartOfAccounts seeds the default chart. Codes that already
// exist are skipped, so re-running is safe.
func (s *accountService) InitializeChartOfAccounts(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, seed := range defaultChart {
		_, err := s.accountRepo.FindAccountByCode(ctx, seed.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if _, err := s.CreateAccount(ctx, dto.CreateAccountRequest{
			Code:        seed.Code,
			Name:        seed.Name,
			AccountType: seed.AccountType,
			SubType:     seed.SubType,
		}, userID); err != nil && !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to seed account", slog.String("code", seed.Code), slog.Any("error", err))
			return err
		}
	}
	return nil
}

type accountSeed struct {
	Code        string
	Name        string
	AccountType domain.AccountType
	SubType     string
}

var defaultChart = []accountSeed{
	{Code: "1000", Name: "Cash", AccountType: domain.Asset},
	{Code: "1100", Name: "Accounts Receivable", AccountType: domain.Asset},
	{Code: "1200", Name: "Inventory", AccountType: domain.Asset},
	{Code: "1500", Name: "Fixed Assets", AccountType: domain.Asset},
	{Code: "1510", Name: "Accumulated Depreciation", AccountType: domain.Asset, SubType: domain.SubTypeAccumulatedDepreciation},
	{Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability},
	{Code: "2100", Name: "Payroll Liabilities", AccountType: domain.Liability},
	{Code: "2200", Name: "Sales Tax Payable", AccountType: domain.Liability},
	{Code: "3000", Name: "Owner's Equity", AccountType: domain.Equity},
	{Code: "3100", Name: "Retained Earnings", AccountType: domain.Equity},
	{Code: "3200", Name: "Dividends", AccountType: domain.Equity, SubType: domain.SubTypeDividends},
	{Code: "4000", Name: "Sales Revenue", AccountType: domain.Revenue},
	{Code: "4100", Name: "Service Revenue", AccountType: domain.Revenue},
	{Code: "5000", Name: "Cost of Goods Sold", AccountType: domain.Expense},
	{Code: "6000", Name: "Payroll Expense", AccountType: domain.Expense},
	{Code: "6100", Name: "Rent Expense", AccountType: domain.Expense},
	{Code: "6200", Name: "Utilities Expense", AccountType: domain.Expense},
	{Code: "6300", Name: "Depreciation Expense", AccountType: domain.Expense},
	{Code: "6900", Name: "Miscellaneous Expense", AccountType: domain.Expense},
}
