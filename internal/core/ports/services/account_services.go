package services

import (
	"context"

	"github.com/finbooks/gl_engine/internal/core/domain"
	"github.com/finbooks/gl_engine/internal/dto"
)

// AccountSvcFacade defines the operations of the account registry.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID, userID string) error

	// InitializeChartOfAccounts seeds the default chart. Idempotent: codes
	// that already exist are left untouched.
	InitializeChartOfAccounts(ctx context.Context, userID string) error
}
