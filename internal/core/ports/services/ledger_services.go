package services

import (
	"context"

	"github.com/finbooks/gl_engine/internal/core/domain"
	"github.com/finbooks/gl_engine/internal/dto"
)

// LedgerSvcFacade answers account activity queries over the general ledger:
// opening balance plus a deterministic running balance over in-range rows.
type LedgerSvcFacade interface {
	// GetEntriesByAccount resolves accountKey as an account ID first and an
	// account code second, then returns the account's activity for the range.
	GetEntriesByAccount(ctx context.Context, accountKey string, query dto.LedgerQuery) (*domain.AccountActivity, error)
}
