package dto

import (
	"github.com/finbooks/gl_engine/internal/core/domain"
)

// CreateAccountRequest is the payload for creating a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required"`
	SubType     string             `json:"subType"`
	Description string             `json:"description"`
}

// UpdateAccountRequest is the payload for updating mutable account fields.
// Code and type are immutable once ledger rows reference the account.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	SubType     *string `json:"subType"`
	Description *string `json:"description"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	SubType       string             `json:"subType,omitempty"`
	NormalBalance domain.BalanceSide `json:"normalBalance"`
	Description   string             `json:"description,omitempty"`
	IsActive      bool               `json:"isActive"`
}

// ToAccountResponse maps a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Code:          a.Code,
		Name:          a.Name,
		AccountType:   a.AccountType,
		SubType:       a.SubType,
		NormalBalance: a.NormalBalance(),
		Description:   a.Description,
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses maps a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
