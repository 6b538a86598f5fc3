package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account sub-types that flip the normal balance side within their type.
const (
	SubTypeAccumulatedDepreciation = "ACCUMULATED_DEPRECIATION"
	SubTypeDividends               = "DIVIDENDS"
)

// BalanceSide indicates which side increases an account's balance.
type BalanceSide string

const (
	DebitNormal  BalanceSide = "DEBIT"
	CreditNormal BalanceSide = "CREDIT"
)

// Account is a ledger account in the chart of accounts.
// Accounts are never hard-deleted: historical ledger rows reference them by
// both ID and code, so deactivation is the only removal path.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	Code        string      `json:"code"`      // Unique, sortable account code
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	SubType     string      `json:"subType"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// NormalBalance derives the side that increases this account's balance.
// Credit-normal: liabilities, revenue, equity (except dividends), and the
// accumulated-depreciation contra-asset. Everything else is debit-normal.
func (a Account) NormalBalance() BalanceSide {
	return NormalBalanceFor(a.AccountType, a.SubType)
}

// NormalBalanceFor derives the normal balance side from a type/sub-type pair.
func NormalBalanceFor(accountType AccountType, subType string) BalanceSide {
	switch accountType {
	case Liability, Revenue:
		return CreditNormal
	case Equity:
		if subType == SubTypeDividends {
			return DebitNormal
		}
		return CreditNormal
	case Asset:
		if subType == SubTypeAccumulatedDepreciation {
			return CreditNormal
		}
		return DebitNormal
	default:
		return DebitNormal
	}
}

// IsValidAccountType reports whether t is one of the five account types.
func IsValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}
