package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow is one account line of a trial balance. Exactly one of
// Debit/Credit is non-zero, on the side the closing net falls.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	OpeningNet  decimal.Decimal `json:"openingNet"`
	PeriodNet   decimal.Decimal `json:"periodNet"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists closing balances of all active accounts as of a date.
// TotalDebit always equals TotalCredit for a consistent ledger.
type TrialBalance struct {
	AsOf        time.Time         `json:"asOf"`
	FiscalYear  int               `json:"fiscalYear"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// StatementLine is an account amount on a financial statement, displayed with
// the sign convention of its section (credit-normal amounts negated).
type StatementLine struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatement reports revenue and expenses for a period.
type IncomeStatement struct {
	PeriodStart   time.Time       `json:"periodStart"`
	PeriodEnd     time.Time       `json:"periodEnd"`
	FiscalYear    int             `json:"fiscalYear"`
	Revenue       []StatementLine `json:"revenue"`
	Expenses      []StatementLine `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheet reports assets, liabilities and equity as of a date.
// Equity includes the implicit Current Year Earnings line so that
// TotalAssets == TotalLiabilities + TotalEquity.
type BalanceSheet struct {
	AsOf                time.Time       `json:"asOf"`
	FiscalYear          int             `json:"fiscalYear"`
	Assets              []StatementLine `json:"assets"`
	Liabilities         []StatementLine `json:"liabilities"`
	Equity              []StatementLine `json:"equity"`
	CurrentYearEarnings decimal.Decimal `json:"currentYearEarnings"`
	TotalAssets         decimal.Decimal `json:"totalAssets"`
	TotalLiabilities    decimal.Decimal `json:"totalLiabilities"`
	TotalEquity         decimal.Decimal `json:"totalEquity"`
}
