package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralLedgerRow is one immutable ledger line produced when a journal entry
// is posted. The ledger is a write-once log: a void appends reversing rows
// (debit/credit swapped) instead of touching existing ones.
type GeneralLedgerRow struct {
	RowID        string          `json:"rowID"` // Primary key (UUID)
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	FiscalYear   int             `json:"fiscalYear"`
	FiscalPeriod int             `json:"fiscalPeriod"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Net returns debit minus credit for the row.
func (r GeneralLedgerRow) Net() decimal.Decimal {
	return r.Debit.Sub(r.Credit)
}

// LedgerLine is a ledger row annotated with the running balance of its
// account, as returned by account activity queries.
type LedgerLine struct {
	GeneralLedgerRow
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountActivity is the result of a ledger query for one account over a
// date range: the balance carried into the range plus every in-range line
// with its running balance.
type AccountActivity struct {
	AccountID      string          `json:"accountID"`
	AccountCode    string          `json:"accountCode"`
	NormalBalance  BalanceSide     `json:"normalBalance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Lines          []LedgerLine    `json:"lines"`
}
