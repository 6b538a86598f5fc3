package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus for DB storage.
type EntryStatus string

// JournalEntry is the DB representation of a journal entry header.
type JournalEntry struct {
	EntryID      string
	EntryNumber  string
	EntryDate    time.Time
	Description  string
	Source       string
	SourceID     *string
	SourceRef    *string
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal
	Status       EntryStatus
	FiscalYear   int
	FiscalPeriod int
	PostedAt     *time.Time
	PostedBy     *string
	VoidedAt     *time.Time
	VoidedBy     *string
	VoidReason   *string
	AuditFields
}

// JournalEntryLine is the DB representation of one entry line.
type JournalEntryLine struct {
	LineID       string
	EntryID      string
	LineNumber   int
	AccountID    string
	AccountCode  string
	AccountName  string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Description  *string
	DepartmentID *string
	EmployeeID   *string
	ProjectID    *string
}

// GeneralLedgerRow is the DB representation of an immutable ledger row.
type GeneralLedgerRow struct {
	RowID        string
	AccountID    string
	AccountCode  string
	EntryID      string
	EntryNumber  string
	EntryDate    time.Time
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	FiscalYear   int
	FiscalPeriod int
	CreatedAt    time.Time
}
