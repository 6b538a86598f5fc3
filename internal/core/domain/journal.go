package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Void   EntryStatus = "VOID"
)

// EntrySource identifies the document type that originated a journal entry.
type EntrySource string

const (
	SourceManual     EntrySource = "MANUAL"
	SourcePayroll    EntrySource = "PAYROLL"
	SourceInvoice    EntrySource = "INVOICE"
	SourceBill       EntrySource = "BILL"
	SourcePayment    EntrySource = "PAYMENT"
	SourceAdjustment EntrySource = "ADJUSTMENT"
	SourceReceipt    EntrySource = "RECEIPT"
)

// BalanceTolerance is the maximum permitted difference between debit and
// credit totals of a balanced entry, in currency units.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// JournalEntry is a balanced, multi-line financial event.
// Lifecycle: DRAFT -> POSTED -> VOID. Only posted entries are reflected in
// the general ledger; voiding appends reversing ledger rows, it never mutates
// or deletes existing ones.
type JournalEntry struct {
	EntryID      string             `json:"entryID"`     // Primary key (UUID)
	EntryNumber  string             `json:"entryNumber"` // "<prefix>-<year>-<seq>", unique
	EntryDate    time.Time          `json:"entryDate"`
	Description  string             `json:"description"`
	Source       EntrySource        `json:"source"`
	SourceID     string             `json:"sourceID,omitempty"`  // ID of the originating document
	SourceRef    string             `json:"sourceRef,omitempty"` // Free-form reference (e.g. reversed entry number)
	Lines        []JournalEntryLine `json:"lines,omitempty"`
	TotalDebit   decimal.Decimal    `json:"totalDebit"`
	TotalCredit  decimal.Decimal    `json:"totalCredit"`
	Status       EntryStatus        `json:"status"`
	FiscalYear   int                `json:"fiscalYear"`
	FiscalPeriod int                `json:"fiscalPeriod"`
	PostedAt     *time.Time         `json:"postedAt,omitempty"`
	PostedBy     string             `json:"postedBy,omitempty"`
	VoidedAt     *time.Time         `json:"voidedAt,omitempty"`
	VoidedBy     string             `json:"voidedBy,omitempty"`
	VoidReason   string             `json:"voidReason,omitempty"`
	AuditFields
}

// JournalEntryLine is a single debit or credit within a journal entry.
// Account code and name are snapshotted at creation time so historical
// entries keep their original labels even if the account is later renamed.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"` // Primary key (UUID)
	EntryID      string          `json:"entryID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	AccountCode  string          `json:"accountCode"`
	AccountName  string          `json:"accountName"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description,omitempty"`
	DepartmentID string          `json:"departmentID,omitempty"`
	EmployeeID   string          `json:"employeeID,omitempty"`
	ProjectID    string          `json:"projectID,omitempty"`
}

// IsDebit reports whether this line carries its amount on the debit side.
func (l JournalEntryLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the positive amount of the line regardless of side.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
