package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// CreateJournalEntryLineRequest is one line of a journal entry request.
// Exactly one of Debit/Credit must be strictly positive.
type CreateJournalEntryLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description"`
	DepartmentID string          `json:"departmentID"`
	EmployeeID   string          `json:"employeeID"`
	ProjectID    string          `json:"projectID"`
}

// CreateJournalEntryRequest is the payload for creating a journal entry.
// Status defaults to DRAFT; POSTED requests fan out ledger rows immediately.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time                       `json:"entryDate" binding:"required"`
	Description string                          `json:"description" binding:"required"`
	Source      domain.EntrySource              `json:"source"`
	SourceID    string                          `json:"sourceID"`
	SourceRef   string                          `json:"sourceRef"`
	Status      domain.EntryStatus              `json:"status"`
	TotalDebit  decimal.Decimal                 `json:"totalDebit"`
	TotalCredit decimal.Decimal                 `json:"totalCredit"`
	Lines       []CreateJournalEntryLineRequest `json:"lines" binding:"required"`

	// PreallocatedNumber carries an entry number drawn from a block
	// allocation, for bulk flows such as payroll runs. Never accepted over
	// the wire.
	PreallocatedNumber string `json:"-"`
}

// VoidJournalEntryRequest carries the mandatory void reason.
type VoidJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ReverseJournalEntryRequest creates a reversing adjustment entry.
type ReverseJournalEntryRequest struct {
	Date   time.Time `json:"date" binding:"required"`
	Reason string    `json:"reason" binding:"required"`
}

// ListEntriesParams are the query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit        int     `form:"limit"`
	NextToken    *string `form:"nextToken"`
	IncludeVoid  bool    `form:"includeVoid"`
	IncludeLines bool    `form:"includeLines"`
}

// JournalEntryLineResponse is the API representation of an entry line.
type JournalEntryLineResponse struct {
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

// JournalEntryResponse is the API representation of a journal entry.
type JournalEntryResponse struct {
	EntryID      string                     `json:"entryID"`
	EntryNumber  string                     `json:"entryNumber"`
	EntryDate    time.Time                  `json:"entryDate"`
	Description  string                     `json:"description"`
	Source       domain.EntrySource         `json:"source"`
	SourceID     string                     `json:"sourceID,omitempty"`
	SourceRef    string                     `json:"sourceRef,omitempty"`
	Status       domain.EntryStatus         `json:"status"`
	TotalDebit   decimal.Decimal            `json:"totalDebit"`
	TotalCredit  decimal.Decimal            `json:"totalCredit"`
	FiscalYear   int                        `json:"fiscalYear"`
	FiscalPeriod int                        `json:"fiscalPeriod"`
	PostedAt     *time.Time                 `json:"postedAt,omitempty"`
	PostedBy     string                     `json:"postedBy,omitempty"`
	VoidedAt     *time.Time                 `json:"voidedAt,omitempty"`
	VoidedBy     string                     `json:"voidedBy,omitempty"`
	VoidReason   string                     `json:"voidReason,omitempty"`
	Lines        []JournalEntryLineResponse `json:"lines,omitempty"`
}

// ListEntriesResponse is a page of journal entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse maps a domain entry to its API representation.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		Source:       e.Source,
		SourceID:     e.SourceID,
		SourceRef:    e.SourceRef,
		Status:       e.Status,
		TotalDebit:   e.TotalDebit,
		TotalCredit:  e.TotalCredit,
		FiscalYear:   e.FiscalYear,
		FiscalPeriod: e.FiscalPeriod,
		PostedAt:     e.PostedAt,
		PostedBy:     e.PostedBy,
		VoidedAt:     e.VoidedAt,
		VoidedBy:     e.VoidedBy,
		VoidReason:   e.VoidReason,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalEntryLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = JournalEntryLineResponse{
				LineNumber:   l.LineNumber,
				AccountID:    l.AccountID,
				AccountCode:  l.AccountCode,
				AccountName:  l.AccountName,
				Debit:        l.Debit,
				Credit:       l.Credit,
				Description:  l.Description,
				DepartmentID: l.DepartmentID,
				EmployeeID:   l.EmployeeID,
				ProjectID:    l.ProjectID,
			}
		}
	}
	return resp
}
