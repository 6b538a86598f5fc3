package mapping

import (
	"github.com/finbooks/gl_engine/internal/core/domain"
	"github.com/finbooks/gl_engine/internal/models"
)

// ToModelJournalEntry converts a domain entry header for DB storage.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		EntryNumber:  d.EntryNumber,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		Source:       string(d.Source),
		SourceID:     optionalString(d.SourceID),
		SourceRef:    optionalString(d.SourceRef),
		TotalDebit:   d.TotalDebit,
		TotalCredit:  d.TotalCredit,
		Status:       models.EntryStatus(d.Status),
		FiscalYear:   d.FiscalYear,
		FiscalPeriod: d.FiscalPeriod,
		PostedAt:     d.PostedAt,
		PostedBy:     optionalString(d.PostedBy),
		VoidedAt:     d.VoidedAt,
		VoidedBy:     optionalString(d.VoidedBy),
		VoidReason:   optionalString(d.VoidReason),
		AuditFields:  toModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a DB entry header back to the domain form.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		EntryNumber:  m.EntryNumber,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		Source:       domain.EntrySource(m.Source),
		SourceID:     stringValue(m.SourceID),
		SourceRef:    stringValue(m.SourceRef),
		TotalDebit:   m.TotalDebit,
		TotalCredit:  m.TotalCredit,
		Status:       domain.EntryStatus(m.Status),
		FiscalYear:   m.FiscalYear,
		FiscalPeriod: m.FiscalPeriod,
		PostedAt:     m.PostedAt,
		PostedBy:     stringValue(m.PostedBy),
		VoidedAt:     m.VoidedAt,
		VoidedBy:     stringValue(m.VoidedBy),
		VoidReason:   stringValue(m.VoidReason),
		AuditFields:  toDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain line for DB storage.
func ToModelEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		LineNumber:   d.LineNumber,
		AccountID:    d.AccountID,
		AccountCode:  d.AccountCode,
		AccountName:  d.AccountName,
		Debit:        d.Debit,
		Credit:       d.Credit,
		Description:  optionalString(d.Description),
		DepartmentID: optionalString(d.DepartmentID),
		EmployeeID:   optionalString(d.EmployeeID),
		ProjectID:    optionalString(d.ProjectID),
	}
}

// ToDomainEntryLine converts a DB line back to the domain form.
func ToDomainEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		LineNumber:   m.LineNumber,
		AccountID:    m.AccountID,
		AccountCode:  m.AccountCode,
		AccountName:  m.AccountName,
		Debit:        m.Debit,
		Credit:       m.Credit,
		Description:  stringValue(m.Description),
		DepartmentID: stringValue(m.DepartmentID),
		EmployeeID:   stringValue(m.EmployeeID),
		ProjectID:    stringValue(m.ProjectID),
	}
}

// ToDomainLedgerRow converts a DB ledger row back to the domain form.
func ToDomainLedgerRow(m models.GeneralLedgerRow) domain.GeneralLedgerRow {
	return domain.GeneralLedgerRow{
		RowID:        m.RowID,
		AccountID:    m.AccountID,
		AccountCode:  m.AccountCode,
		EntryID:      m.EntryID,
		EntryNumber:  m.EntryNumber,
		EntryDate:    m.EntryDate,
		Debit:        m.Debit,
		Credit:       m.Credit,
		FiscalYear:   m.FiscalYear,
		FiscalPeriod: m.FiscalPeriod,
		CreatedAt:    m.CreatedAt,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
