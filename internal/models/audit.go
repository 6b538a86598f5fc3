package models

import "time"

// AuditRecord is the DB representation of an audit trail record.
// Metadata is stored as a JSONB column.
type AuditRecord struct {
	RecordID    string
	UserID      string
	Action      string
	EntityID    string
	EntityType  string
	Description string
	Metadata    map[string]string
	Severity    string
	Timestamp   time.Time
}

// LedgerSettings is the singleton settings row.
type LedgerSettings struct {
	JournalEntryPrefix   string
	Currency             string
	FiscalYearStartMonth int
	AuditFields
}
