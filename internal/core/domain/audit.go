package domain

import "time"

// AuditSeverity classifies audit records for the external viewer.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "INFO"
	SeverityWarning  AuditSeverity = "WARNING"
	SeverityCritical AuditSeverity = "CRITICAL"
)

// AuditRecord is a structured trail entry written on every post, void and
// period transition. Audit writes are best-effort: a failure is logged but
// never rolls back the financial mutation it describes.
type AuditRecord struct {
	RecordID    string            `json:"recordID"` // Primary key (UUID)
	UserID      string            `json:"userID"`
	Action      string            `json:"action"`
	EntityID    string            `json:"entityID"`
	EntityType  string            `json:"entityType"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Severity    AuditSeverity     `json:"severity"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Audit actions recorded by the ledger engine.
const (
	AuditActionEntryCreated  = "journal_entry.created"
	AuditActionEntryPosted   = "journal_entry.posted"
	AuditActionEntryVoided   = "journal_entry.voided"
	AuditActionEntryReversed = "journal_entry.reversed"
	AuditActionPeriodClosed  = "fiscal_period.closed"
	AuditActionPeriodReopen  = "fiscal_period.reopened"
	AuditActionPeriodLocked  = "fiscal_period.locked"
)
