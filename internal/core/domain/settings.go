package domain

// LedgerSettings is the singleton tenant settings document read by the
// sequence allocator and period manager. Per-year entry counters live in
// their own rows so concurrent allocation contends on one counter per year,
// not on the whole settings document.
type LedgerSettings struct {
	JournalEntryPrefix   string `json:"journalEntryPrefix"`
	Currency             string `json:"currency"`
	FiscalYearStartMonth int    `json:"fiscalYearStartMonth"` // 1 = January
	AuditFields
}
