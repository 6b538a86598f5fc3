package repositories

// RepositoryProvider bundles the concrete repositories handed to the
// service layer at startup.
type RepositoryProvider struct {
	AccountRepo  AccountRepositoryFacade
	JournalRepo  JournalRepositoryWithTx
	LedgerRepo   LedgerRepositoryFacade
	PeriodRepo   PeriodRepositoryFacade
	SnapshotRepo SnapshotRepository
	SequenceRepo SequenceRepository
	AuditRepo    AuditRepository
}
