package services

// ServiceContainer holds instances of all the application services. It is
// the single entry point the handlers pull functionality from.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Period    PeriodSvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
	Snapshot  SnapshotSvcFacade
	Sequence  SequenceSvcFacade
	Audit     AuditSvcFacade
	Adapters  SourceAdapterSvcFacade
}
