package services

// ServiceContainer holds instances of all the application services.
// It is the entry point used by the handlers, the CLI and the scheduled jobs.
type ServiceContainer struct {
	Account        AccountSvcFacade
	LedgerHead     LedgerHeadSvcFacade
	Booklet        BookletSvcFacade
	Balance        BalanceCalculatorSvc
	Snapshot       SnapshotStoreSvc
	Poster         TransactionPosterSvc
	Cheque         ChequeSvc
	Period         PeriodSvcFacade
	Recalculation  RecalculationSvc
	Reconciliation ReconciliationSvc
	Audit          AuditSvc
}
