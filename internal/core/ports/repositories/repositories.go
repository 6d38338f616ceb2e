package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager       TransactionManager
	AccountRepo     AccountRepositoryFacade
	LedgerHeadRepo  LedgerHeadRepositoryFacade
	SnapshotRepo    SnapshotRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	BookletRepo     BookletRepositoryFacade
	ChequeRepo      ChequeRepositoryFacade
	CorrectionRepo  CorrectionRepositoryFacade
	AuditRepo       AuditRepository
	// DedupStore is optional; posting skips request-id deduplication when nil.
	DedupStore RequestDedupStore
}
