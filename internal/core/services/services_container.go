package services

import (
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/platform/config"
	"github.com/SscSPs/ledger_period_engine/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics, opts ...Option) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The audit logger is shared by every writer service
	container.Audit = NewAuditService(repos.AuditRepo, opts...)
	base := append([]Option{WithAuditor(container.Audit), WithMetrics(m)}, opts...)

	container.Account = NewAccountService(repos.AccountRepo, base...)
	container.LedgerHead = NewLedgerHeadService(repos.AccountRepo, repos.LedgerHeadRepo, base...)
	container.Booklet = NewBookletService(repos.TxManager, repos.AccountRepo, repos.BookletRepo, repos.TransactionRepo, base...)

	// Balance reads and the single snapshot write path
	container.Balance = NewBalanceCalculator(repos.SnapshotRepo, repos.TransactionRepo, base...)
	container.Snapshot = NewSnapshotStore(repos.SnapshotRepo, container.Balance, base...)

	container.Period = NewPeriodService(repos.TxManager, repos.AccountRepo, repos.LedgerHeadRepo, repos.SnapshotRepo, container.Snapshot, container.Balance, base...)
	container.Recalculation = NewRecalculationService(repos.TxManager, repos.LedgerHeadRepo, repos.SnapshotRepo, container.Snapshot, container.Balance, base...)
	container.Reconciliation = NewReconciliationService(repos.TxManager, repos.LedgerHeadRepo, container.Snapshot, repos.CorrectionRepo, base...)

	posterOpts := []PosterOption{WithPosterBase(base...)}
	if repos.DedupStore != nil {
		posterOpts = append(posterOpts, WithRequestDeduplication(repos.DedupStore))
	}
	if cfg != nil && cfg.AutoRecalculateBackdated {
		posterOpts = append(posterOpts, WithAutoRecalculation(container.Recalculation))
	}
	container.Poster = NewTransactionPoster(repos.TxManager, repos.LedgerHeadRepo, repos.TransactionRepo, repos.ChequeRepo,
		container.Snapshot, container.Booklet, container.Period, posterOpts...)
	container.Cheque = NewChequeService(repos.TxManager, repos.LedgerHeadRepo, repos.TransactionRepo, repos.ChequeRepo,
		container.Snapshot, container.Period, base...)

	return container
}
