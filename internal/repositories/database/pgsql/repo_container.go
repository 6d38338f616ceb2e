package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository. dedup may be nil.
func NewRepositoryProvider(dbPool *pgxpool.Pool, dedup portsrepo.RequestDedupStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:       newPgxTransactionManager(dbPool),
		AccountRepo:     newPgxAccountRepository(dbPool),
		LedgerHeadRepo:  newPgxLedgerHeadRepository(dbPool),
		SnapshotRepo:    newPgxSnapshotRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BookletRepo:     newPgxBookletRepository(dbPool),
		ChequeRepo:      newPgxChequeRepository(dbPool),
		CorrectionRepo:  newPgxCorrectionRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
		DedupStore:      dedup,
	}
}
