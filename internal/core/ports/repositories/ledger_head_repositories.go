package repositories

import (
	"context"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
)

// LedgerHeadReader defines read operations for ledger heads.
type LedgerHeadReader interface {
	FindLedgerHeadByID(ctx context.Context, ledgerHeadID string) (*domain.LedgerHead, error)
	ListLedgerHeadsByAccount(ctx context.Context, accountID string) ([]domain.LedgerHead, error)
	// ListAllLedgerHeads is used by the reconciliation sweep.
	ListAllLedgerHeads(ctx context.Context) ([]domain.LedgerHead, error)
}

// LedgerHeadWriter defines write operations for ledger heads.
type LedgerHeadWriter interface {
	SaveLedgerHead(ctx context.Context, head domain.LedgerHead) error
	// UpdateLedgerHeadBalances writes current/cash/bank balances of every given head in one batch.
	UpdateLedgerHeadBalances(ctx context.Context, heads []domain.LedgerHead) error
}

// LedgerHeadTransactionSupport locks ledger head rows for the rest of the unit of work.
type LedgerHeadTransactionSupport interface {
	// FindLedgerHeadsByIDsForUpdate locks rows in id order. Missing ids are absent from the map.
	FindLedgerHeadsByIDsForUpdate(ctx context.Context, ledgerHeadIDs []string) (map[string]domain.LedgerHead, error)
	ListLedgerHeadsByAccountForUpdate(ctx context.Context, accountID string) ([]domain.LedgerHead, error)
}

// LedgerHeadRepositoryFacade combines all ledger head repository interfaces.
type LedgerHeadRepositoryFacade interface {
	LedgerHeadReader
	LedgerHeadWriter
	LedgerHeadTransactionSupport
}
