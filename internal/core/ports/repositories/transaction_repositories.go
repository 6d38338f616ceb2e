package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
)

// ActivityRange bounds a history query: From inclusive (nil for the beginning of time), To exclusive.
type ActivityRange struct {
	From *time.Time
	To   time.Time
}

// TransactionReader defines read operations for transactions and their items.
type TransactionReader interface {
	// FindTransactionByID returns the transaction with its items.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// ListTransactionsByAccount pages by (tx_date, created_at) descending.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	// SumLedgerHeadActivity sums completed items of the head dated within the range.
	SumLedgerHeadActivity(ctx context.Context, accountID, ledgerHeadID string, rng ActivityRange) (domain.BalanceDelta, error)
	// ReceiptNumbersInUse lists receipt numbers of the booklet held by transactions other than excludeTransactionID.
	ReceiptNumbersInUse(ctx context.Context, bookletID string, excludeTransactionID string) (map[int]bool, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, tx domain.Transaction) error
	// ReplaceTransaction rewrites the header and replaces all items.
	ReplaceTransaction(ctx context.Context, tx domain.Transaction) error
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TxStatus, actorID string, now time.Time) error
	// DeleteTransaction removes the transaction and its items.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionTransactionSupport locks transaction rows.
type TransactionTransactionSupport interface {
	FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionTransactionSupport
}
