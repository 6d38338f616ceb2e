package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceCalculatorSvc derives balances from snapshots and transaction history without writing.
type BalanceCalculatorSvc interface {
	// OpeningBalance is the prior month's closing balance, or the sum of completed history before the month.
	OpeningBalance(ctx context.Context, accountID, ledgerHeadID string, month, year int) (decimal.Decimal, error)
	// MonthlyActivity sums completed receipts and payments dated within the month.
	MonthlyActivity(ctx context.Context, accountID, ledgerHeadID string, month, year int) (receipts, payments decimal.Decimal, err error)
	// OpeningPosition is OpeningBalance with its cash/bank split.
	OpeningPosition(ctx context.Context, accountID, ledgerHeadID string, period domain.Period) (domain.Position, error)
	// Activity is MonthlyActivity with the net cash and bank movement.
	Activity(ctx context.Context, accountID, ledgerHeadID string, period domain.Period) (domain.BalanceDelta, error)
}

// SnapshotStoreSvc is the single entry point for writing monthly snapshots.
type SnapshotStoreSvc interface {
	Upsert(ctx context.Context, snapshot domain.MonthlyLedgerBalance) (*domain.MonthlyLedgerBalance, error)
	Get(ctx context.Context, key domain.SnapshotKey) (*domain.MonthlyLedgerBalance, error)
	// FindOrCreate returns the row for key, creating it with an opening position from the calculator.
	FindOrCreate(ctx context.Context, key domain.SnapshotKey) (*domain.MonthlyLedgerBalance, error)
	// ApplyDelta adds a posting's effect to the row for key, creating it first when missing.
	ApplyDelta(ctx context.Context, key domain.SnapshotKey, delta domain.BalanceDelta) (*domain.MonthlyLedgerBalance, error)
	Latest(ctx context.Context, ledgerHeadID string) (*domain.MonthlyLedgerBalance, error)
	ListForLedgerHead(ctx context.Context, ledgerHeadID string, from *domain.Period) ([]domain.MonthlyLedgerBalance, error)
}

// TransactionPosterSvc posts, voids and edits transactions.
type TransactionPosterSvc interface {
	PostCredit(ctx context.Context, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error)
	PostDebit(ctx context.Context, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error)
	VoidTransaction(ctx context.Context, transactionID string, actorID string) error
	UpdateTransaction(ctx context.Context, transactionID string, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// ChequeSvc drives the cheque lifecycle.
type ChequeSvc interface {
	ClearCheque(ctx context.Context, chequeID string, actorID string) (*domain.Cheque, error)
	CancelCheque(ctx context.Context, chequeID string, actorID string) (*domain.Cheque, error)
}

// PeriodReader answers which month is writable and whether a date may be posted.
type PeriodReader interface {
	GetOpenPeriodForAccount(ctx context.Context, accountID string) (*domain.Period, error)
	// ValidateTransactionPeriod must run inside the posting unit of work; it may auto-open the current month.
	ValidateTransactionPeriod(ctx context.Context, accountID string, txDate time.Time, override bool) (requiresRecalculation bool, err error)
}

// PeriodWriter closes, opens and reopens months.
type PeriodWriter interface {
	// ClosePeriod closes the month for one account, or for every account when accountID is nil.
	ClosePeriod(ctx context.Context, period domain.Period, accountID *string, actorID string) ([]domain.PeriodCloseResult, error)
	OpenPeriod(ctx context.Context, period domain.Period, accountID string, actorID string) error
	ReopenPeriod(ctx context.Context, accountID string, newClosingDate time.Time, actorID string) (*domain.Account, error)
}

// PeriodSvcFacade combines the period reader and writer.
type PeriodSvcFacade interface {
	PeriodReader
	PeriodWriter
}

// RecalculationSvc rebuilds snapshot chains forward from a date.
type RecalculationSvc interface {
	Recalculate(ctx context.Context, accountID, ledgerHeadID string, fromDate time.Time, actorID string) (*domain.RecalculationResult, error)
	RecalculateAccount(ctx context.Context, accountID string, fromDate time.Time, actorID string) ([]domain.RecalculationResult, error)
}

// ReconciliationSvc aligns live ledger head balances with their latest snapshot.
type ReconciliationSvc interface {
	Reconcile(ctx context.Context) (*domain.ReconciliationReport, error)
}

// AuditSvc records state changes after they commit. It never fails the caller.
type AuditSvc interface {
	Log(ctx context.Context, actorID *string, action domain.AuditAction, entityKind, entityID string, details map[string]any)
}
