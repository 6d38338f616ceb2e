package repositories

import (
	"context"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
)

// SnapshotReader defines read operations over monthly ledger balances.
type SnapshotReader interface {
	// FindSnapshot returns apperrors.ErrNotFound when no row exists for the key.
	FindSnapshot(ctx context.Context, key domain.SnapshotKey) (*domain.MonthlyLedgerBalance, error)
	// FindLatestSnapshot returns the row with the greatest (year, month) for the head.
	FindLatestSnapshot(ctx context.Context, ledgerHeadID string) (*domain.MonthlyLedgerBalance, error)
	// ListSnapshotsByLedgerHead returns rows in ascending (year, month), optionally from a period on.
	ListSnapshotsByLedgerHead(ctx context.Context, ledgerHeadID string, from *domain.Period) ([]domain.MonthlyLedgerBalance, error)
	// FindOpenPeriod returns the period flagged is_open for the account, or ErrNotFound.
	FindOpenPeriod(ctx context.Context, accountID string) (*domain.Period, error)
}

// SnapshotWriter defines the write operations over monthly ledger balances.
type SnapshotWriter interface {
	// UpsertSnapshot inserts or updates the row for the snapshot's key and returns the stored row.
	UpsertSnapshot(ctx context.Context, snapshot domain.MonthlyLedgerBalance) (*domain.MonthlyLedgerBalance, error)
	// SetOpenPeriod flags the account's rows of period as open and every other row as closed.
	SetOpenPeriod(ctx context.Context, accountID string, period domain.Period) error
}

// SnapshotRepositoryFacade combines snapshot reader and writer.
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
}
