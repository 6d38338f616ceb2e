package repositories

import (
	"context"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
)

// CorrectionRepositoryFacade stores reconciliation corrections.
type CorrectionRepositoryFacade interface {
	SaveCorrection(ctx context.Context, correction domain.BalanceCorrection) error
	ListCorrectionsByLedgerHead(ctx context.Context, ledgerHeadID string, limit int) ([]domain.BalanceCorrection, error)
}

// AuditRepository stores audit log entries.
type AuditRepository interface {
	SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error
}
