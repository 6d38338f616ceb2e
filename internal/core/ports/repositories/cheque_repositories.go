package repositories

import (
	"context"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
)

// ChequeRepositoryFacade persists cheques.
type ChequeRepositoryFacade interface {
	SaveCheque(ctx context.Context, cheque domain.Cheque) error
	FindChequeByIDForUpdate(ctx context.Context, chequeID string) (*domain.Cheque, error)
	FindChequeByTransactionID(ctx context.Context, transactionID string) (*domain.Cheque, error)
	UpdateChequeStatus(ctx context.Context, cheque domain.Cheque) error
	DeleteChequeByTransactionID(ctx context.Context, transactionID string) error
}
