package services

import (
	"context"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
)

// AccountSvcFacade covers the account operations needed to drive the ledger.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// LedgerHeadSvcFacade covers ledger head creation and lookup.
type LedgerHeadSvcFacade interface {
	CreateLedgerHead(ctx context.Context, accountID string, req dto.CreateLedgerHeadRequest, actorID string) (*domain.LedgerHead, error)
	GetLedgerHeadByID(ctx context.Context, ledgerHeadID string) (*domain.LedgerHead, error)
	ListLedgerHeads(ctx context.Context, accountID string) ([]domain.LedgerHead, error)
}
