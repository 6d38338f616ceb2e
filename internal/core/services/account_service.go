package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/google/uuid"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, opts ...Option) portssvc.AccountSvcFacade {
	return &accountService{BaseService: newBaseService(opts...), accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("account name is required")
	}
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        name,
		AuditFields: domain.NewAuditFields(actorID, s.Now()),
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("name", name))
		return nil, err
	}
	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx)
}

type ledgerHeadService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	headRepo    portsrepo.LedgerHeadRepositoryFacade
}

// NewLedgerHeadService creates a new LedgerHeadService.
func NewLedgerHeadService(accountRepo portsrepo.AccountReader, headRepo portsrepo.LedgerHeadRepositoryFacade, opts ...Option) portssvc.LedgerHeadSvcFacade {
	return &ledgerHeadService{BaseService: newBaseService(opts...), accountRepo: accountRepo, headRepo: headRepo}
}

var _ portssvc.LedgerHeadSvcFacade = (*ledgerHeadService)(nil)

func (s *ledgerHeadService) CreateLedgerHead(ctx context.Context, accountID string, req dto.CreateLedgerHeadRequest, actorID string) (*domain.LedgerHead, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("ledger head name is required")
	}
	if !req.HeadType.IsValid() {
		return nil, apperrors.NewValidationError("unknown head type %q", req.HeadType)
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	head := domain.LedgerHead{
		LedgerHeadID: uuid.NewString(),
		AccountID:    accountID,
		Name:         name,
		HeadType:     req.HeadType,
		AuditFields:  domain.NewAuditFields(actorID, s.Now()),
	}
	if err := s.headRepo.SaveLedgerHead(ctx, head); err != nil {
		s.LogError(ctx, err, "Failed to save ledger head", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Ledger head created", slog.String("ledger_head_id", head.LedgerHeadID), slog.String("account_id", accountID))
	return &head, nil
}

func (s *ledgerHeadService) GetLedgerHeadByID(ctx context.Context, ledgerHeadID string) (*domain.LedgerHead, error) {
	return s.headRepo.FindLedgerHeadByID(ctx, ledgerHeadID)
}

func (s *ledgerHeadService) ListLedgerHeads(ctx context.Context, accountID string) ([]domain.LedgerHead, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.headRepo.ListLedgerHeadsByAccount(ctx, accountID)
}
