package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/google/uuid"
)

type bookletService struct {
	BaseService
	txm      portsrepo.TransactionManager
	accounts portsrepo.AccountRepositoryFacade
	booklets portsrepo.BookletRepositoryFacade
	txs      portsrepo.TransactionReader
}

// NewBookletService creates the receipt booklet service.
func NewBookletService(txm portsrepo.TransactionManager, accounts portsrepo.AccountRepositoryFacade, booklets portsrepo.BookletRepositoryFacade, txs portsrepo.TransactionReader, opts ...Option) portssvc.BookletSvcFacade {
	return &bookletService{BaseService: newBaseService(opts...), txm: txm, accounts: accounts, booklets: booklets, txs: txs}
}

var _ portssvc.BookletSvcFacade = (*bookletService)(nil)

func (s *bookletService) CreateBooklet(ctx context.Context, accountID string, req dto.CreateBookletRequest, actorID string) (*domain.Booklet, error) {
	if req.StartNumber < 1 || req.EndNumber < req.StartNumber {
		return nil, apperrors.NewValidationError("invalid booklet range %d-%d", req.StartNumber, req.EndNumber)
	}
	booklet := domain.Booklet{
		BookletID:      uuid.NewString(),
		AccountID:      accountID,
		StartNumber:    req.StartNumber,
		EndNumber:      req.EndNumber,
		AvailablePages: domain.NewPageSet(req.StartNumber, req.EndNumber),
		AuditFields:    domain.NewAuditFields(actorID, s.Now()),
	}

	// The account row lock serialises overlap checks of concurrent creates.
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.accounts.FindAccountByIDForUpdate(ctx, accountID); err != nil {
			return err
		}
		existing, err := s.booklets.ListBookletsByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if b.Overlaps(booklet) {
				return fmt.Errorf("%w: range %d-%d overlaps booklet %s (%d-%d)",
					apperrors.ErrConflict, req.StartNumber, req.EndNumber, b.BookletID, b.StartNumber, b.EndNumber)
			}
		}
		return s.booklets.SaveBooklet(ctx, booklet)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create booklet", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Booklet created", slog.String("booklet_id", booklet.BookletID), slog.Int("start", req.StartNumber), slog.Int("end", req.EndNumber))
	return &booklet, nil
}

func (s *bookletService) GetBookletByID(ctx context.Context, bookletID string) (*domain.Booklet, error) {
	return s.booklets.FindBookletByID(ctx, bookletID)
}

// Reserve takes the requested receipt number, or the lowest free one, from a booklet of the
// given account. It must run inside the caller's unit of work so the row lock holds until commit.
func (s *bookletService) Reserve(ctx context.Context, accountID, bookletID string, requested *int) (int, error) {
	booklet, err := s.booklets.FindBookletByIDForUpdate(ctx, bookletID)
	if err != nil {
		return 0, err
	}
	if booklet.AccountID != accountID {
		return 0, apperrors.NewValidationError("booklet %s does not belong to account %s", bookletID, accountID)
	}
	used, err := s.txs.ReceiptNumbersInUse(ctx, bookletID, "")
	if err != nil {
		return 0, err
	}
	n, err := booklet.Reserve(requested, used)
	if err != nil {
		return 0, err
	}
	if err := s.booklets.UpdateBookletPages(ctx, *booklet); err != nil {
		return 0, err
	}
	s.LogDebug(ctx, "Receipt number reserved", slog.String("booklet_id", bookletID), slog.Int("receipt_number", n))
	return n, nil
}

// Release returns a receipt number to the booklet unless another transaction still holds it.
func (s *bookletService) Release(ctx context.Context, bookletID string, receiptNumber int) error {
	booklet, err := s.booklets.FindBookletByIDForUpdate(ctx, bookletID)
	if err != nil {
		return err
	}
	used, err := s.txs.ReceiptNumbersInUse(ctx, bookletID, "")
	if err != nil {
		return err
	}
	if !booklet.Release(receiptNumber, used[receiptNumber]) {
		return nil
	}
	if err := s.booklets.UpdateBookletPages(ctx, *booklet); err != nil {
		return err
	}
	s.LogDebug(ctx, "Receipt number released", slog.String("booklet_id", bookletID), slog.Int("receipt_number", receiptNumber))
	return nil
}
