package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

const defaultListLimit = 20

type transactionPoster struct {
	BaseService
	postingPath
	txm      portsrepo.TransactionManager
	txs      portsrepo.TransactionRepositoryFacade
	cheques  portsrepo.ChequeRepositoryFacade
	booklets portssvc.BookletAllocator
	periods  portssvc.PeriodReader
	dedup    portsrepo.RequestDedupStore
	recalc   portssvc.RecalculationSvc
}

// PosterOption configures optional collaborators of the transaction poster.
type PosterOption func(*transactionPoster)

// WithRequestDeduplication makes posts carrying a request id idempotent.
func WithRequestDeduplication(store portsrepo.RequestDedupStore) PosterOption {
	return func(p *transactionPoster) { p.dedup = store }
}

// WithAutoRecalculation runs the recalculation engine after a committed change lands in an
// earlier month than the current one.
func WithAutoRecalculation(recalc portssvc.RecalculationSvc) PosterOption {
	return func(p *transactionPoster) { p.recalc = recalc }
}

// WithPosterBase applies shared service options.
func WithPosterBase(opts ...Option) PosterOption {
	return func(p *transactionPoster) {
		for _, opt := range opts {
			opt(&p.BaseService)
		}
	}
}

// NewTransactionPoster creates the transaction poster.
func NewTransactionPoster(
	txm portsrepo.TransactionManager,
	heads portsrepo.LedgerHeadRepositoryFacade,
	txs portsrepo.TransactionRepositoryFacade,
	cheques portsrepo.ChequeRepositoryFacade,
	snapshots portssvc.SnapshotStoreSvc,
	booklets portssvc.BookletAllocator,
	periods portssvc.PeriodReader,
	opts ...PosterOption,
) portssvc.TransactionPosterSvc {
	p := &transactionPoster{
		postingPath: postingPath{heads: heads, snapshots: snapshots},
		txm:         txm,
		txs:         txs,
		cheques:     cheques,
		booklets:    booklets,
		periods:     periods,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ portssvc.TransactionPosterSvc = (*transactionPoster)(nil)

func (p *transactionPoster) PostCredit(ctx context.Context, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error) {
	draft.TxType = domain.TxTypeCredit
	tx, err := p.post(ctx, draft, actorID)
	p.Metrics.ObservePosting("post_credit", err)
	return tx, err
}

func (p *transactionPoster) PostDebit(ctx context.Context, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error) {
	draft.TxType = domain.TxTypeDebit
	tx, err := p.post(ctx, draft, actorID)
	p.Metrics.ObservePosting("post_debit", err)
	return tx, err
}

func (p *transactionPoster) post(ctx context.Context, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	items, cashTotal, bankTotal, err := draft.BuildItems()
	if err != nil {
		return nil, err
	}

	if draft.RequestID != nil && p.dedup != nil {
		replayed, err := p.claimRequest(ctx, *draft.RequestID)
		if err != nil || replayed != nil {
			return replayed, err
		}
	}

	now := p.Now()
	tx := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     draft.AccountID,
		TxType:        draft.TxType,
		CashType:      draft.CashType,
		Amount:        domain.RoundMoney(draft.Amount),
		CashAmount:    cashTotal,
		BankAmount:    bankTotal,
		TxDate:        domain.DateOnly(draft.TxDate),
		Status:        domain.TxStatusCompleted,
		RequestID:     draft.RequestID,
		Description:   draft.Description,
		AuditFields:   domain.NewAuditFields(actorID, now),
	}
	if draft.CashType == domain.CashTypeCheque {
		tx.Status = domain.TxStatusPending
	}
	tx.Items = withItemIDs(tx.TransactionID, items)

	err = p.txm.WithinTx(ctx, func(ctx context.Context) error {
		requiresRecalc, err := p.periods.ValidateTransactionPeriod(ctx, tx.AccountID, tx.TxDate, draft.AdminOverride)
		if err != nil {
			return err
		}
		tx.RequiresRecalculation = requiresRecalc

		heads, err := p.lockHeads(ctx, tx.AccountID, tx.LedgerHeadIDs())
		if err != nil {
			return err
		}
		if tx.TxType == domain.TxTypeDebit && tx.AffectsBalances() {
			if err := p.ensureSufficient(heads, tx.Items); err != nil {
				return err
			}
		}
		if tx.TxType == domain.TxTypeCredit && draft.BookletID != nil {
			n, err := p.booklets.Reserve(ctx, tx.AccountID, *draft.BookletID, draft.ReceiptNumber)
			if err != nil {
				return err
			}
			tx.BookletID, tx.ReceiptNumber = draft.BookletID, &n
		}

		if err := p.txs.SaveTransaction(ctx, tx); err != nil {
			return err
		}
		if draft.CashType == domain.CashTypeCheque {
			cheque := domain.Cheque{
				ChequeID:      uuid.NewString(),
				TransactionID: tx.TransactionID,
				AccountID:     tx.AccountID,
				ChequeNumber:  draft.Cheque.ChequeNumber,
				BankName:      draft.Cheque.BankName,
				Status:        domain.ChequeStatusPending,
				AuditFields:   domain.NewAuditFields(actorID, now),
			}
			if err := p.cheques.SaveCheque(ctx, cheque); err != nil {
				return err
			}
		}
		if !tx.AffectsBalances() {
			return nil
		}
		return p.apply(ctx, tx, heads, false, actorID, now)
	})
	if err != nil {
		if draft.RequestID != nil && p.dedup != nil {
			if rerr := p.dedup.Release(ctx, *draft.RequestID); rerr != nil {
				p.LogError(ctx, rerr, "Failed to release request id", slog.String("request_id", *draft.RequestID))
			}
		}
		return nil, err
	}

	if draft.RequestID != nil && p.dedup != nil {
		if err := p.dedup.Complete(ctx, *draft.RequestID, tx.TransactionID); err != nil {
			p.LogError(ctx, err, "Failed to record request id", slog.String("request_id", *draft.RequestID))
		}
	}
	p.LogInfo(ctx, "Transaction posted",
		slog.String("transaction_id", tx.TransactionID),
		slog.String("tx_type", string(tx.TxType)),
		slog.String("amount", tx.Amount.StringFixed(2)))
	p.audit(ctx, actorID, domain.AuditActionCreate, "transaction", tx.TransactionID, map[string]any{
		"txType":                tx.TxType,
		"cashType":              tx.CashType,
		"amount":                tx.Amount.StringFixed(2),
		"txDate":                tx.TxDate.Format(time.DateOnly),
		"requiresRecalculation": tx.RequiresRecalculation,
	})
	p.recalculateIfBackdated(ctx, tx, tx.TxDate, actorID)
	return &tx, nil
}

// claimRequest returns the already-posted transaction for a replayed request id.
func (p *transactionPoster) claimRequest(ctx context.Context, requestID string) (*domain.Transaction, error) {
	txID, found, err := p.dedup.Lookup(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if found {
		p.LogInfo(ctx, "Replaying posted request", slog.String("request_id", requestID), slog.String("transaction_id", txID))
		return p.txs.FindTransactionByID(ctx, txID)
	}
	claimed, err := p.dedup.Claim(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, apperrors.ErrRequestInFlight
	}
	return nil, nil
}

func (p *transactionPoster) VoidTransaction(ctx context.Context, transactionID string, actorID string) error {
	var voided domain.Transaction
	err := p.txm.WithinTx(ctx, func(ctx context.Context) error {
		tx, err := p.txs.FindTransactionByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if err := p.rejectClosed(ctx, *tx); err != nil {
			return err
		}

		heads, err := p.lockHeads(ctx, tx.AccountID, tx.LedgerHeadIDs())
		if err != nil {
			return err
		}
		if tx.AffectsBalances() {
			if err := p.apply(ctx, *tx, heads, true, actorID, p.Now()); err != nil {
				return err
			}
		}
		if tx.CashType == domain.CashTypeCheque {
			if err := p.cheques.DeleteChequeByTransactionID(ctx, tx.TransactionID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
		}
		if err := p.txs.DeleteTransaction(ctx, tx.TransactionID); err != nil {
			return err
		}
		if tx.BookletID != nil && tx.ReceiptNumber != nil {
			if err := p.booklets.Release(ctx, *tx.BookletID, *tx.ReceiptNumber); err != nil {
				return err
			}
		}
		voided = *tx
		return nil
	})
	p.Metrics.ObservePosting("void", err)
	if err != nil {
		return err
	}

	p.LogInfo(ctx, "Transaction voided", slog.String("transaction_id", transactionID))
	p.audit(ctx, actorID, domain.AuditActionVoid, "transaction", transactionID, map[string]any{
		"amount": voided.Amount.StringFixed(2),
		"txDate": voided.TxDate.Format(time.DateOnly),
	})
	p.recalculateIfBackdated(ctx, voided, voided.TxDate, actorID)
	return nil
}

// rejectClosed refuses to touch a transaction dated inside a closed month.
func (p *transactionPoster) rejectClosed(ctx context.Context, tx domain.Transaction) error {
	_, err := p.periods.ValidateTransactionPeriod(ctx, tx.AccountID, tx.TxDate, false)
	switch {
	case err == nil, errors.Is(err, apperrors.ErrPeriodNotOpen):
		return nil
	case errors.Is(err, apperrors.ErrPeriodClosed):
		return fmt.Errorf("transaction %s: %w", tx.TransactionID, err)
	default:
		return err
	}
}

func (p *transactionPoster) UpdateTransaction(ctx context.Context, transactionID string, draft domain.TransactionDraft, actorID string) (*domain.Transaction, error) {
	updated, oldDate, err := p.update(ctx, transactionID, draft, actorID)
	p.Metrics.ObservePosting("update", err)
	if err != nil {
		return nil, err
	}

	p.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	p.audit(ctx, actorID, domain.AuditActionUpdate, "transaction", transactionID, map[string]any{
		"amount": updated.Amount.StringFixed(2),
		"txDate": updated.TxDate.Format(time.DateOnly),
	})
	from := updated.TxDate
	if oldDate.Before(from) {
		from = oldDate
	}
	p.recalculateIfBackdated(ctx, *updated, from, actorID)
	return updated, nil
}

// update reverses the old items and applies the new ones in one unit of work.
func (p *transactionPoster) update(ctx context.Context, transactionID string, draft domain.TransactionDraft, actorID string) (*domain.Transaction, time.Time, error) {
	var result domain.Transaction
	var oldDate time.Time
	err := p.txm.WithinTx(ctx, func(ctx context.Context) error {
		old, err := p.txs.FindTransactionByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		oldDate = old.TxDate
		draft.AccountID = old.AccountID
		if draft.TxType == "" {
			draft.TxType = old.TxType
		}
		if draft.TxType != old.TxType {
			return apperrors.NewValidationError("transaction type cannot change from %s to %s", old.TxType, draft.TxType)
		}
		if old.CashType == domain.CashTypeCheque || draft.CashType == domain.CashTypeCheque {
			return apperrors.NewValidationError("cheque transactions cannot be edited; void and post again")
		}
		if old.Status != domain.TxStatusCompleted {
			return apperrors.NewValidationError("only completed transactions can be edited, status is %s", old.Status)
		}
		if err := draft.Validate(); err != nil {
			return err
		}
		items, cashTotal, bankTotal, err := draft.BuildItems()
		if err != nil {
			return err
		}

		oldRecalc, err := p.periods.ValidateTransactionPeriod(ctx, old.AccountID, old.TxDate, draft.AdminOverride)
		if err != nil {
			return err
		}
		newRecalc, err := p.periods.ValidateTransactionPeriod(ctx, old.AccountID, draft.TxDate, draft.AdminOverride)
		if err != nil {
			return err
		}

		now := p.Now()
		next := *old
		next.CashType = draft.CashType
		next.Amount = domain.RoundMoney(draft.Amount)
		next.CashAmount, next.BankAmount = cashTotal, bankTotal
		next.TxDate = domain.DateOnly(draft.TxDate)
		next.Description = draft.Description
		next.RequiresRecalculation = old.RequiresRecalculation || oldRecalc || newRecalc
		next.Items = withItemIDs(next.TransactionID, items)
		next.Touch(actorID, now)

		ids := append(old.LedgerHeadIDs(), next.LedgerHeadIDs()...)
		heads, err := p.lockHeads(ctx, old.AccountID, uniqueStrings(ids))
		if err != nil {
			return err
		}
		if err := p.apply(ctx, *old, heads, true, actorID, now); err != nil {
			return err
		}
		if next.TxType == domain.TxTypeDebit {
			if err := p.ensureSufficient(heads, next.Items); err != nil {
				return err
			}
		}

		releaseOld := false
		if next.TxType == domain.TxTypeCredit {
			sameBooklet := draft.BookletID == nil || (old.BookletID != nil && *old.BookletID == *draft.BookletID)
			sameNumber := draft.ReceiptNumber == nil || (old.ReceiptNumber != nil && *old.ReceiptNumber == *draft.ReceiptNumber)
			if draft.BookletID != nil && !(sameBooklet && sameNumber && old.ReceiptNumber != nil) {
				n, err := p.booklets.Reserve(ctx, next.AccountID, *draft.BookletID, draft.ReceiptNumber)
				if err != nil {
					return err
				}
				next.BookletID, next.ReceiptNumber = draft.BookletID, &n
				releaseOld = old.BookletID != nil && old.ReceiptNumber != nil
			}
		}

		if err := p.txs.ReplaceTransaction(ctx, next); err != nil {
			return err
		}
		if err := p.apply(ctx, next, heads, false, actorID, now); err != nil {
			return err
		}
		if releaseOld {
			if err := p.booklets.Release(ctx, *old.BookletID, *old.ReceiptNumber); err != nil {
				return err
			}
		}
		result = next
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return &result, oldDate, nil
}

func (p *transactionPoster) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return p.txs.FindTransactionByID(ctx, transactionID)
}

func (p *transactionPoster) ListTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return p.txs.ListTransactionsByAccount(ctx, accountID, limit, nextToken)
}

// recalculateIfBackdated ripples a committed change forward when it landed before the
// current month. Failures are logged; the change itself is already committed.
func (p *transactionPoster) recalculateIfBackdated(ctx context.Context, tx domain.Transaction, from time.Time, actorID string) {
	if p.recalc == nil || !tx.AffectsBalances() {
		return
	}
	if !tx.RequiresRecalculation && !domain.PeriodOf(from).Before(domain.PeriodOf(p.Now())) {
		return
	}
	for _, headID := range tx.LedgerHeadIDs() {
		if _, err := p.recalc.Recalculate(ctx, tx.AccountID, headID, from, actorID); err != nil {
			p.LogError(ctx, err, "Automatic recalculation failed",
				slog.String("transaction_id", tx.TransactionID),
				slog.String("ledger_head_id", headID))
		}
	}
}

func withItemIDs(transactionID string, items []domain.TransactionItem) []domain.TransactionItem {
	out := make([]domain.TransactionItem, len(items))
	for i, item := range items {
		item.ItemID = uuid.NewString()
		item.TransactionID = transactionID
		out[i] = item
	}
	return out
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
