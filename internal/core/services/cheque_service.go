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
)

type chequeService struct {
	BaseService
	postingPath
	txm     portsrepo.TransactionManager
	txs     portsrepo.TransactionRepositoryFacade
	cheques portsrepo.ChequeRepositoryFacade
	periods portssvc.PeriodReader
}

// NewChequeService creates the cheque lifecycle service. Clearing a cheque is the point where
// its transaction starts to count towards balances.
func NewChequeService(
	txm portsrepo.TransactionManager,
	heads portsrepo.LedgerHeadRepositoryFacade,
	txs portsrepo.TransactionRepositoryFacade,
	cheques portsrepo.ChequeRepositoryFacade,
	snapshots portssvc.SnapshotStoreSvc,
	periods portssvc.PeriodReader,
	opts ...Option,
) portssvc.ChequeSvc {
	return &chequeService{
		BaseService: newBaseService(opts...),
		postingPath: postingPath{heads: heads, snapshots: snapshots},
		txm:         txm,
		txs:         txs,
		cheques:     cheques,
		periods:     periods,
	}
}

var _ portssvc.ChequeSvc = (*chequeService)(nil)

func (s *chequeService) ClearCheque(ctx context.Context, chequeID string, actorID string) (*domain.Cheque, error) {
	var cleared domain.Cheque
	var tx domain.Transaction
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		cheque, err := s.pendingCheque(ctx, chequeID)
		if err != nil {
			return err
		}
		found, err := s.txs.FindTransactionByIDForUpdate(ctx, cheque.TransactionID)
		if err != nil {
			return err
		}
		tx = *found

		now := s.Now()
		redated := false
		_, err = s.periods.ValidateTransactionPeriod(ctx, tx.AccountID, tx.TxDate, false)
		switch {
		case errors.Is(err, apperrors.ErrPeriodClosed):
			// A closed month is never touched; the cheque lands on the day it cleared.
			tx.TxDate = domain.DateOnly(now)
			redated = true
		case err != nil && !errors.Is(err, apperrors.ErrPeriodNotOpen):
			return err
		}
		requiresRecalc, err := s.periods.ValidateTransactionPeriod(ctx, tx.AccountID, tx.TxDate, true)
		if err != nil {
			return err
		}
		tx.RequiresRecalculation = tx.RequiresRecalculation || requiresRecalc

		heads, err := s.lockHeads(ctx, tx.AccountID, tx.LedgerHeadIDs())
		if err != nil {
			return err
		}
		if tx.TxType == domain.TxTypeDebit {
			if err := s.ensureSufficient(heads, tx.Items); err != nil {
				return err
			}
		}

		tx.Status = domain.TxStatusCompleted
		tx.Touch(actorID, now)
		if redated {
			err = s.txs.ReplaceTransaction(ctx, tx)
		} else {
			err = s.txs.UpdateTransactionStatus(ctx, tx.TransactionID, tx.Status, actorID, now)
		}
		if err != nil {
			return err
		}
		if err := s.apply(ctx, tx, heads, false, actorID, now); err != nil {
			return err
		}

		cheque.Status = domain.ChequeStatusCleared
		cheque.ClearedAt = &now
		cheque.Touch(actorID, now)
		if err := s.cheques.UpdateChequeStatus(ctx, *cheque); err != nil {
			return err
		}
		cleared = *cheque
		return nil
	})
	s.Metrics.ObservePosting("clear_cheque", err)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Cheque cleared",
		slog.String("cheque_id", chequeID),
		slog.String("transaction_id", tx.TransactionID),
		slog.String("tx_date", tx.TxDate.Format(time.DateOnly)))
	s.audit(ctx, actorID, domain.AuditActionClear, "cheque", chequeID, map[string]any{
		"transactionID": tx.TransactionID,
		"txDate":        tx.TxDate.Format(time.DateOnly),
	})
	return &cleared, nil
}

func (s *chequeService) CancelCheque(ctx context.Context, chequeID string, actorID string) (*domain.Cheque, error) {
	var cancelled domain.Cheque
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		cheque, err := s.pendingCheque(ctx, chequeID)
		if err != nil {
			return err
		}
		now := s.Now()
		if err := s.txs.UpdateTransactionStatus(ctx, cheque.TransactionID, domain.TxStatusCancelled, actorID, now); err != nil {
			return err
		}
		cheque.Status = domain.ChequeStatusCancelled
		cheque.Touch(actorID, now)
		if err := s.cheques.UpdateChequeStatus(ctx, *cheque); err != nil {
			return err
		}
		cancelled = *cheque
		return nil
	})
	s.Metrics.ObservePosting("cancel_cheque", err)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Cheque cancelled", slog.String("cheque_id", chequeID))
	s.audit(ctx, actorID, domain.AuditActionCancel, "cheque", chequeID, map[string]any{
		"transactionID": cancelled.TransactionID,
	})
	return &cancelled, nil
}

func (s *chequeService) pendingCheque(ctx context.Context, chequeID string) (*domain.Cheque, error) {
	cheque, err := s.cheques.FindChequeByIDForUpdate(ctx, chequeID)
	if err != nil {
		return nil, err
	}
	if cheque.Status != domain.ChequeStatusPending {
		return nil, fmt.Errorf("%w: cheque %s is already %s", apperrors.ErrConflict, chequeID, cheque.Status)
	}
	return cheque, nil
}
