package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
)

type recalculationService struct {
	BaseService
	txm       portsrepo.TransactionManager
	heads     portsrepo.LedgerHeadRepositoryFacade
	openState portsrepo.SnapshotReader
	snapshots portssvc.SnapshotStoreSvc
	calc      portssvc.BalanceCalculatorSvc
}

// NewRecalculationService creates the forward-propagating recalculation engine.
func NewRecalculationService(
	txm portsrepo.TransactionManager,
	heads portsrepo.LedgerHeadRepositoryFacade,
	snapshotRepo portsrepo.SnapshotReader,
	snapshots portssvc.SnapshotStoreSvc,
	calc portssvc.BalanceCalculatorSvc,
	opts ...Option,
) portssvc.RecalculationSvc {
	return &recalculationService{
		BaseService: newBaseService(opts...),
		txm:         txm,
		heads:       heads,
		openState:   snapshotRepo,
		snapshots:   snapshots,
		calc:        calc,
	}
}

var _ portssvc.RecalculationSvc = (*recalculationService)(nil)

// Recalculate rebuilds the head's snapshots from fromDate's month forward. Each month's
// activity is re-read from history and its opening is the previous month's fresh closing.
func (s *recalculationService) Recalculate(ctx context.Context, accountID, ledgerHeadID string, fromDate time.Time, actorID string) (*domain.RecalculationResult, error) {
	start := time.Now()
	result, err := s.recalculate(ctx, accountID, ledgerHeadID, fromDate, actorID)
	s.Metrics.ObserveRecalculation(start, err)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Ledger head recalculated",
		slog.String("ledger_head_id", ledgerHeadID),
		slog.String("from", result.From.String()),
		slog.String("to", result.To.String()),
		slog.String("current_balance", result.CurrentBalance.StringFixed(2)))
	s.audit(ctx, actorID, domain.AuditActionRecalculate, "ledger_head", ledgerHeadID, map[string]any{
		"from":           result.From.String(),
		"to":             result.To.String(),
		"currentBalance": result.CurrentBalance.StringFixed(2),
	})
	return result, nil
}

func (s *recalculationService) recalculate(ctx context.Context, accountID, ledgerHeadID string, fromDate time.Time, actorID string) (*domain.RecalculationResult, error) {
	if fromDate.IsZero() {
		return nil, apperrors.NewValidationError("from date is required")
	}
	from := domain.PeriodOf(fromDate)
	result := &domain.RecalculationResult{AccountID: accountID, LedgerHeadID: ledgerHeadID, From: from}

	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		heads, err := s.heads.FindLedgerHeadsByIDsForUpdate(ctx, []string{ledgerHeadID})
		if err != nil {
			return err
		}
		head, ok := heads[ledgerHeadID]
		if !ok {
			return apperrors.NewNotFoundError("ledger head", ledgerHeadID)
		}
		if head.AccountID != accountID {
			return apperrors.NewValidationError("ledger head %s does not belong to account %s", ledgerHeadID, accountID)
		}

		to, err := s.walkEnd(ctx, ledgerHeadID, from)
		if err != nil {
			return err
		}
		open, err := s.openState.FindOpenPeriod(ctx, accountID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		position, err := s.calc.OpeningPosition(ctx, accountID, ledgerHeadID, from)
		if err != nil {
			return err
		}
		for p := from; !p.After(to); p = p.Next() {
			key := domain.SnapshotKey{AccountID: accountID, LedgerHeadID: ledgerHeadID, Period: p}
			activity, err := s.calc.Activity(ctx, accountID, ledgerHeadID, p)
			if err != nil {
				return err
			}
			snap := domain.NewSnapshot(key, position, activity)
			existing, err := s.snapshots.Get(ctx, key)
			switch {
			case err == nil:
				snap.ID = existing.ID
				snap.AuditFields = existing.AuditFields
				snap.IsOpen = existing.IsOpen
			case errors.Is(err, apperrors.ErrNotFound):
				snap.IsOpen = open != nil && *open == p
			default:
				return err
			}
			stored, err := s.snapshots.Upsert(ctx, snap)
			if err != nil {
				return err
			}
			result.Snapshots = append(result.Snapshots, *stored)
			position = stored.ClosingPosition()
		}

		head.SetBalances(position.Cash, position.Bank)
		head.Touch(actorID, s.Now())
		if err := s.heads.UpdateLedgerHeadBalances(ctx, []domain.LedgerHead{head}); err != nil {
			return err
		}
		result.To = to
		result.CurrentBalance = head.CurrentBalance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// walkEnd is the later of the current month and the head's latest snapshot, never before from.
func (s *recalculationService) walkEnd(ctx context.Context, ledgerHeadID string, from domain.Period) (domain.Period, error) {
	to := domain.PeriodOf(s.Now())
	latest, err := s.snapshots.Latest(ctx, ledgerHeadID)
	switch {
	case err == nil:
		if latest.Period().After(to) {
			to = latest.Period()
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return domain.Period{}, err
	}
	if from.After(to) {
		to = from
	}
	return to, nil
}

// RecalculateAccount runs Recalculate for every ledger head of the account. Each head is its
// own unit of work; the first failure stops the run.
func (s *recalculationService) RecalculateAccount(ctx context.Context, accountID string, fromDate time.Time, actorID string) ([]domain.RecalculationResult, error) {
	heads, err := s.heads.ListLedgerHeadsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	results := make([]domain.RecalculationResult, 0, len(heads))
	for _, h := range heads {
		r, err := s.Recalculate(ctx, accountID, h.LedgerHeadID, fromDate, actorID)
		if err != nil {
			return results, err
		}
		results = append(results, *r)
	}
	return results, nil
}
