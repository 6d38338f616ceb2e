package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

type reconciliationService struct {
	BaseService
	txm         portsrepo.TransactionManager
	heads       portsrepo.LedgerHeadRepositoryFacade
	snapshots   portssvc.SnapshotStoreSvc
	corrections portsrepo.CorrectionRepositoryFacade
}

// NewReconciliationService creates the reconciliation job.
func NewReconciliationService(
	txm portsrepo.TransactionManager,
	heads portsrepo.LedgerHeadRepositoryFacade,
	snapshots portssvc.SnapshotStoreSvc,
	corrections portsrepo.CorrectionRepositoryFacade,
	opts ...Option,
) portssvc.ReconciliationSvc {
	return &reconciliationService{
		BaseService: newBaseService(opts...),
		txm:         txm,
		heads:       heads,
		snapshots:   snapshots,
		corrections: corrections,
	}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// Reconcile aligns every ledger head's balance with its most recent snapshot. A head that
// fails is logged and counted; the sweep carries on with the next one.
func (s *reconciliationService) Reconcile(ctx context.Context) (*domain.ReconciliationReport, error) {
	report := &domain.ReconciliationReport{StartedAt: s.Now(), Corrections: []domain.BalanceCorrection{}}
	heads, err := s.heads.ListAllLedgerHeads(ctx)
	if err != nil {
		return nil, err
	}

	for _, h := range heads {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		latest, err := s.snapshots.Latest(ctx, h.LedgerHeadID)
		if errors.Is(err, apperrors.ErrNotFound) {
			report.Skipped++
			continue
		}
		if err != nil {
			s.headFailed(ctx, report, h, err)
			continue
		}
		report.Checked++

		correction, err := s.reconcileHead(ctx, h.LedgerHeadID, *latest)
		if err != nil {
			s.headFailed(ctx, report, h, err)
			continue
		}
		if correction != nil {
			report.Corrections = append(report.Corrections, *correction)
			drift, _ := correction.NewBalance.Sub(correction.OldBalance).Abs().Float64()
			s.Metrics.ObserveCorrection(drift)
			s.LogInfo(ctx, "Ledger head balance corrected",
				slog.String("ledger_head_id", h.LedgerHeadID),
				slog.String("old_balance", correction.OldBalance.StringFixed(2)),
				slog.String("new_balance", correction.NewBalance.StringFixed(2)))
		}
	}
	report.FinishedAt = s.Now()

	s.LogInfo(ctx, "Reconciliation finished",
		slog.Int("checked", report.Checked),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Int("corrections", len(report.Corrections)))
	s.audit(ctx, domain.SystemActor, domain.AuditActionReconcile, "ledger_head", "*", map[string]any{
		"checked":     report.Checked,
		"skipped":     report.Skipped,
		"failed":      report.Failed,
		"corrections": len(report.Corrections),
	})
	return report, nil
}

func (s *reconciliationService) headFailed(ctx context.Context, report *domain.ReconciliationReport, h domain.LedgerHead, err error) {
	report.Failed++
	s.Metrics.ObserveReconcileFailure()
	s.LogError(ctx, err, "Failed to reconcile ledger head", slog.String("ledger_head_id", h.LedgerHeadID))
}

// reconcileHead re-reads the head under lock and overwrites its balance with the snapshot's
// closing figures when they drift by more than the tolerance.
func (s *reconciliationService) reconcileHead(ctx context.Context, headID string, snap domain.MonthlyLedgerBalance) (*domain.BalanceCorrection, error) {
	var correction *domain.BalanceCorrection
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		heads, err := s.heads.FindLedgerHeadsByIDsForUpdate(ctx, []string{headID})
		if err != nil {
			return err
		}
		head, ok := heads[headID]
		if !ok {
			return apperrors.NewNotFoundError("ledger head", headID)
		}
		if !domain.Drifted(head.CurrentBalance, snap.ClosingBalance) {
			return nil
		}

		cash, bank := snap.CashInHand, snap.CashInBank
		if !domain.WithinTolerance(cash.Add(bank), snap.ClosingBalance) {
			cash = snap.ClosingBalance.Sub(bank)
		}
		old := head.CurrentBalance
		now := s.Now()
		head.SetBalances(cash, bank)
		head.Touch(domain.SystemActor, now)
		if err := s.heads.UpdateLedgerHeadBalances(ctx, []domain.LedgerHead{head}); err != nil {
			return err
		}

		c := domain.BalanceCorrection{
			CorrectionID: uuid.NewString(),
			AccountID:    head.AccountID,
			LedgerHeadID: headID,
			SnapshotID:   snap.ID,
			Month:        snap.Month,
			Year:         snap.Year,
			OldBalance:   old,
			NewBalance:   head.CurrentBalance,
			CorrectedAt:  now,
		}
		if err := s.corrections.SaveCorrection(ctx, c); err != nil {
			return err
		}
		correction = &c
		return nil
	})
	return correction, err
}
