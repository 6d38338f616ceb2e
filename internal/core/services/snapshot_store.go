package services

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

type snapshotStore struct {
	BaseService
	repo portsrepo.SnapshotRepositoryFacade
	calc portssvc.BalanceCalculatorSvc
}

// NewSnapshotStore creates the snapshot store. Every snapshot write in the engine goes through Upsert.
func NewSnapshotStore(repo portsrepo.SnapshotRepositoryFacade, calc portssvc.BalanceCalculatorSvc, opts ...Option) portssvc.SnapshotStoreSvc {
	return &snapshotStore{BaseService: newBaseService(opts...), repo: repo, calc: calc}
}

var _ portssvc.SnapshotStoreSvc = (*snapshotStore)(nil)

func (s *snapshotStore) Upsert(ctx context.Context, snapshot domain.MonthlyLedgerBalance) (*domain.MonthlyLedgerBalance, error) {
	if _, err := domain.NewPeriod(snapshot.Month, snapshot.Year); err != nil {
		return nil, apperrors.NewValidationError("%s", err.Error())
	}
	if snapshot.AccountID == "" || snapshot.LedgerHeadID == "" {
		return nil, apperrors.NewValidationError("snapshot requires account and ledger head")
	}
	snapshot.Recompute()

	now := s.Now()
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.AuditFields = domain.NewAuditFields(domain.SystemActor, now)
	} else {
		snapshot.Touch(domain.SystemActor, now)
	}
	return s.repo.UpsertSnapshot(ctx, snapshot)
}

func (s *snapshotStore) Get(ctx context.Context, key domain.SnapshotKey) (*domain.MonthlyLedgerBalance, error) {
	return s.repo.FindSnapshot(ctx, key)
}

func (s *snapshotStore) FindOrCreate(ctx context.Context, key domain.SnapshotKey) (*domain.MonthlyLedgerBalance, error) {
	existing, err := s.repo.FindSnapshot(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	opening, err := s.calc.OpeningPosition(ctx, key.AccountID, key.LedgerHeadID, key.Period)
	if err != nil {
		return nil, err
	}
	snap := domain.NewSnapshot(key, opening, domain.BalanceDelta{})
	open, err := s.repo.FindOpenPeriod(ctx, key.AccountID)
	switch {
	case err == nil:
		snap.IsOpen = *open == key.Period
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}
	return s.Upsert(ctx, snap)
}

func (s *snapshotStore) ApplyDelta(ctx context.Context, key domain.SnapshotKey, delta domain.BalanceDelta) (*domain.MonthlyLedgerBalance, error) {
	snap, err := s.FindOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}
	snap.ApplyDelta(delta)
	return s.Upsert(ctx, *snap)
}

func (s *snapshotStore) Latest(ctx context.Context, ledgerHeadID string) (*domain.MonthlyLedgerBalance, error) {
	return s.repo.FindLatestSnapshot(ctx, ledgerHeadID)
}

func (s *snapshotStore) ListForLedgerHead(ctx context.Context, ledgerHeadID string, from *domain.Period) ([]domain.MonthlyLedgerBalance, error) {
	return s.repo.ListSnapshotsByLedgerHead(ctx, ledgerHeadID, from)
}
