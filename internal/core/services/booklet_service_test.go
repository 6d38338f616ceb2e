package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/SscSPs/ledger_period_engine/internal/core/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockRecordingStore notes whether the account lock and the overlap scan ran inside a unit of work.
type lockRecordingStore struct {
	*memStore
	inTx       bool
	lockedInTx bool
	listedInTx bool
}

func (r *lockRecordingStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.inTx = true
	defer func() { r.inTx = false }()
	return r.memStore.WithinTx(ctx, fn)
}

func (r *lockRecordingStore) FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	r.lockedInTx = r.inTx
	return r.memStore.FindAccountByIDForUpdate(ctx, accountID)
}

func (r *lockRecordingStore) ListBookletsByAccount(ctx context.Context, accountID string) ([]domain.Booklet, error) {
	r.listedInTx = r.inTx && r.lockedInTx
	return r.memStore.ListBookletsByAccount(ctx, accountID)
}

func TestCreateBooklet_ChecksOverlapUnderAccountLock(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	seedStore(store)
	rec := &lockRecordingStore{memStore: store}
	clock := &testClock{now: day(2025, time.March, 10)}
	svc := services.NewBookletService(rec, rec, rec, rec, services.WithClock(clock.Now))

	_, err := svc.CreateBooklet(ctx, accID, dto.CreateBookletRequest{StartNumber: 1, EndNumber: 10}, actor)
	require.NoError(t, err)
	assert.True(t, rec.lockedInTx, "account row must be locked inside the unit of work")
	assert.True(t, rec.listedInTx, "overlap scan must run after the lock")

	_, err = svc.CreateBooklet(ctx, accID, dto.CreateBookletRequest{StartNumber: 10, EndNumber: 20}, actor)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Len(t, store.booklets, 1)

	_, err = svc.CreateBooklet(ctx, "missing", dto.CreateBookletRequest{StartNumber: 1, EndNumber: 2}, actor)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Len(t, store.booklets, 1)
}
