package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_period_engine/internal/core/services"
	"github.com/SscSPs/ledger_period_engine/internal/platform/config"
	"github.com/SscSPs/ledger_period_engine/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock RequestDedupStore ---
type MockDedupStore struct {
	mock.Mock
}

var _ portsrepo.RequestDedupStore = (*MockDedupStore)(nil)

func (m *MockDedupStore) Claim(ctx context.Context, requestID string) (bool, error) {
	args := m.Called(ctx, requestID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDedupStore) Complete(ctx context.Context, requestID, transactionID string) error {
	args := m.Called(ctx, requestID, transactionID)
	return args.Error(0)
}

func (m *MockDedupStore) Lookup(ctx context.Context, requestID string) (string, bool, error) {
	args := m.Called(ctx, requestID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockDedupStore) Release(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func TestPostCredit_RequestDeduplication(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{now: day(2025, time.March, 10)}
	requestID := "req-1"

	build := func(dedup *MockDedupStore) (*memStore, func() error) {
		store := newMemStore()
		seedStore(store)
		repos := store.provider()
		repos.DedupStore = dedup
		svc := services.NewServiceContainer(&config.Config{}, repos, metrics.New(), services.WithClock(clock.Now))
		draft := cashCredit(headA, "500", day(2025, time.March, 10))
		draft.RequestID = &requestID
		return store, func() error {
			_, err := svc.Poster.PostCredit(ctx, draft, actor)
			return err
		}
	}

	t.Run("first request is claimed and completed", func(t *testing.T) {
		dedup := new(MockDedupStore)
		dedup.On("Lookup", mock.Anything, requestID).Return("", false, nil).Once()
		dedup.On("Claim", mock.Anything, requestID).Return(true, nil).Once()
		dedup.On("Complete", mock.Anything, requestID, mock.AnythingOfType("string")).Return(nil).Once()

		store, post := build(dedup)
		require.NoError(t, post())
		assert.Len(t, store.txs, 1)
		dedup.AssertExpectations(t)
	})

	t.Run("replayed request returns the stored transaction", func(t *testing.T) {
		dedup := new(MockDedupStore)
		dedup.On("Lookup", mock.Anything, requestID).Return("", false, nil).Once()
		dedup.On("Claim", mock.Anything, requestID).Return(true, nil).Once()
		var postedID string
		dedup.On("Complete", mock.Anything, requestID, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { postedID = args.String(2) }).
			Return(nil).Once()

		store, post := build(dedup)
		require.NoError(t, post())

		dedup.On("Lookup", mock.Anything, requestID).Return(postedID, true, nil).Once()
		require.NoError(t, post())
		assert.Len(t, store.txs, 1)
		assert.Equal(t, "1500.00", store.heads[headA].CurrentBalance.StringFixed(2))
		dedup.AssertExpectations(t)
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		dedup := new(MockDedupStore)
		dedup.On("Lookup", mock.Anything, requestID).Return("", false, nil).Once()
		dedup.On("Claim", mock.Anything, requestID).Return(false, nil).Once()

		store, post := build(dedup)
		err := post()
		assert.True(t, errors.Is(err, apperrors.ErrRequestInFlight))
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
		assert.Empty(t, store.txs)
		dedup.AssertExpectations(t)
	})

	t.Run("failed post releases the claim", func(t *testing.T) {
		dedup := new(MockDedupStore)
		dedup.On("Lookup", mock.Anything, requestID).Return("", false, nil).Once()
		dedup.On("Claim", mock.Anything, requestID).Return(true, nil).Once()
		dedup.On("Release", mock.Anything, requestID).Return(nil).Once()

		store, post := build(dedup)
		delete(store.heads, headA)
		err := post()
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		dedup.AssertExpectations(t)
		dedup.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}
