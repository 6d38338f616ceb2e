package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "ledger:request:"
	pendingValue = "pending"
)

// DedupStore remembers posted request ids in Redis. A claim holds "pending" until the
// posting commits, after which it holds the transaction id. Both expire after ttl.
type DedupStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

var _ portsrepo.RequestDedupStore = (*DedupStore)(nil)

func NewDedupStore(client goredis.UniversalClient, ttl time.Duration) *DedupStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DedupStore{client: client, ttl: ttl}
}

// NewClient parses a redis:// URL and pings the server.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func key(requestID string) string {
	return keyPrefix + requestID
}

func (s *DedupStore) Claim(ctx context.Context, requestID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, key(requestID), pendingValue, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim request %s: %w", requestID, err)
	}
	return ok, nil
}

func (s *DedupStore) Complete(ctx context.Context, requestID, transactionID string) error {
	if err := s.client.Set(ctx, key(requestID), transactionID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete request %s: %w", requestID, err)
	}
	return nil
}

// Lookup reports found only for completed requests; an in-flight claim reads as not found.
func (s *DedupStore) Lookup(ctx context.Context, requestID string) (string, bool, error) {
	val, err := s.client.Get(ctx, key(requestID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up request %s: %w", requestID, err)
	}
	if val == pendingValue {
		return "", false, nil
	}
	return val, true, nil
}

func (s *DedupStore) Release(ctx context.Context, requestID string) error {
	if err := s.client.Del(ctx, key(requestID)).Err(); err != nil {
		return fmt.Errorf("failed to release request %s: %w", requestID, err)
	}
	return nil
}
