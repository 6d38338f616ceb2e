package repositories

import "context"

// RequestDedupStore remembers which request ids were already posted.
type RequestDedupStore interface {
	// Claim marks the request id as in progress. It returns false if the id is already known.
	Claim(ctx context.Context, requestID string) (bool, error)
	// Complete records the transaction created for the request id.
	Complete(ctx context.Context, requestID, transactionID string) error
	// Lookup returns the transaction id recorded for a completed request.
	Lookup(ctx context.Context, requestID string) (transactionID string, found bool, err error)
	// Release forgets a claim whose posting failed.
	Release(ctx context.Context, requestID string) error
}
