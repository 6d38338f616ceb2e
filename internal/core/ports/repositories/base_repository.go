package repositories

import (
	"context"
)

// TransactionManager runs a unit of work. Repository calls made with the context handed to fn
// join the same database transaction; an error returned by fn rolls everything back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
