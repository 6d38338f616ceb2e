package repositories

import (
	"context"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
)

// BookletRepositoryFacade persists receipt booklets.
type BookletRepositoryFacade interface {
	SaveBooklet(ctx context.Context, booklet domain.Booklet) error
	FindBookletByID(ctx context.Context, bookletID string) (*domain.Booklet, error)
	ListBookletsByAccount(ctx context.Context, accountID string) ([]domain.Booklet, error)
	// FindBookletByIDForUpdate locks the booklet row; its page set is guarded by this lock.
	FindBookletByIDForUpdate(ctx context.Context, bookletID string) (*domain.Booklet, error)
	UpdateBookletPages(ctx context.Context, booklet domain.Booklet) error
}
