package services

import (
	"context"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
)

// BookletAllocator hands out receipt numbers. Both calls must run inside the caller's unit of work.
type BookletAllocator interface {
	// Reserve returns the requested number, or the smallest free one when requested is nil.
	// The booklet must belong to accountID.
	Reserve(ctx context.Context, accountID, bookletID string, requested *int) (int, error)
	// Release puts a number back unless another transaction still claims it.
	Release(ctx context.Context, bookletID string, receiptNumber int) error
}

// BookletManager covers booklet creation and lookup.
type BookletManager interface {
	CreateBooklet(ctx context.Context, accountID string, req dto.CreateBookletRequest, actorID string) (*domain.Booklet, error)
	GetBookletByID(ctx context.Context, bookletID string) (*domain.Booklet, error)
}

// BookletSvcFacade combines allocation and management.
type BookletSvcFacade interface {
	BookletAllocator
	BookletManager
}
