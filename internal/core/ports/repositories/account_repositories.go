package repositories

import (
	"context"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves every account ordered by id.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountBalances writes cash/bank/closing balances and last_closed_date.
	UpdateAccountBalances(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that must run inside a unit of work.
type AccountTransactionSupport interface {
	// FindAccountByIDForUpdate selects the account row and locks it until the unit of work ends.
	FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
