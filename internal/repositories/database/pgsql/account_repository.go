package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_period_engine/internal/models"
	"github.com/SscSPs/ledger_period_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountRepository implements portsrepo.AccountRepositoryFacade
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, cash_balance, bank_balance, closing_balance, last_closed_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.CashBalance,
		&m.BankBalance,
		&m.ClosingBalance,
		&m.LastClosedDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.Name, m.CashBalance, m.BankBalance, m.ClosingBalance, m.LastClosedDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "account "+m.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, accountID, "")
}

// FindAccountByIDForUpdate locks the account row until the unit of work ends.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, accountID, " FOR UPDATE")
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, accountID, lock string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1` + lock
	m, err := scanAccount(r.db(ctx).QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapReadError(err, "account", accountID)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves every account ordered by id.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccountBalances writes the balance columns and last_closed_date.
func (r *PgxAccountRepository) UpdateAccountBalances(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET cash_balance = $2, bank_balance = $3, closing_balance = $4, last_closed_date = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.AccountID, m.CashBalance, m.BankBalance, m.ClosingBalance, m.LastClosedDate, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s balances: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "account", m.AccountID)
	}
	return nil
}
