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

// PgxLedgerHeadRepository implements portsrepo.LedgerHeadRepositoryFacade
type PgxLedgerHeadRepository struct {
	BaseRepository
}

func newPgxLedgerHeadRepository(pool *pgxpool.Pool) *PgxLedgerHeadRepository {
	return &PgxLedgerHeadRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerHeadRepositoryFacade = (*PgxLedgerHeadRepository)(nil)

const ledgerHeadColumns = `ledger_head_id, account_id, name, head_type, current_balance, cash_balance, bank_balance,
	created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerHead(row pgx.Row) (models.LedgerHead, error) {
	var m models.LedgerHead
	err := row.Scan(
		&m.LedgerHeadID,
		&m.AccountID,
		&m.Name,
		&m.HeadType,
		&m.CurrentBalance,
		&m.CashBalance,
		&m.BankBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxLedgerHeadRepository) SaveLedgerHead(ctx context.Context, head domain.LedgerHead) error {
	m := mapping.ToModelLedgerHead(head)
	query := `
		INSERT INTO ledger_heads (` + ledgerHeadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.LedgerHeadID, m.AccountID, m.Name, m.HeadType, m.CurrentBalance, m.CashBalance, m.BankBalance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "ledger head "+m.LedgerHeadID)
	}
	return nil
}

func (r *PgxLedgerHeadRepository) FindLedgerHeadByID(ctx context.Context, ledgerHeadID string) (*domain.LedgerHead, error) {
	query := `SELECT ` + ledgerHeadColumns + ` FROM ledger_heads WHERE ledger_head_id = $1`
	m, err := scanLedgerHead(r.db(ctx).QueryRow(ctx, query, ledgerHeadID))
	if err != nil {
		return nil, mapReadError(err, "ledger head", ledgerHeadID)
	}
	head := mapping.ToDomainLedgerHead(m)
	return &head, nil
}

func (r *PgxLedgerHeadRepository) ListLedgerHeadsByAccount(ctx context.Context, accountID string) ([]domain.LedgerHead, error) {
	return r.list(ctx, `WHERE account_id = $1 ORDER BY ledger_head_id`, accountID)
}

func (r *PgxLedgerHeadRepository) ListAllLedgerHeads(ctx context.Context) ([]domain.LedgerHead, error) {
	return r.list(ctx, `ORDER BY account_id, ledger_head_id`)
}

// ListLedgerHeadsByAccountForUpdate locks every head of the account in id order.
func (r *PgxLedgerHeadRepository) ListLedgerHeadsByAccountForUpdate(ctx context.Context, accountID string) ([]domain.LedgerHead, error) {
	return r.list(ctx, `WHERE account_id = $1 ORDER BY ledger_head_id FOR UPDATE`, accountID)
}

// FindLedgerHeadsByIDsForUpdate retrieves heads by id and locks the rows.
// Locks are taken in id order so concurrent postings cannot deadlock on each other.
func (r *PgxLedgerHeadRepository) FindLedgerHeadsByIDsForUpdate(ctx context.Context, ledgerHeadIDs []string) (map[string]domain.LedgerHead, error) {
	if len(ledgerHeadIDs) == 0 {
		return map[string]domain.LedgerHead{}, nil
	}
	heads, err := r.list(ctx, `WHERE ledger_head_id = ANY($1) ORDER BY ledger_head_id FOR UPDATE`, ledgerHeadIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.LedgerHead, len(heads))
	for _, h := range heads {
		out[h.LedgerHeadID] = h
	}
	return out, nil
}

func (r *PgxLedgerHeadRepository) list(ctx context.Context, clause string, args ...any) ([]domain.LedgerHead, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+ledgerHeadColumns+` FROM ledger_heads `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger heads: %w", err)
	}
	defer rows.Close()

	var heads []models.LedgerHead
	for rows.Next() {
		m, err := scanLedgerHead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger head row: %w", err)
		}
		heads = append(heads, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger head rows: %w", err)
	}
	return mapping.ToDomainLedgerHeadSlice(heads), nil
}

// UpdateLedgerHeadBalances writes the balance columns of every head in one batch.
func (r *PgxLedgerHeadRepository) UpdateLedgerHeadBalances(ctx context.Context, heads []domain.LedgerHead) error {
	if len(heads) == 0 {
		return nil
	}
	query := `
		UPDATE ledger_heads
		SET current_balance = $2, cash_balance = $3, bank_balance = $4, last_updated_at = $5, last_updated_by = $6
		WHERE ledger_head_id = $1;
	`
	batch := &pgx.Batch{}
	for _, h := range heads {
		m := mapping.ToModelLedgerHead(h)
		batch.Queue(query, m.LedgerHeadID, m.CurrentBalance, m.CashBalance, m.BankBalance, m.LastUpdatedAt, m.LastUpdatedBy)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to update ledger head balances: %w", err)
	}
	return nil
}
