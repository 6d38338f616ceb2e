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

// PgxSnapshotRepository stores monthly_ledger_balances rows.
type PgxSnapshotRepository struct {
	BaseRepository
}

func newPgxSnapshotRepository(pool *pgxpool.Pool) *PgxSnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

const snapshotColumns = `id, account_id, ledger_head_id, month, year, opening_balance, receipts, payments,
	closing_balance, cash_in_hand, cash_in_bank, is_open, created_at, created_by, last_updated_at, last_updated_by`

func scanSnapshot(row pgx.Row) (models.MonthlyLedgerBalance, error) {
	var m models.MonthlyLedgerBalance
	err := row.Scan(
		&m.ID,
		&m.AccountID,
		&m.LedgerHeadID,
		&m.Month,
		&m.Year,
		&m.OpeningBalance,
		&m.Receipts,
		&m.Payments,
		&m.ClosingBalance,
		&m.CashInHand,
		&m.CashInBank,
		&m.IsOpen,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context, key domain.SnapshotKey) (*domain.MonthlyLedgerBalance, error) {
	query := `SELECT ` + snapshotColumns + ` FROM monthly_ledger_balances
		WHERE account_id = $1 AND ledger_head_id = $2 AND month = $3 AND year = $4`
	m, err := scanSnapshot(r.db(ctx).QueryRow(ctx, query, key.AccountID, key.LedgerHeadID, key.Month, key.Year))
	if err != nil {
		return nil, mapReadError(err, "snapshot", fmt.Sprintf("%s/%s", key.LedgerHeadID, key.Period))
	}
	snap := mapping.ToDomainSnapshot(m)
	return &snap, nil
}

func (r *PgxSnapshotRepository) FindLatestSnapshot(ctx context.Context, ledgerHeadID string) (*domain.MonthlyLedgerBalance, error) {
	query := `SELECT ` + snapshotColumns + ` FROM monthly_ledger_balances
		WHERE ledger_head_id = $1 ORDER BY year DESC, month DESC LIMIT 1`
	m, err := scanSnapshot(r.db(ctx).QueryRow(ctx, query, ledgerHeadID))
	if err != nil {
		return nil, mapReadError(err, "snapshot", ledgerHeadID)
	}
	snap := mapping.ToDomainSnapshot(m)
	return &snap, nil
}

func (r *PgxSnapshotRepository) ListSnapshotsByLedgerHead(ctx context.Context, ledgerHeadID string, from *domain.Period) ([]domain.MonthlyLedgerBalance, error) {
	query := `SELECT ` + snapshotColumns + ` FROM monthly_ledger_balances WHERE ledger_head_id = $1`
	args := []any{ledgerHeadID}
	if from != nil {
		query += ` AND (year, month) >= ($2, $3)`
		args = append(args, from.Year, from.Month)
	}
	query += ` ORDER BY year, month`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for ledger head %s: %w", ledgerHeadID, err)
	}
	defer rows.Close()

	var snaps []models.MonthlyLedgerBalance
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snaps = append(snaps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return mapping.ToDomainSnapshotSlice(snaps), nil
}

func (r *PgxSnapshotRepository) FindOpenPeriod(ctx context.Context, accountID string) (*domain.Period, error) {
	query := `SELECT month, year FROM monthly_ledger_balances
		WHERE account_id = $1 AND is_open ORDER BY year DESC, month DESC LIMIT 1`
	var p domain.Period
	if err := r.db(ctx).QueryRow(ctx, query, accountID).Scan(&p.Month, &p.Year); err != nil {
		return nil, mapReadError(err, "open period", accountID)
	}
	return &p, nil
}

// UpsertSnapshot inserts the row or updates it in place on its natural key.
// The stored id and creation stamps win over the ones passed in.
func (r *PgxSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.MonthlyLedgerBalance) (*domain.MonthlyLedgerBalance, error) {
	m := mapping.ToModelSnapshot(snapshot)
	query := `
		INSERT INTO monthly_ledger_balances (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (account_id, ledger_head_id, month, year) DO UPDATE SET
			opening_balance = EXCLUDED.opening_balance,
			receipts = EXCLUDED.receipts,
			payments = EXCLUDED.payments,
			closing_balance = EXCLUDED.closing_balance,
			cash_in_hand = EXCLUDED.cash_in_hand,
			cash_in_bank = EXCLUDED.cash_in_bank,
			is_open = EXCLUDED.is_open,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + snapshotColumns
	stored, err := scanSnapshot(r.db(ctx).QueryRow(ctx, query,
		m.ID, m.AccountID, m.LedgerHeadID, m.Month, m.Year, m.OpeningBalance, m.Receipts, m.Payments,
		m.ClosingBalance, m.CashInHand, m.CashInBank, m.IsOpen, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	))
	if err != nil {
		return nil, mapWriteError(err, "snapshot "+m.LedgerHeadID)
	}
	snap := mapping.ToDomainSnapshot(stored)
	return &snap, nil
}

// SetOpenPeriod flags the account's rows of period as open and all others as closed.
func (r *PgxSnapshotRepository) SetOpenPeriod(ctx context.Context, accountID string, period domain.Period) error {
	query := `
		UPDATE monthly_ledger_balances
		SET is_open = (month = $2 AND year = $3)
		WHERE account_id = $1 AND is_open <> (month = $2 AND year = $3);
	`
	if _, err := r.db(ctx).Exec(ctx, query, accountID, period.Month, period.Year); err != nil {
		return fmt.Errorf("failed to set open period %s for account %s: %w", period, accountID, err)
	}
	return nil
}
