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

// PgxChequeRepository stores cheques, one per cheque transaction.
type PgxChequeRepository struct {
	BaseRepository
}

func newPgxChequeRepository(pool *pgxpool.Pool) *PgxChequeRepository {
	return &PgxChequeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChequeRepositoryFacade = (*PgxChequeRepository)(nil)

const chequeColumns = `cheque_id, transaction_id, account_id, cheque_number, bank_name, status, cleared_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCheque(row pgx.Row) (models.Cheque, error) {
	var m models.Cheque
	err := row.Scan(&m.ChequeID, &m.TransactionID, &m.AccountID, &m.ChequeNumber, &m.BankName, &m.Status, &m.ClearedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxChequeRepository) SaveCheque(ctx context.Context, cheque domain.Cheque) error {
	m := mapping.ToModelCheque(cheque)
	query := `INSERT INTO cheques (` + chequeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.db(ctx).Exec(ctx, query, m.ChequeID, m.TransactionID, m.AccountID, m.ChequeNumber, m.BankName, m.Status, m.ClearedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "cheque "+m.ChequeID)
	}
	return nil
}

func (r *PgxChequeRepository) FindChequeByIDForUpdate(ctx context.Context, chequeID string) (*domain.Cheque, error) {
	m, err := scanCheque(r.db(ctx).QueryRow(ctx, `SELECT `+chequeColumns+` FROM cheques WHERE cheque_id = $1 FOR UPDATE`, chequeID))
	if err != nil {
		return nil, mapReadError(err, "cheque", chequeID)
	}
	c := mapping.ToDomainCheque(m)
	return &c, nil
}

func (r *PgxChequeRepository) FindChequeByTransactionID(ctx context.Context, transactionID string) (*domain.Cheque, error) {
	m, err := scanCheque(r.db(ctx).QueryRow(ctx, `SELECT `+chequeColumns+` FROM cheques WHERE transaction_id = $1`, transactionID))
	if err != nil {
		return nil, mapReadError(err, "cheque for transaction", transactionID)
	}
	c := mapping.ToDomainCheque(m)
	return &c, nil
}

func (r *PgxChequeRepository) UpdateChequeStatus(ctx context.Context, cheque domain.Cheque) error {
	m := mapping.ToModelCheque(cheque)
	query := `
		UPDATE cheques SET status = $2, cleared_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE cheque_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query, m.ChequeID, m.Status, m.ClearedAt, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update cheque %s: %w", m.ChequeID, err)
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "cheque", m.ChequeID)
	}
	return nil
}

// DeleteChequeByTransactionID is a no-op when the transaction has no cheque.
func (r *PgxChequeRepository) DeleteChequeByTransactionID(ctx context.Context, transactionID string) error {
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM cheques WHERE transaction_id = $1`, transactionID); err != nil {
		return fmt.Errorf("failed to delete cheque of transaction %s: %w", transactionID, err)
	}
	return nil
}
