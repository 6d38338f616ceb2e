package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_period_engine/internal/models"
	"github.com/SscSPs/ledger_period_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_period_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository stores transactions and their items.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, account_id, tx_type, cash_type, amount, cash_amount, bank_amount, tx_date,
	status, booklet_id, receipt_number, request_id, requires_recalculation, description,
	created_at, created_by, last_updated_at, last_updated_by`

const itemColumns = `item_id, transaction_id, ledger_head_id, amount, cash_amount, bank_amount, side`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.TxType,
		&m.CashType,
		&m.Amount,
		&m.CashAmount,
		&m.BankAmount,
		&m.TxDate,
		&m.Status,
		&m.BookletID,
		&m.ReceiptNumber,
		&m.RequestID,
		&m.RequiresRecalculation,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts the header and queues every item in one batch.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	m := mapping.ToModelTransaction(tx)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.TransactionID, m.AccountID, m.TxType, m.CashType, m.Amount, m.CashAmount, m.BankAmount, m.TxDate,
		m.Status, m.BookletID, m.ReceiptNumber, m.RequestID, m.RequiresRecalculation, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "transaction "+m.TransactionID)
	}
	return r.insertItems(ctx, tx)
}

func (r *PgxTransactionRepository) insertItems(ctx context.Context, tx domain.Transaction) error {
	if len(tx.Items) == 0 {
		return nil
	}
	query := `INSERT INTO transaction_items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	batch := &pgx.Batch{}
	for _, item := range tx.Items {
		m := mapping.ToModelTransactionItem(item)
		m.TransactionID = tx.TransactionID
		batch.Queue(query, m.ItemID, m.TransactionID, m.LedgerHeadID, m.Amount, m.CashAmount, m.BankAmount, m.Side)
	}
	if err := r.db(ctx).SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, "items of transaction "+tx.TransactionID)
	}
	return nil
}

// ReplaceTransaction rewrites the header and swaps the full item set.
func (r *PgxTransactionRepository) ReplaceTransaction(ctx context.Context, tx domain.Transaction) error {
	m := mapping.ToModelTransaction(tx)
	query := `
		UPDATE transactions
		SET cash_type = $2, amount = $3, cash_amount = $4, bank_amount = $5, tx_date = $6, status = $7,
		    booklet_id = $8, receipt_number = $9, requires_recalculation = $10, description = $11,
		    last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.TransactionID, m.CashType, m.Amount, m.CashAmount, m.BankAmount, m.TxDate, m.Status,
		m.BookletID, m.ReceiptNumber, m.RequiresRecalculation, m.Description, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "transaction "+m.TransactionID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction", m.TransactionID)
	}
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, m.TransactionID); err != nil {
		return fmt.Errorf("failed to delete items of transaction %s: %w", m.TransactionID, err)
	}
	return r.insertItems(ctx, tx)
}

func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TxStatus, actorID string, now time.Time) error {
	query := `UPDATE transactions SET status = $2, last_updated_at = $3, last_updated_by = $4 WHERE transaction_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query, transactionID, string(status), now, actorID)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction", transactionID)
	}
	return nil
}

// DeleteTransaction removes the items first, then the header.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, transactionID); err != nil {
		return fmt.Errorf("failed to delete items of transaction %s: %w", transactionID, err)
	}
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction", transactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findTransaction(ctx, transactionID, "")
}

func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findTransaction(ctx, transactionID, " FOR UPDATE")
}

func (r *PgxTransactionRepository) findTransaction(ctx context.Context, transactionID, lock string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1` + lock
	m, err := scanTransaction(r.db(ctx).QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, mapReadError(err, "transaction", transactionID)
	}
	items, err := r.itemsFor(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	tx := mapping.ToDomainTransaction(m, items[transactionID])
	return &tx, nil
}

// itemsFor loads the items of the given transactions keyed by transaction id.
func (r *PgxTransactionRepository) itemsFor(ctx context.Context, transactionIDs []string) (map[string][]models.TransactionItem, error) {
	query := `SELECT ` + itemColumns + ` FROM transaction_items WHERE transaction_id = ANY($1) ORDER BY side, item_id`
	rows, err := r.db(ctx).Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.TransactionItem, len(transactionIDs))
	for rows.Next() {
		var it models.TransactionItem
		if err := rows.Scan(&it.ItemID, &it.TransactionID, &it.LedgerHeadID, &it.Amount, &it.CashAmount, &it.BankAmount, &it.Side); err != nil {
			return nil, fmt.Errorf("failed to scan transaction item row: %w", err)
		}
		out[it.TransactionID] = append(out[it.TransactionID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction item rows: %w", err)
	}
	return out, nil
}

// listTransactionsQuery builds the page query. transaction_id is the last sort key so rows
// sharing tx_date and created_at keep a stable order across pages.
func listTransactionsQuery(accountID string, fetchLimit int, nextToken *string) (string, []any, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1`
	args := []any{accountID}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return "", nil, apperrors.NewValidationError("invalid nextToken: %v", err)
		}
		query += ` AND (tx_date, created_at, transaction_id) < ($2, $3, $4)`
		args = append(args, cursor.TxDate, cursor.CreatedAt, cursor.TransactionID)
	}
	query += ` ORDER BY tx_date DESC, created_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)
	return query, args, nil
}

// ListTransactionsByAccount returns a page of transactions, newest first, using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether a next page exists
	fetchLimit := limit + 1

	query, args, err := listTransactionsQuery(accountID, fetchLimit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	page := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows for account %s: %w", accountID, err)
	}

	var next *string
	if len(page) > limit {
		page = page[:limit]
		// The token points at the last row included in this page
		last := page[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{TxDate: last.TxDate, CreatedAt: last.CreatedAt, TransactionID: last.TransactionID})
		next = &token
	}
	if len(page) == 0 {
		return []domain.Transaction{}, nil, nil
	}

	ids := make([]string, len(page))
	for i, m := range page {
		ids[i] = m.TransactionID
	}
	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	out := make([]domain.Transaction, len(page))
	for i, m := range page {
		out[i] = mapping.ToDomainTransaction(m, items[m.TransactionID])
	}
	return out, next, nil
}

// SumLedgerHeadActivity totals completed items of the head with tx_date in [From, To).
func (r *PgxTransactionRepository) SumLedgerHeadActivity(ctx context.Context, accountID, ledgerHeadID string, rng portsrepo.ActivityRange) (domain.BalanceDelta, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN i.side = '+' THEN i.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN i.side = '-' THEN i.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN i.side = '+' THEN i.cash_amount ELSE -i.cash_amount END), 0),
			COALESCE(SUM(CASE WHEN i.side = '+' THEN i.bank_amount ELSE -i.bank_amount END), 0)
		FROM transaction_items i
		JOIN transactions t ON t.transaction_id = i.transaction_id
		WHERE t.account_id = $1
		  AND i.ledger_head_id = $2
		  AND t.status = 'completed'
		  AND t.tx_date < $3
		  AND ($4::date IS NULL OR t.tx_date >= $4::date);
	`
	var receipts, payments, cash, bank decimal.Decimal
	err := r.db(ctx).QueryRow(ctx, query, accountID, ledgerHeadID, rng.To, rng.From).Scan(&receipts, &payments, &cash, &bank)
	if err != nil {
		return domain.BalanceDelta{}, fmt.Errorf("failed to sum activity of ledger head %s: %w", ledgerHeadID, err)
	}
	return domain.BalanceDelta{Receipts: receipts, Payments: payments, Cash: cash, Bank: bank}, nil
}

func (r *PgxTransactionRepository) ReceiptNumbersInUse(ctx context.Context, bookletID string, excludeTransactionID string) (map[int]bool, error) {
	query := `
		SELECT receipt_number FROM transactions
		WHERE booklet_id = $1 AND receipt_number IS NOT NULL AND transaction_id <> $2;
	`
	rows, err := r.db(ctx).Query(ctx, query, bookletID, excludeTransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipt numbers of booklet %s: %w", bookletID, err)
	}
	defer rows.Close()

	used := map[int]bool{}
	for rows.Next() {
		var n int32
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan receipt number: %w", err)
		}
		used[int(n)] = true
	}
	return used, rows.Err()
}
