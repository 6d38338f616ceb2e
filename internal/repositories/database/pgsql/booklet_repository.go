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

// PgxBookletRepository stores receipt booklets. available_pages is an int[] column.
type PgxBookletRepository struct {
	BaseRepository
}

func newPgxBookletRepository(pool *pgxpool.Pool) *PgxBookletRepository {
	return &PgxBookletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BookletRepositoryFacade = (*PgxBookletRepository)(nil)

const bookletColumns = `booklet_id, account_id, start_number, end_number, available_pages, is_closed,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBooklet(row pgx.Row) (models.Booklet, error) {
	var m models.Booklet
	err := row.Scan(&m.BookletID, &m.AccountID, &m.StartNumber, &m.EndNumber, &m.AvailablePages, &m.IsClosed,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxBookletRepository) SaveBooklet(ctx context.Context, booklet domain.Booklet) error {
	m := mapping.ToModelBooklet(booklet)
	query := `INSERT INTO booklets (` + bookletColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.db(ctx).Exec(ctx, query, m.BookletID, m.AccountID, m.StartNumber, m.EndNumber, m.AvailablePages, m.IsClosed,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "booklet "+m.BookletID)
	}
	return nil
}

func (r *PgxBookletRepository) FindBookletByID(ctx context.Context, bookletID string) (*domain.Booklet, error) {
	return r.find(ctx, bookletID, "")
}

func (r *PgxBookletRepository) FindBookletByIDForUpdate(ctx context.Context, bookletID string) (*domain.Booklet, error) {
	return r.find(ctx, bookletID, " FOR UPDATE")
}

func (r *PgxBookletRepository) find(ctx context.Context, bookletID, lock string) (*domain.Booklet, error) {
	m, err := scanBooklet(r.db(ctx).QueryRow(ctx, `SELECT `+bookletColumns+` FROM booklets WHERE booklet_id = $1`+lock, bookletID))
	if err != nil {
		return nil, mapReadError(err, "booklet", bookletID)
	}
	b := mapping.ToDomainBooklet(m)
	return &b, nil
}

func (r *PgxBookletRepository) ListBookletsByAccount(ctx context.Context, accountID string) ([]domain.Booklet, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+bookletColumns+` FROM booklets WHERE account_id = $1 ORDER BY start_number`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query booklets for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var out []domain.Booklet
	for rows.Next() {
		m, err := scanBooklet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booklet row: %w", err)
		}
		out = append(out, mapping.ToDomainBooklet(m))
	}
	return out, rows.Err()
}

func (r *PgxBookletRepository) UpdateBookletPages(ctx context.Context, booklet domain.Booklet) error {
	m := mapping.ToModelBooklet(booklet)
	query := `
		UPDATE booklets SET available_pages = $2, is_closed = $3, last_updated_at = $4, last_updated_by = $5
		WHERE booklet_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query, m.BookletID, m.AvailablePages, m.IsClosed, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update pages of booklet %s: %w", m.BookletID, err)
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "booklet", m.BookletID)
	}
	return nil
}
