package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_period_engine/internal/models"
	"github.com/SscSPs/ledger_period_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCorrectionRepository stores reconciliation corrections.
type PgxCorrectionRepository struct {
	BaseRepository
}

func newPgxCorrectionRepository(pool *pgxpool.Pool) *PgxCorrectionRepository {
	return &PgxCorrectionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CorrectionRepositoryFacade = (*PgxCorrectionRepository)(nil)

func (r *PgxCorrectionRepository) SaveCorrection(ctx context.Context, correction domain.BalanceCorrection) error {
	m := mapping.ToModelCorrection(correction)
	query := `
		INSERT INTO balance_corrections (correction_id, account_id, ledger_head_id, snapshot_id, month, year, old_balance, new_balance, corrected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.CorrectionID, m.AccountID, m.LedgerHeadID, m.SnapshotID, m.Month, m.Year, m.OldBalance, m.NewBalance, m.CorrectedAt,
	)
	if err != nil {
		return mapWriteError(err, "balance correction "+m.CorrectionID)
	}
	return nil
}

// ListCorrectionsByLedgerHead returns the newest corrections first.
func (r *PgxCorrectionRepository) ListCorrectionsByLedgerHead(ctx context.Context, ledgerHeadID string, limit int) ([]domain.BalanceCorrection, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT correction_id, account_id, ledger_head_id, snapshot_id, month, year, old_balance, new_balance, corrected_at
		FROM balance_corrections
		WHERE ledger_head_id = $1
		ORDER BY corrected_at DESC
		LIMIT $2;
	`
	rows, err := r.db(ctx).Query(ctx, query, ledgerHeadID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections for ledger head %s: %w", ledgerHeadID, err)
	}
	defer rows.Close()

	var out []domain.BalanceCorrection
	for rows.Next() {
		var m models.BalanceCorrection
		if err := rows.Scan(&m.CorrectionID, &m.AccountID, &m.LedgerHeadID, &m.SnapshotID, &m.Month, &m.Year,
			&m.OldBalance, &m.NewBalance, &m.CorrectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan correction row: %w", err)
		}
		out = append(out, mapping.ToDomainCorrection(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating correction rows: %w", err)
	}
	return out, nil
}

// PgxAuditRepository appends to audit_log.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m, err := mapping.ToModelAuditEntry(entry)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}
	query := `
		INSERT INTO audit_log (audit_id, actor_id, action, entity_kind, entity_id, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := r.db(ctx).Exec(ctx, query, m.AuditID, m.ActorID, m.Action, m.EntityKind, m.EntityID, m.Details, m.OccurredAt); err != nil {
		return mapWriteError(err, "audit entry "+m.AuditID)
	}
	return nil
}
