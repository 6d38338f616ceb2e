package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyLedgerBalance is the monthly_ledger_balances row, unique on
// (account_id, ledger_head_id, month, year).
type MonthlyLedgerBalance struct {
	ID             string          `db:"id"`
	AccountID      string          `db:"account_id"`
	LedgerHeadID   string          `db:"ledger_head_id"`
	Month          int             `db:"month"`
	Year           int             `db:"year"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Receipts       decimal.Decimal `db:"receipts"`
	Payments       decimal.Decimal `db:"payments"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	CashInHand     decimal.Decimal `db:"cash_in_hand"`
	CashInBank     decimal.Decimal `db:"cash_in_bank"`
	IsOpen         bool            `db:"is_open"`
	AuditFields
}

// BalanceCorrection is the balance_corrections row.
type BalanceCorrection struct {
	CorrectionID string          `db:"correction_id"`
	AccountID    string          `db:"account_id"`
	LedgerHeadID string          `db:"ledger_head_id"`
	SnapshotID   string          `db:"snapshot_id"`
	Month        int             `db:"month"`
	Year         int             `db:"year"`
	OldBalance   decimal.Decimal `db:"old_balance"`
	NewBalance   decimal.Decimal `db:"new_balance"`
	CorrectedAt  time.Time       `db:"corrected_at"`
}

// AuditEntry is the audit_log row; Details is stored as JSONB.
type AuditEntry struct {
	AuditID    string    `db:"audit_id"`
	ActorID    *string   `db:"actor_id"`
	Action     string    `db:"action"`
	EntityKind string    `db:"entity_kind"`
	EntityID   string    `db:"entity_id"`
	Details    []byte    `db:"details"`
	OccurredAt time.Time `db:"occurred_at"`
}
