package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the accounts row.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	CashBalance    decimal.Decimal `db:"cash_balance"`
	BankBalance    decimal.Decimal `db:"bank_balance"`
	ClosingBalance decimal.Decimal `db:"closing_balance"`
	LastClosedDate *time.Time      `db:"last_closed_date"` // Nullable until the first close
	AuditFields
}

// LedgerHead is the ledger_heads row.
type LedgerHead struct {
	LedgerHeadID   string          `db:"ledger_head_id"`
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	HeadType       string          `db:"head_type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	CashBalance    decimal.Decimal `db:"cash_balance"`
	BankBalance    decimal.Decimal `db:"bank_balance"`
	AuditFields
}
