package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions row. Items live in transaction_items.
type Transaction struct {
	TransactionID         string          `db:"transaction_id"`
	AccountID             string          `db:"account_id"`
	TxType                string          `db:"tx_type"`
	CashType              string          `db:"cash_type"`
	Amount                decimal.Decimal `db:"amount"`
	CashAmount            decimal.Decimal `db:"cash_amount"`
	BankAmount            decimal.Decimal `db:"bank_amount"`
	TxDate                time.Time       `db:"tx_date"`
	Status                string          `db:"status"`
	BookletID             *string         `db:"booklet_id"`
	ReceiptNumber         *int32          `db:"receipt_number"`
	RequestID             *string         `db:"request_id"`
	RequiresRecalculation bool            `db:"requires_recalculation"`
	Description           string          `db:"description"`
	AuditFields
}

// TransactionItem is the transaction_items row. A NULL ledger_head_id is the external side
// of a credit.
type TransactionItem struct {
	ItemID        string          `db:"item_id"`
	TransactionID string          `db:"transaction_id"`
	LedgerHeadID  *string         `db:"ledger_head_id"`
	Amount        decimal.Decimal `db:"amount"`
	CashAmount    decimal.Decimal `db:"cash_amount"`
	BankAmount    decimal.Decimal `db:"bank_amount"`
	Side          string          `db:"side"`
}

// Booklet is the booklets row; AvailablePages is an int[] column.
type Booklet struct {
	BookletID      string  `db:"booklet_id"`
	AccountID      string  `db:"account_id"`
	StartNumber    int32   `db:"start_number"`
	EndNumber      int32   `db:"end_number"`
	AvailablePages []int32 `db:"available_pages"`
	IsClosed       bool    `db:"is_closed"`
	AuditFields
}

// Cheque is the cheques row.
type Cheque struct {
	ChequeID      string     `db:"cheque_id"`
	TransactionID string     `db:"transaction_id"`
	AccountID     string     `db:"account_id"`
	ChequeNumber  string     `db:"cheque_number"`
	BankName      string     `db:"bank_name"`
	Status        string     `db:"status"`
	ClearedAt     *time.Time `db:"cleared_at"`
	AuditFields
}
