package domain

import (
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TxType says whether money enters the account (credit) or moves out of source heads (debit).
type TxType string

const (
	TxTypeCredit TxType = "credit"
	TxTypeDebit  TxType = "debit"
)

// CashType is the instrument used to settle a transaction.
type CashType string

const (
	CashTypeCash     CashType = "cash"
	CashTypeBank     CashType = "bank"
	CashTypeCheque   CashType = "cheque"
	CashTypeMultiple CashType = "multiple"
	CashTypeOther    CashType = "other"
)

// IsValid reports whether c is a known cash type.
func (c CashType) IsValid() bool {
	switch c {
	case CashTypeCash, CashTypeBank, CashTypeCheque, CashTypeMultiple, CashTypeOther:
		return true
	}
	return false
}

// TxStatus is the lifecycle state of a transaction.
type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusCompleted TxStatus = "completed"
	TxStatusCancelled TxStatus = "cancelled"
)

// Side marks an item as inflow (+) or outflow (-) for its ledger head.
type Side string

const (
	SidePlus  Side = "+"
	SideMinus Side = "-"
)

// Bucket is where a ledger head holds money.
type Bucket string

const (
	BucketCash Bucket = "cash"
	BucketBank Bucket = "bank"
)

// Transaction is a posted monetary movement and its items.
type Transaction struct {
	TransactionID         string            `json:"transactionID"`
	AccountID             string            `json:"accountID"`
	TxType                TxType            `json:"txType"`
	CashType              CashType          `json:"cashType"`
	Amount                decimal.Decimal   `json:"amount"`
	CashAmount            decimal.Decimal   `json:"cashAmount"`
	BankAmount            decimal.Decimal   `json:"bankAmount"`
	TxDate                time.Time         `json:"txDate"`
	Status                TxStatus          `json:"status"`
	BookletID             *string           `json:"bookletID,omitempty"`
	ReceiptNumber         *int              `json:"receiptNumber,omitempty"`
	RequestID             *string           `json:"requestID,omitempty"`
	RequiresRecalculation bool              `json:"requiresRecalculation"`
	Description           string            `json:"description"`
	Items                 []TransactionItem `json:"items"`
	AuditFields
}

// AffectsBalances reports whether the transaction's items are reflected in balances.
func (t Transaction) AffectsBalances() bool {
	return t.Status == TxStatusCompleted
}

// Period returns the month the transaction is dated in.
func (t Transaction) Period() Period {
	return PeriodOf(t.TxDate)
}

// LedgerHeadIDs returns the distinct ledger heads touched by the items, in item order.
func (t Transaction) LedgerHeadIDs() []string {
	seen := make(map[string]struct{}, len(t.Items))
	ids := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		if item.LedgerHeadID == nil {
			continue
		}
		if _, ok := seen[*item.LedgerHeadID]; ok {
			continue
		}
		seen[*item.LedgerHeadID] = struct{}{}
		ids = append(ids, *item.LedgerHeadID)
	}
	return ids
}

// CheckBalanced verifies sum(+) == sum(-) == Amount.
func (t Transaction) CheckBalanced() error {
	plus, minus := decimal.Zero, decimal.Zero
	for _, item := range t.Items {
		if item.Side == SidePlus {
			plus = plus.Add(item.Amount)
		} else {
			minus = minus.Add(item.Amount)
		}
	}
	if !WithinTolerance(plus, t.Amount) || !WithinTolerance(minus, t.Amount) {
		return apperrors.NewInvariantViolation("items do not balance: + %s, - %s, amount %s", plus, minus, t.Amount)
	}
	return nil
}

// TransactionItem is one side of a transaction against a ledger head.
// A nil LedgerHeadID is the external counterparty of a credit.
type TransactionItem struct {
	ItemID        string          `json:"itemID"`
	TransactionID string          `json:"transactionID"`
	LedgerHeadID  *string         `json:"ledgerHeadID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CashAmount    decimal.Decimal `json:"cashAmount"`
	BankAmount    decimal.Decimal `json:"bankAmount"`
	Side          Side            `json:"side"`
}

// Delta is the signed effect of the item on its ledger head and snapshot.
// A reversal negates every component so a post/void pair cancels exactly.
func (i TransactionItem) Delta(reverse bool) BalanceDelta {
	var d BalanceDelta
	if i.Side == SidePlus {
		d = BalanceDelta{Receipts: i.Amount, Cash: i.CashAmount, Bank: i.BankAmount}
	} else {
		d = BalanceDelta{Payments: i.Amount, Cash: i.CashAmount.Neg(), Bank: i.BankAmount.Neg()}
	}
	if reverse {
		return d.Neg()
	}
	return d
}

// BalanceDelta is a signed change to receipts, payments and the cash/bank split.
type BalanceDelta struct {
	Receipts decimal.Decimal
	Payments decimal.Decimal
	Cash     decimal.Decimal
	Bank     decimal.Decimal
}

// Neg flips every component.
func (d BalanceDelta) Neg() BalanceDelta {
	return BalanceDelta{Receipts: d.Receipts.Neg(), Payments: d.Payments.Neg(), Cash: d.Cash.Neg(), Bank: d.Bank.Neg()}
}

// Add sums two deltas.
func (d BalanceDelta) Add(o BalanceDelta) BalanceDelta {
	return BalanceDelta{
		Receipts: d.Receipts.Add(o.Receipts),
		Payments: d.Payments.Add(o.Payments),
		Cash:     d.Cash.Add(o.Cash),
		Bank:     d.Bank.Add(o.Bank),
	}
}

// Net is receipts minus payments.
func (d BalanceDelta) Net() decimal.Decimal {
	return d.Receipts.Sub(d.Payments)
}
