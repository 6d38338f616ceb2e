package domain

import "github.com/shopspring/decimal"

// HeadType classifies a ledger head. Both kinds carry ordinary running balances.
type HeadType string

const (
	HeadTypeDebit  HeadType = "debit"
	HeadTypeCredit HeadType = "credit"
)

// IsValid reports whether t is a known head type.
func (t HeadType) IsValid() bool {
	return t == HeadTypeDebit || t == HeadTypeCredit
}

// LedgerHead is a named bucket within an account holding live balances.
type LedgerHead struct {
	LedgerHeadID   string          `json:"ledgerHeadID"`
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	HeadType       HeadType        `json:"headType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CashBalance    decimal.Decimal `json:"cashBalance"`
	BankBalance    decimal.Decimal `json:"bankBalance"`
	AuditFields
}

// Apply adds signed cash and bank deltas and keeps CurrentBalance == CashBalance + BankBalance.
func (h *LedgerHead) Apply(cashDelta, bankDelta decimal.Decimal) {
	h.CashBalance = RoundMoney(h.CashBalance.Add(cashDelta))
	h.BankBalance = RoundMoney(h.BankBalance.Add(bankDelta))
	h.CurrentBalance = h.CashBalance.Add(h.BankBalance)
}

// SetBalances overwrites the live balances from a cash/bank split.
func (h *LedgerHead) SetBalances(cash, bank decimal.Decimal) {
	h.CashBalance = RoundMoney(cash)
	h.BankBalance = RoundMoney(bank)
	h.CurrentBalance = h.CashBalance.Add(h.BankBalance)
}

// Available returns the balance held in the given bucket.
func (h LedgerHead) Available(bucket Bucket) decimal.Decimal {
	if bucket == BucketBank {
		return h.BankBalance
	}
	return h.CashBalance
}
