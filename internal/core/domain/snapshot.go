package domain

import (
	"github.com/shopspring/decimal"
)

// SnapshotKey identifies one monthly snapshot row.
type SnapshotKey struct {
	AccountID    string
	LedgerHeadID string
	Period
}

// MonthlyLedgerBalance is the monthly snapshot of a ledger head.
// CashInHand and CashInBank are the month-end split of ClosingBalance.
type MonthlyLedgerBalance struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"accountID"`
	LedgerHeadID   string          `json:"ledgerHeadID"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Receipts       decimal.Decimal `json:"receipts"`
	Payments       decimal.Decimal `json:"payments"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	CashInHand     decimal.Decimal `json:"cashInHand"`
	CashInBank     decimal.Decimal `json:"cashInBank"`
	IsOpen         bool            `json:"isOpen"`
	AuditFields
}

// Key returns the snapshot's unique key.
func (s MonthlyLedgerBalance) Key() SnapshotKey {
	return SnapshotKey{AccountID: s.AccountID, LedgerHeadID: s.LedgerHeadID, Period: s.Period()}
}

// Period returns the snapshot's month.
func (s MonthlyLedgerBalance) Period() Period {
	return Period{Month: s.Month, Year: s.Year}
}

// Recompute derives ClosingBalance from the other figures.
func (s *MonthlyLedgerBalance) Recompute() {
	s.OpeningBalance = RoundMoney(s.OpeningBalance)
	s.Receipts = RoundMoney(s.Receipts)
	s.Payments = RoundMoney(s.Payments)
	s.ClosingBalance = s.OpeningBalance.Add(s.Receipts).Sub(s.Payments)
}

// ApplyDelta adds a posting's effect and recomputes the closing balance.
func (s *MonthlyLedgerBalance) ApplyDelta(d BalanceDelta) {
	s.Receipts = s.Receipts.Add(d.Receipts)
	s.Payments = s.Payments.Add(d.Payments)
	s.CashInHand = RoundMoney(s.CashInHand.Add(d.Cash))
	s.CashInBank = RoundMoney(s.CashInBank.Add(d.Bank))
	s.Recompute()
}

// IsConsistent reports whether closing == opening + receipts - payments within tolerance.
func (s MonthlyLedgerBalance) IsConsistent() bool {
	return WithinTolerance(s.ClosingBalance, s.OpeningBalance.Add(s.Receipts).Sub(s.Payments))
}

// Position is a balance with its cash/bank split.
type Position struct {
	Balance decimal.Decimal
	Cash    decimal.Decimal
	Bank    decimal.Decimal
}

// ClosingPosition returns the snapshot's month-end position.
func (s MonthlyLedgerBalance) ClosingPosition() Position {
	return Position{Balance: s.ClosingBalance, Cash: s.CashInHand, Bank: s.CashInBank}
}

// Advance applies a month's activity to an opening position.
func (p Position) Advance(a BalanceDelta) Position {
	return Position{
		Balance: RoundMoney(p.Balance.Add(a.Net())),
		Cash:    RoundMoney(p.Cash.Add(a.Cash)),
		Bank:    RoundMoney(p.Bank.Add(a.Bank)),
	}
}

// NewSnapshot builds a snapshot from an opening position and a month's activity.
func NewSnapshot(key SnapshotKey, opening Position, activity BalanceDelta) MonthlyLedgerBalance {
	closing := opening.Advance(activity)
	s := MonthlyLedgerBalance{
		AccountID:      key.AccountID,
		LedgerHeadID:   key.LedgerHeadID,
		Month:          key.Month,
		Year:           key.Year,
		OpeningBalance: opening.Balance,
		Receipts:       activity.Receipts,
		Payments:       activity.Payments,
		CashInHand:     closing.Cash,
		CashInBank:     closing.Bank,
	}
	s.Recompute()
	return s
}
