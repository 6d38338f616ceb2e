package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account owns ledger heads and tracks how far its books are locked.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	CashBalance    decimal.Decimal `json:"cashBalance"`
	BankBalance    decimal.Decimal `json:"bankBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"` // CashBalance + BankBalance
	// LastClosedDate is the last day of the most recently closed month; nil when nothing was closed.
	LastClosedDate *time.Time `json:"lastClosedDate,omitempty"`
	AuditFields
}

// LastClosedPeriod returns the month containing LastClosedDate.
func (a Account) LastClosedPeriod() (Period, bool) {
	if a.LastClosedDate == nil {
		return Period{}, false
	}
	return PeriodOf(*a.LastClosedDate), true
}

// IsClosedOn reports whether the given date falls on or before LastClosedDate.
func (a Account) IsClosedOn(date time.Time) bool {
	if a.LastClosedDate == nil {
		return false
	}
	return !DateOnly(date).After(DateOnly(*a.LastClosedDate))
}
