package domain

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of fractional digits kept for monetary values.
const MoneyPlaces int32 = 2

// BalanceTolerance is the largest difference still treated as equal when comparing balances.
var BalanceTolerance = decimal.New(1, -2)

// RoundMoney rounds a value to MoneyPlaces.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// WithinTolerance reports whether a and b differ by no more than BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}

// Drifted is the negation of WithinTolerance: |a-b| > 0.01.
func Drifted(a, b decimal.Decimal) bool {
	return !WithinTolerance(a, b)
}
