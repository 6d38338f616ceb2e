package dto

import (
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClosePeriodRequest closes a month for one account, or all accounts when AccountID is empty.
type ClosePeriodRequest struct {
	Month     int     `json:"month" binding:"required,min=1,max=12"`
	Year      int     `json:"year" binding:"required,min=1900,max=9999"`
	AccountID *string `json:"accountID"`
}

// OpenPeriodRequest opens a month for new transactions.
type OpenPeriodRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=1900,max=9999"`
}

// ReopenPeriodRequest rolls last_closed_date back.
type ReopenPeriodRequest struct {
	NewClosingDate string `json:"newClosingDate" binding:"required,datetime=2006-01-02"`
	// Recalculate runs the recalculation engine for every ledger head after reopening.
	Recalculate bool `json:"recalculate"`
}

// RecalculateRequest starts a forward recalculation.
type RecalculateRequest struct {
	FromDate string `json:"fromDate" binding:"required,datetime=2006-01-02"`
}

// PeriodCloseResultResponse is the outcome for one account.
type PeriodCloseResultResponse struct {
	AccountID      string `json:"accountID"`
	Month          int    `json:"month"`
	Year           int    `json:"year"`
	LastClosedDate string `json:"lastClosedDate,omitempty"`
	HeadsClosed    int    `json:"headsClosed"`
	Error          string `json:"error,omitempty"`
}

// ClosePeriodResponse lists per-account outcomes.
type ClosePeriodResponse struct {
	Results []PeriodCloseResultResponse `json:"results"`
}

// ToClosePeriodResponse converts domain results.
func ToClosePeriodResponse(results []domain.PeriodCloseResult) ClosePeriodResponse {
	out := make([]PeriodCloseResultResponse, len(results))
	for i, r := range results {
		out[i] = PeriodCloseResultResponse{AccountID: r.AccountID, Month: r.Period.Month, Year: r.Period.Year, HeadsClosed: r.HeadsClosed}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		} else {
			out[i].LastClosedDate = r.LastClosedDate.Format(DateLayout)
		}
	}
	return ClosePeriodResponse{Results: out}
}

// OpenPeriodResponse reports the writable month of an account.
type OpenPeriodResponse struct {
	AccountID string `json:"accountID"`
	Month     int    `json:"month"`
	Year      int    `json:"year"`
}

// SnapshotResponse defines the data returned for a monthly snapshot.
type SnapshotResponse struct {
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
}

// ToSnapshotResponses converts snapshots.
func ToSnapshotResponses(snaps []domain.MonthlyLedgerBalance) []SnapshotResponse {
	out := make([]SnapshotResponse, len(snaps))
	for i, s := range snaps {
		out[i] = SnapshotResponse{
			LedgerHeadID:   s.LedgerHeadID,
			Month:          s.Month,
			Year:           s.Year,
			OpeningBalance: s.OpeningBalance,
			Receipts:       s.Receipts,
			Payments:       s.Payments,
			ClosingBalance: s.ClosingBalance,
			CashInHand:     s.CashInHand,
			CashInBank:     s.CashInBank,
			IsOpen:         s.IsOpen,
		}
	}
	return out
}

// RecalculationResponse reports one recalculation walk.
type RecalculationResponse struct {
	LedgerHeadID   string             `json:"ledgerHeadID"`
	From           string             `json:"from"`
	To             string             `json:"to"`
	CurrentBalance decimal.Decimal    `json:"currentBalance"`
	Snapshots      []SnapshotResponse `json:"snapshots"`
}

// ToRecalculationResponse converts a recalculation result.
func ToRecalculationResponse(r *domain.RecalculationResult) RecalculationResponse {
	return RecalculationResponse{
		LedgerHeadID:   r.LedgerHeadID,
		From:           r.From.String(),
		To:             r.To.String(),
		CurrentBalance: r.CurrentBalance,
		Snapshots:      ToSnapshotResponses(r.Snapshots),
	}
}
