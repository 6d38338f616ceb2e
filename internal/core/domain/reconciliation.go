package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceCorrection records one ledger head overwritten by reconciliation.
type BalanceCorrection struct {
	CorrectionID string          `json:"correctionID"`
	AccountID    string          `json:"accountID"`
	LedgerHeadID string          `json:"ledgerHeadID"`
	SnapshotID   string          `json:"snapshotID"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	OldBalance   decimal.Decimal `json:"oldBalance"`
	NewBalance   decimal.Decimal `json:"newBalance"`
	CorrectedAt  time.Time       `json:"correctedAt"`
}

// ReconciliationReport summarises one sweep.
type ReconciliationReport struct {
	Checked     int                 `json:"checked"`
	Skipped     int                 `json:"skipped"`
	Failed      int                 `json:"failed"`
	Corrections []BalanceCorrection `json:"corrections"`
	StartedAt   time.Time           `json:"startedAt"`
	FinishedAt  time.Time           `json:"finishedAt"`
}

// RecalculationResult lists the snapshots rewritten by one walk.
type RecalculationResult struct {
	AccountID      string                 `json:"accountID"`
	LedgerHeadID   string                 `json:"ledgerHeadID"`
	From           Period                 `json:"from"`
	To             Period                 `json:"to"`
	Snapshots      []MonthlyLedgerBalance `json:"snapshots"`
	CurrentBalance decimal.Decimal        `json:"currentBalance"`
}

// PeriodCloseResult is the outcome of closing one account's month.
type PeriodCloseResult struct {
	AccountID      string    `json:"accountID"`
	Period         Period    `json:"period"`
	LastClosedDate time.Time `json:"lastClosedDate"`
	HeadsClosed    int       `json:"headsClosed"`
	Err            error     `json:"-"`
}
