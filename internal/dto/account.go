package dto

import (
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	CashBalance    decimal.Decimal `json:"cashBalance"`
	BankBalance    decimal.Decimal `json:"bankBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	LastClosedDate *string         `json:"lastClosedDate,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		AccountID:      a.AccountID,
		Name:           a.Name,
		CashBalance:    a.CashBalance,
		BankBalance:    a.BankBalance,
		ClosingBalance: a.ClosingBalance,
		CreatedAt:      a.CreatedAt,
		CreatedBy:      a.CreatedBy,
	}
	if a.LastClosedDate != nil {
		s := a.LastClosedDate.Format(DateLayout)
		resp.LastClosedDate = &s
	}
	return resp
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}

// CreateLedgerHeadRequest defines the data needed to create a ledger head.
type CreateLedgerHeadRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	HeadType domain.HeadType `json:"headType" binding:"required,oneof=debit credit"`
}

// LedgerHeadResponse defines the data returned for a ledger head.
type LedgerHeadResponse struct {
	LedgerHeadID   string          `json:"ledgerHeadID"`
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	HeadType       domain.HeadType `json:"headType"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CashBalance    decimal.Decimal `json:"cashBalance"`
	BankBalance    decimal.Decimal `json:"bankBalance"`
}

// ToLedgerHeadResponse converts a domain.LedgerHead to LedgerHeadResponse DTO.
func ToLedgerHeadResponse(h *domain.LedgerHead) LedgerHeadResponse {
	return LedgerHeadResponse{
		LedgerHeadID:   h.LedgerHeadID,
		AccountID:      h.AccountID,
		Name:           h.Name,
		HeadType:       h.HeadType,
		CurrentBalance: h.CurrentBalance,
		CashBalance:    h.CashBalance,
		BankBalance:    h.BankBalance,
	}
}

// ToLedgerHeadResponses converts a slice of ledger heads.
func ToLedgerHeadResponses(heads []domain.LedgerHead) []LedgerHeadResponse {
	out := make([]LedgerHeadResponse, len(heads))
	for i := range heads {
		out[i] = ToLedgerHeadResponse(&heads[i])
	}
	return out
}
