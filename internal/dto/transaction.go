package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a DateLayout string as a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, s)
	}
	return t, nil
}

// SplitRequest assigns part of the amount to one ledger head.
type SplitRequest struct {
	LedgerHeadID string          `json:"ledgerHeadID" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	CashAmount   decimal.Decimal `json:"cashAmount"`
	BankAmount   decimal.Decimal `json:"bankAmount"`
}

// ChequeRequest carries cheque details for cheque transactions.
type ChequeRequest struct {
	ChequeNumber string `json:"chequeNumber" binding:"required"`
	BankName     string `json:"bankName"`
}

// PostTransactionRequest is the body for posting or updating a credit or debit.
// For credits the splits are target heads; for debits they are source heads drawn into TargetLedgerHeadID.
type PostTransactionRequest struct {
	CashType           domain.CashType `json:"cashType" binding:"required,cashtype"`
	Amount             decimal.Decimal `json:"amount"`
	CashAmount         decimal.Decimal `json:"cashAmount"`
	BankAmount         decimal.Decimal `json:"bankAmount"`
	TxDate             string          `json:"txDate" binding:"required,datetime=2006-01-02"`
	Description        string          `json:"description" binding:"max=1024"`
	Splits             []SplitRequest  `json:"splits" binding:"required,min=1,dive"`
	TargetLedgerHeadID string          `json:"targetLedgerHeadID"`
	BookletID          *string         `json:"bookletID"`
	ReceiptNumber      *int            `json:"receiptNumber" binding:"omitempty,min=1"`
	Cheque             *ChequeRequest  `json:"cheque"`
	AdminOverride      bool            `json:"adminOverride"`
}

// ToDraft converts the request into a domain draft.
func (r PostTransactionRequest) ToDraft(accountID string, txType domain.TxType, requestID *string) (domain.TransactionDraft, error) {
	txDate, err := ParseDate(r.TxDate)
	if err != nil {
		return domain.TransactionDraft{}, err
	}
	splits := make([]domain.Split, len(r.Splits))
	for i, s := range r.Splits {
		splits[i] = domain.Split{LedgerHeadID: s.LedgerHeadID, Amount: s.Amount, CashAmount: s.CashAmount, BankAmount: s.BankAmount}
	}
	draft := domain.TransactionDraft{
		AccountID:          accountID,
		TxType:             txType,
		CashType:           r.CashType,
		Amount:             r.Amount,
		CashAmount:         r.CashAmount,
		BankAmount:         r.BankAmount,
		TxDate:             txDate,
		Description:        r.Description,
		Splits:             splits,
		TargetLedgerHeadID: r.TargetLedgerHeadID,
		BookletID:          r.BookletID,
		ReceiptNumber:      r.ReceiptNumber,
		RequestID:          requestID,
		AdminOverride:      r.AdminOverride,
	}
	if r.Cheque != nil {
		draft.Cheque = &domain.ChequeDetails{ChequeNumber: r.Cheque.ChequeNumber, BankName: r.Cheque.BankName}
	}
	return draft, nil
}

// UpdateTransactionRequest replaces a transaction's content. TxType defaults to the stored
// type and must match it when given.
type UpdateTransactionRequest struct {
	PostTransactionRequest
	TxType domain.TxType `json:"txType" binding:"omitempty,oneof=credit debit"`
}

// ToDraft converts the request into a domain draft.
func (r UpdateTransactionRequest) ToDraft() (domain.TransactionDraft, error) {
	return r.PostTransactionRequest.ToDraft("", r.TxType, nil)
}

// TransactionItemResponse is one item of a transaction.
type TransactionItemResponse struct {
	ItemID       string          `json:"itemID"`
	LedgerHeadID *string         `json:"ledgerHeadID,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	CashAmount   decimal.Decimal `json:"cashAmount"`
	BankAmount   decimal.Decimal `json:"bankAmount"`
	Side         domain.Side     `json:"side"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID         string                    `json:"transactionID"`
	AccountID             string                    `json:"accountID"`
	TxType                domain.TxType             `json:"txType"`
	CashType              domain.CashType           `json:"cashType"`
	Amount                decimal.Decimal           `json:"amount"`
	CashAmount            decimal.Decimal           `json:"cashAmount"`
	BankAmount            decimal.Decimal           `json:"bankAmount"`
	TxDate                string                    `json:"txDate"`
	Status                domain.TxStatus           `json:"status"`
	BookletID             *string                   `json:"bookletID,omitempty"`
	ReceiptNumber         *int                      `json:"receiptNumber,omitempty"`
	RequiresRecalculation bool                      `json:"requiresRecalculation"`
	Description           string                    `json:"description"`
	Items                 []TransactionItemResponse `json:"items"`
	CreatedAt             time.Time                 `json:"createdAt"`
	CreatedBy             string                    `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, len(t.Items))
	for i, it := range t.Items {
		items[i] = TransactionItemResponse{
			ItemID:       it.ItemID,
			LedgerHeadID: it.LedgerHeadID,
			Amount:       it.Amount,
			CashAmount:   it.CashAmount,
			BankAmount:   it.BankAmount,
			Side:         it.Side,
		}
	}
	return TransactionResponse{
		TransactionID:         t.TransactionID,
		AccountID:             t.AccountID,
		TxType:                t.TxType,
		CashType:              t.CashType,
		Amount:                t.Amount,
		CashAmount:            t.CashAmount,
		BankAmount:            t.BankAmount,
		TxDate:                t.TxDate.Format(DateLayout),
		Status:                t.Status,
		BookletID:             t.BookletID,
		ReceiptNumber:         t.ReceiptNumber,
		RequiresRecalculation: t.RequiresRecalculation,
		Description:           t.Description,
		Items:                 items,
		CreatedAt:             t.CreatedAt,
		CreatedBy:             t.CreatedBy,
	}
}

// ListTransactionsParams are the query parameters of the listing endpoint.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ChequeResponse defines the data returned for a cheque.
type ChequeResponse struct {
	ChequeID      string              `json:"chequeID"`
	TransactionID string              `json:"transactionID"`
	ChequeNumber  string              `json:"chequeNumber"`
	BankName      string              `json:"bankName"`
	Status        domain.ChequeStatus `json:"status"`
	ClearedAt     *time.Time          `json:"clearedAt,omitempty"`
}

// ToChequeResponse converts a domain.Cheque to ChequeResponse DTO.
func ToChequeResponse(c *domain.Cheque) ChequeResponse {
	return ChequeResponse{
		ChequeID:      c.ChequeID,
		TransactionID: c.TransactionID,
		ChequeNumber:  c.ChequeNumber,
		BankName:      c.BankName,
		Status:        c.Status,
		ClearedAt:     c.ClearedAt,
	}
}
