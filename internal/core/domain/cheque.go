package domain

import "time"

// ChequeStatus is the lifecycle state of a cheque.
type ChequeStatus string

const (
	ChequeStatusPending   ChequeStatus = "pending"
	ChequeStatusCleared   ChequeStatus = "cleared"
	ChequeStatusCancelled ChequeStatus = "cancelled"
)

// Cheque backs a pending transaction until it clears.
type Cheque struct {
	ChequeID      string       `json:"chequeID"`
	TransactionID string       `json:"transactionID"`
	AccountID     string       `json:"accountID"`
	ChequeNumber  string       `json:"chequeNumber"`
	BankName      string       `json:"bankName"`
	Status        ChequeStatus `json:"status"`
	ClearedAt     *time.Time   `json:"clearedAt,omitempty"`
	AuditFields
}
