package domain

import (
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Split assigns part of a transaction to one ledger head. CashAmount and BankAmount are
// only read for CashTypeMultiple.
type Split struct {
	LedgerHeadID string
	Amount       decimal.Decimal
	CashAmount   decimal.Decimal
	BankAmount   decimal.Decimal
}

// ChequeDetails describes the instrument of a cheque transaction.
type ChequeDetails struct {
	ChequeNumber string
	BankName     string
}

// TransactionDraft is the input to posting or updating a transaction.
// Credits spread Splits over target heads; debits draw Splits from source heads into TargetLedgerHeadID.
type TransactionDraft struct {
	AccountID          string
	TxType             TxType
	CashType           CashType
	Amount             decimal.Decimal
	CashAmount         decimal.Decimal
	BankAmount         decimal.Decimal
	TxDate             time.Time
	Description        string
	Splits             []Split
	TargetLedgerHeadID string
	BookletID          *string
	ReceiptNumber      *int
	Cheque             *ChequeDetails
	RequestID          *string
	// AdminOverride lets a transaction land in a closed or non-open period.
	AdminOverride bool
}

// bucketSplit resolves the cash/bank allocation of one amount for a non-multiple cash type.
func bucketSplit(cashType CashType, amount decimal.Decimal) (cash, bank decimal.Decimal) {
	switch cashType {
	case CashTypeBank, CashTypeCheque:
		return decimal.Zero, amount
	default:
		return amount, decimal.Zero
	}
}

// Validate checks the draft's shape and amounts without touching storage.
func (d TransactionDraft) Validate() error {
	if d.AccountID == "" {
		return apperrors.NewValidationError("account id is required")
	}
	if d.TxType != TxTypeCredit && d.TxType != TxTypeDebit {
		return apperrors.NewValidationError("unknown transaction type %q", d.TxType)
	}
	if !d.CashType.IsValid() {
		return apperrors.NewValidationError("unknown cash type %q", d.CashType)
	}
	if !d.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be positive")
	}
	if !d.Amount.Equal(RoundMoney(d.Amount)) {
		return apperrors.NewValidationError("amount has more than %d decimal places", MoneyPlaces)
	}
	if d.TxDate.IsZero() {
		return apperrors.NewValidationError("transaction date is required")
	}
	if len(d.Splits) == 0 {
		return apperrors.NewValidationError("at least one ledger head split is required")
	}
	for _, s := range d.Splits {
		if s.LedgerHeadID == "" {
			return apperrors.NewValidationError("split ledger head id is required")
		}
		if !s.Amount.IsPositive() {
			return apperrors.NewValidationError("split amount must be positive")
		}
	}
	if d.TxType == TxTypeDebit {
		if d.TargetLedgerHeadID == "" {
			return apperrors.NewValidationError("debit requires a target ledger head")
		}
		for _, s := range d.Splits {
			if s.LedgerHeadID == d.TargetLedgerHeadID {
				return apperrors.NewValidationError("ledger head %s cannot be both source and target", s.LedgerHeadID)
			}
		}
	}
	if d.CashType == CashTypeCheque && d.Cheque == nil {
		return apperrors.NewValidationError("cheque details are required for cheque transactions")
	}
	if d.ReceiptNumber != nil && d.BookletID == nil {
		return apperrors.NewValidationError("receipt number given without a booklet")
	}
	return nil
}

// BuildItems validates the draft's arithmetic and expands it into balanced items.
// It returns the resolved cash and bank totals of the transaction.
func (d TransactionDraft) BuildItems() (items []TransactionItem, cashTotal, bankTotal decimal.Decimal, err error) {
	amount := RoundMoney(d.Amount)

	splitSum := decimal.Zero
	for _, s := range d.Splits {
		splitSum = splitSum.Add(RoundMoney(s.Amount))
	}
	if !splitSum.Equal(amount) {
		return nil, decimal.Zero, decimal.Zero, apperrors.NewInvariantViolation("split amounts sum to %s, transaction amount is %s", splitSum, amount)
	}

	items = make([]TransactionItem, 0, len(d.Splits)+1)
	if d.CashType == CashTypeMultiple {
		cashTotal, bankTotal = RoundMoney(d.CashAmount), RoundMoney(d.BankAmount)
		if cashTotal.IsNegative() || bankTotal.IsNegative() {
			return nil, decimal.Zero, decimal.Zero, apperrors.NewValidationError("cash and bank amounts cannot be negative")
		}
		if !cashTotal.Add(bankTotal).Equal(amount) {
			return nil, decimal.Zero, decimal.Zero, apperrors.NewInvariantViolation("cash %s + bank %s does not equal amount %s", cashTotal, bankTotal, amount)
		}
		splitCash, splitBank := decimal.Zero, decimal.Zero
		for _, s := range d.Splits {
			c, b := RoundMoney(s.CashAmount), RoundMoney(s.BankAmount)
			if c.IsNegative() || b.IsNegative() {
				return nil, decimal.Zero, decimal.Zero, apperrors.NewValidationError("split cash and bank amounts cannot be negative")
			}
			if !c.Add(b).Equal(RoundMoney(s.Amount)) {
				return nil, decimal.Zero, decimal.Zero, apperrors.NewInvariantViolation("split for %s: cash %s + bank %s does not equal %s", s.LedgerHeadID, c, b, s.Amount)
			}
			splitCash, splitBank = splitCash.Add(c), splitBank.Add(b)
		}
		if !splitCash.Equal(cashTotal) || !splitBank.Equal(bankTotal) {
			return nil, decimal.Zero, decimal.Zero, apperrors.NewInvariantViolation("split cash/bank totals %s/%s do not match %s/%s", splitCash, splitBank, cashTotal, bankTotal)
		}
	} else {
		cashTotal, bankTotal = bucketSplit(d.CashType, amount)
	}

	splitSide, counterSide := SidePlus, SideMinus
	if d.TxType == TxTypeDebit {
		splitSide, counterSide = SideMinus, SidePlus
	}
	for _, s := range d.Splits {
		headID := s.LedgerHeadID
		c, b := bucketSplit(d.CashType, RoundMoney(s.Amount))
		if d.CashType == CashTypeMultiple {
			c, b = RoundMoney(s.CashAmount), RoundMoney(s.BankAmount)
		}
		items = append(items, TransactionItem{LedgerHeadID: &headID, Amount: RoundMoney(s.Amount), CashAmount: c, BankAmount: b, Side: splitSide})
	}
	counter := TransactionItem{Amount: amount, CashAmount: cashTotal, BankAmount: bankTotal, Side: counterSide}
	if d.TxType == TxTypeDebit {
		target := d.TargetLedgerHeadID
		counter.LedgerHeadID = &target
	}
	items = append(items, counter)
	return items, cashTotal, bankTotal, nil
}
