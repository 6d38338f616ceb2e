package mapping

import (
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/SscSPs/ledger_period_engine/internal/models"
)

// ToModelTransaction converts the header only; items are mapped separately.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var receipt *int32
	if d.ReceiptNumber != nil {
		n := int32(*d.ReceiptNumber)
		receipt = &n
	}
	return models.Transaction{
		TransactionID:         d.TransactionID,
		AccountID:             d.AccountID,
		TxType:                string(d.TxType),
		CashType:              string(d.CashType),
		Amount:                d.Amount,
		CashAmount:            d.CashAmount,
		BankAmount:            d.BankAmount,
		TxDate:                d.TxDate,
		Status:                string(d.Status),
		BookletID:             d.BookletID,
		ReceiptNumber:         receipt,
		RequestID:             d.RequestID,
		RequiresRecalculation: d.RequiresRecalculation,
		Description:           d.Description,
		AuditFields:           toModelAuditFields(d.AuditFields),
	}
}

func ToDomainTransaction(m models.Transaction, items []models.TransactionItem) domain.Transaction {
	var receipt *int
	if m.ReceiptNumber != nil {
		n := int(*m.ReceiptNumber)
		receipt = &n
	}
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		AccountID:             m.AccountID,
		TxType:                domain.TxType(m.TxType),
		CashType:              domain.CashType(m.CashType),
		Amount:                m.Amount,
		CashAmount:            m.CashAmount,
		BankAmount:            m.BankAmount,
		TxDate:                m.TxDate,
		Status:                domain.TxStatus(m.Status),
		BookletID:             m.BookletID,
		ReceiptNumber:         receipt,
		RequestID:             m.RequestID,
		RequiresRecalculation: m.RequiresRecalculation,
		Description:           m.Description,
		Items:                 ToDomainTransactionItemSlice(items),
		AuditFields:           toDomainAuditFields(m.AuditFields),
	}
}

func ToModelTransactionItem(d domain.TransactionItem) models.TransactionItem {
	return models.TransactionItem{
		ItemID:        d.ItemID,
		TransactionID: d.TransactionID,
		LedgerHeadID:  d.LedgerHeadID,
		Amount:        d.Amount,
		CashAmount:    d.CashAmount,
		BankAmount:    d.BankAmount,
		Side:          string(d.Side),
	}
}

func ToDomainTransactionItem(m models.TransactionItem) domain.TransactionItem {
	return domain.TransactionItem{
		ItemID:        m.ItemID,
		TransactionID: m.TransactionID,
		LedgerHeadID:  m.LedgerHeadID,
		Amount:        m.Amount,
		CashAmount:    m.CashAmount,
		BankAmount:    m.BankAmount,
		Side:          domain.Side(m.Side),
	}
}

func ToDomainTransactionItemSlice(ms []models.TransactionItem) []domain.TransactionItem {
	ds := make([]domain.TransactionItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionItem(m)
	}
	return ds
}

// ToModelBooklet flattens the page set to a sorted int[].
func ToModelBooklet(d domain.Booklet) models.Booklet {
	sorted := d.AvailablePages.Sorted()
	pages := make([]int32, len(sorted))
	for i, n := range sorted {
		pages[i] = int32(n)
	}
	return models.Booklet{
		BookletID:      d.BookletID,
		AccountID:      d.AccountID,
		StartNumber:    int32(d.StartNumber),
		EndNumber:      int32(d.EndNumber),
		AvailablePages: pages,
		IsClosed:       d.IsClosed,
		AuditFields:    toModelAuditFields(d.AuditFields),
	}
}

func ToDomainBooklet(m models.Booklet) domain.Booklet {
	pages := make([]int, len(m.AvailablePages))
	for i, n := range m.AvailablePages {
		pages[i] = int(n)
	}
	return domain.Booklet{
		BookletID:      m.BookletID,
		AccountID:      m.AccountID,
		StartNumber:    int(m.StartNumber),
		EndNumber:      int(m.EndNumber),
		AvailablePages: domain.PageSetOf(pages),
		IsClosed:       m.IsClosed,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}

func ToModelCheque(d domain.Cheque) models.Cheque {
	return models.Cheque{
		ChequeID:      d.ChequeID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		ChequeNumber:  d.ChequeNumber,
		BankName:      d.BankName,
		Status:        string(d.Status),
		ClearedAt:     d.ClearedAt,
		AuditFields:   toModelAuditFields(d.AuditFields),
	}
}

func ToDomainCheque(m models.Cheque) domain.Cheque {
	return domain.Cheque{
		ChequeID:      m.ChequeID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		ChequeNumber:  m.ChequeNumber,
		BankName:      m.BankName,
		Status:        domain.ChequeStatus(m.Status),
		ClearedAt:     m.ClearedAt,
		AuditFields:   toDomainAuditFields(m.AuditFields),
	}
}
