package mapping

import (
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/SscSPs/ledger_period_engine/internal/models"
)

func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Name:           d.Name,
		CashBalance:    d.CashBalance,
		BankBalance:    d.BankBalance,
		ClosingBalance: d.ClosingBalance,
		LastClosedDate: d.LastClosedDate,
		AuditFields:    toModelAuditFields(d.AuditFields),
	}
}

func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Name:           m.Name,
		CashBalance:    m.CashBalance,
		BankBalance:    m.BankBalance,
		ClosingBalance: m.ClosingBalance,
		LastClosedDate: m.LastClosedDate,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}

func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	if ms == nil {
		return nil
	}
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

func ToModelLedgerHead(d domain.LedgerHead) models.LedgerHead {
	return models.LedgerHead{
		LedgerHeadID:   d.LedgerHeadID,
		AccountID:      d.AccountID,
		Name:           d.Name,
		HeadType:       string(d.HeadType),
		CurrentBalance: d.CurrentBalance,
		CashBalance:    d.CashBalance,
		BankBalance:    d.BankBalance,
		AuditFields:    toModelAuditFields(d.AuditFields),
	}
}

func ToDomainLedgerHead(m models.LedgerHead) domain.LedgerHead {
	return domain.LedgerHead{
		LedgerHeadID:   m.LedgerHeadID,
		AccountID:      m.AccountID,
		Name:           m.Name,
		HeadType:       domain.HeadType(m.HeadType),
		CurrentBalance: m.CurrentBalance,
		CashBalance:    m.CashBalance,
		BankBalance:    m.BankBalance,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}

func ToDomainLedgerHeadSlice(ms []models.LedgerHead) []domain.LedgerHead {
	if ms == nil {
		return nil
	}
	ds := make([]domain.LedgerHead, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerHead(m)
	}
	return ds
}
