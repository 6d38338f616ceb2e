package mapping

import (
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/SscSPs/ledger_period_engine/internal/models"
)

func ToModelSnapshot(d domain.MonthlyLedgerBalance) models.MonthlyLedgerBalance {
	return models.MonthlyLedgerBalance{
		ID:             d.ID,
		AccountID:      d.AccountID,
		LedgerHeadID:   d.LedgerHeadID,
		Month:          d.Month,
		Year:           d.Year,
		OpeningBalance: d.OpeningBalance,
		Receipts:       d.Receipts,
		Payments:       d.Payments,
		ClosingBalance: d.ClosingBalance,
		CashInHand:     d.CashInHand,
		CashInBank:     d.CashInBank,
		IsOpen:         d.IsOpen,
		AuditFields:    toModelAuditFields(d.AuditFields),
	}
}

func ToDomainSnapshot(m models.MonthlyLedgerBalance) domain.MonthlyLedgerBalance {
	return domain.MonthlyLedgerBalance{
		ID:             m.ID,
		AccountID:      m.AccountID,
		LedgerHeadID:   m.LedgerHeadID,
		Month:          m.Month,
		Year:           m.Year,
		OpeningBalance: m.OpeningBalance,
		Receipts:       m.Receipts,
		Payments:       m.Payments,
		ClosingBalance: m.ClosingBalance,
		CashInHand:     m.CashInHand,
		CashInBank:     m.CashInBank,
		IsOpen:         m.IsOpen,
		AuditFields:    toDomainAuditFields(m.AuditFields),
	}
}

func ToDomainSnapshotSlice(ms []models.MonthlyLedgerBalance) []domain.MonthlyLedgerBalance {
	if ms == nil {
		return nil
	}
	ds := make([]domain.MonthlyLedgerBalance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSnapshot(m)
	}
	return ds
}

func ToModelCorrection(d domain.BalanceCorrection) models.BalanceCorrection {
	return models.BalanceCorrection(d)
}

func ToDomainCorrection(m models.BalanceCorrection) domain.BalanceCorrection {
	return domain.BalanceCorrection(m)
}
