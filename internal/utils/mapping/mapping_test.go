package mapping

import (
	"testing"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToModelBooklet_SortsPages(t *testing.T) {
	b := domain.Booklet{BookletID: "b1", StartNumber: 1, EndNumber: 5, AvailablePages: domain.PageSetOf([]int{4, 2, 5})}

	m := ToModelBooklet(b)
	assert.Equal(t, []int32{2, 4, 5}, m.AvailablePages)

	back := ToDomainBooklet(m)
	assert.True(t, back.AvailablePages.Contains(4))
	assert.False(t, back.AvailablePages.Contains(1))
	assert.Equal(t, 5, back.EndNumber)
}

func TestAuditEntryDetails(t *testing.T) {
	actor := "user-1"
	entry := domain.AuditEntry{AuditID: "a1", ActorID: &actor, Action: domain.AuditActionVoid, Details: map[string]any{"amount": "12.50"}}

	m, err := ToModelAuditEntry(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"12.50"}`, string(m.Details))

	back, err := ToDomainAuditEntry(m)
	require.NoError(t, err)
	assert.Equal(t, "12.50", back.Details["amount"])

	m, err = ToModelAuditEntry(domain.AuditEntry{AuditID: "a2"})
	require.NoError(t, err)
	assert.Nil(t, m.Details)
}

func TestToDomainTransaction_ReceiptNumber(t *testing.T) {
	n := 7
	tx := domain.Transaction{TransactionID: "t1", ReceiptNumber: &n, TxType: domain.TxTypeCredit}
	m := ToModelTransaction(tx)
	require.NotNil(t, m.ReceiptNumber)
	assert.EqualValues(t, 7, *m.ReceiptNumber)

	back := ToDomainTransaction(m, nil)
	assert.Equal(t, 7, *back.ReceiptNumber)
	assert.Empty(t, back.Items)
}
