package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/core/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/SscSPs/ledger_period_engine/internal/platform/config"
	"github.com/SscSPs/ledger_period_engine/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	accID = "acc-1"
	headA = "head-a"
	headB = "head-b"
	actor = "user-1"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cashCredit(head, amount string, on time.Time) domain.TransactionDraft {
	return domain.TransactionDraft{
		AccountID: accID,
		CashType:  domain.CashTypeCash,
		Amount:    money(amount),
		TxDate:    on,
		Splits:    []domain.Split{{LedgerHeadID: head, Amount: money(amount)}},
	}
}

func cashDebit(from, to, amount string, on time.Time) domain.TransactionDraft {
	d := cashCredit(from, amount, on)
	d.TargetLedgerHeadID = to
	return d
}

type LedgerEngineTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memStore
	clock *testClock
	cfg   *config.Config
	svc   *portssvc.ServiceContainer
}

func TestLedgerEngineTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerEngineTestSuite))
}

func (s *LedgerEngineTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = newMemStore()
	s.clock = &testClock{now: day(2025, time.March, 10)}
	s.cfg = &config.Config{}
	seedStore(s.store)
	s.build()
}

func (s *LedgerEngineTestSuite) build() {
	s.svc = services.NewServiceContainer(s.cfg, s.store.provider(), metrics.New(), services.WithClock(s.clock.Now))
}

// seedStore creates one account with head A carrying 1000 cash into March and an empty head B.
func seedStore(st *memStore) {
	created := domain.NewAuditFields(actor, day(2025, time.January, 1))
	st.accounts[accID] = domain.Account{AccountID: accID, Name: "Main", AuditFields: created}

	a := domain.LedgerHead{LedgerHeadID: headA, AccountID: accID, Name: "General fund", HeadType: domain.HeadTypeCredit, AuditFields: created}
	a.SetBalances(money("1000"), decimal.Zero)
	st.heads[headA] = a
	st.heads[headB] = domain.LedgerHead{LedgerHeadID: headB, AccountID: accID, Name: "Expenses", HeadType: domain.HeadTypeDebit, AuditFields: created}

	feb := domain.Period{Month: 2, Year: 2025}
	for head, opening := range map[string]string{headA: "1000", headB: "0"} {
		key := domain.SnapshotKey{AccountID: accID, LedgerHeadID: head, Period: feb}
		snap := domain.NewSnapshot(key, domain.Position{Balance: money(opening), Cash: money(opening)}, domain.BalanceDelta{})
		snap.ID = "snap-feb-" + head
		snap.AuditFields = created
		st.snapshots[key] = snap
	}
}

func (s *LedgerEngineTestSuite) assertMoney(expected string, actual decimal.Decimal, msgAndArgs ...any) {
	s.Equal(money(expected).StringFixed(2), actual.StringFixed(2), msgAndArgs...)
}

func (s *LedgerEngineTestSuite) head(id string) domain.LedgerHead {
	h, err := s.svc.LedgerHead.GetLedgerHeadByID(s.ctx, id)
	s.Require().NoError(err)
	return *h
}

func (s *LedgerEngineTestSuite) snapshot(head string, month time.Month, year int) domain.MonthlyLedgerBalance {
	snap, err := s.svc.Snapshot.Get(s.ctx, domain.SnapshotKey{AccountID: accID, LedgerHeadID: head, Period: domain.Period{Month: int(month), Year: year}})
	s.Require().NoError(err)
	return *snap
}

func (s *LedgerEngineTestSuite) postMarchCredit() *domain.Transaction {
	tx, err := s.svc.Poster.PostCredit(s.ctx, cashCredit(headA, "500", day(2025, time.March, 10)), actor)
	s.Require().NoError(err)
	return tx
}

func (s *LedgerEngineTestSuite) closeMarch() {
	s.clock.now = day(2025, time.April, 2)
	acc := accID
	_, err := s.svc.Period.ClosePeriod(s.ctx, domain.Period{Month: 3, Year: 2025}, &acc, actor)
	s.Require().NoError(err)
}

func (s *LedgerEngineTestSuite) TestCreditIntoOpenMonth() {
	tx := s.postMarchCredit()

	s.Equal(domain.TxStatusCompleted, tx.Status)
	s.False(tx.RequiresRecalculation)
	s.NoError(tx.CheckBalanced())

	march := s.snapshot(headA, time.March, 2025)
	s.assertMoney("1000", march.OpeningBalance)
	s.assertMoney("500", march.Receipts)
	s.assertMoney("0", march.Payments)
	s.assertMoney("1500", march.ClosingBalance)
	s.True(march.IsOpen)
	s.assertMoney("1500", s.head(headA).CurrentBalance)

	open, err := s.svc.Period.GetOpenPeriodForAccount(s.ctx, accID)
	s.Require().NoError(err)
	s.Equal(domain.Period{Month: 3, Year: 2025}, *open)
	s.Contains(s.store.auditActions(), domain.AuditActionCreate)
}

func (s *LedgerEngineTestSuite) TestCloseMarchCarriesForward() {
	s.postMarchCredit()
	s.closeMarch()

	april := s.snapshot(headA, time.April, 2025)
	s.assertMoney("1500", april.OpeningBalance)
	s.True(april.IsOpen)
	s.False(s.snapshot(headA, time.March, 2025).IsOpen)

	acc, err := s.svc.Account.GetAccountByID(s.ctx, accID)
	s.Require().NoError(err)
	s.Require().NotNil(acc.LastClosedDate)
	s.Equal("2025-03-31", acc.LastClosedDate.Format(time.DateOnly))
	s.assertMoney("1500", acc.CashBalance)
	s.assertMoney("1500", acc.ClosingBalance)
	s.assertMoney("1500", s.head(headA).CurrentBalance)
}

func (s *LedgerEngineTestSuite) TestOverrideBackdatedCreditThenRecalculate() {
	s.postMarchCredit()
	s.closeMarch()

	draft := cashCredit(headA, "200", day(2025, time.March, 15))
	draft.AdminOverride = true
	tx, err := s.svc.Poster.PostCredit(s.ctx, draft, actor)
	s.Require().NoError(err)
	s.True(tx.RequiresRecalculation)
	s.assertMoney("1500", s.snapshot(headA, time.April, 2025).OpeningBalance, "April is stale until recalculated")

	result, err := s.svc.Recalculation.Recalculate(s.ctx, accID, headA, day(2025, time.March, 15), actor)
	s.Require().NoError(err)
	s.Equal(domain.Period{Month: 3, Year: 2025}, result.From)
	s.Equal(domain.Period{Month: 4, Year: 2025}, result.To)

	s.assertMoney("1700", s.snapshot(headA, time.March, 2025).ClosingBalance)
	april := s.snapshot(headA, time.April, 2025)
	s.assertMoney("1700", april.OpeningBalance)
	s.True(april.IsOpen)
	s.False(s.snapshot(headA, time.March, 2025).IsOpen)
	s.assertMoney("1700", s.head(headA).CurrentBalance)
}

func (s *LedgerEngineTestSuite) TestDebitExceedingCashIsRejected() {
	s.postMarchCredit()
	before := s.store.save()

	_, err := s.svc.Poster.PostDebit(s.ctx, cashDebit(headA, headB, "1600", day(2025, time.March, 12)), actor)
	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrInsufficientBalance))

	s.assertMoney("1500", s.head(headA).CashBalance)
	s.assertMoney("0", s.head(headB).CurrentBalance)
	s.Len(s.store.txs, len(before.txs))
	s.Equal(before.snapshots, s.store.snapshots)
}

func (s *LedgerEngineTestSuite) TestPostVoidRoundTrip() {
	s.Require().NoError(s.svc.Period.OpenPeriod(s.ctx, domain.Period{Month: 3, Year: 2025}, accID, actor))
	booklet, err := s.svc.Booklet.CreateBooklet(s.ctx, accID, dto.CreateBookletRequest{StartNumber: 1, EndNumber: 3}, actor)
	s.Require().NoError(err)
	headBefore := s.head(headA)
	snapBefore := s.snapshot(headA, time.March, 2025)

	draft := cashCredit(headA, "250.50", day(2025, time.March, 10))
	draft.BookletID = &booklet.BookletID
	tx, err := s.svc.Poster.PostCredit(s.ctx, draft, actor)
	s.Require().NoError(err)
	s.Require().NotNil(tx.ReceiptNumber)
	s.Equal(1, *tx.ReceiptNumber)
	taken, err := s.svc.Booklet.GetBookletByID(s.ctx, booklet.BookletID)
	s.Require().NoError(err)
	s.Equal([]int{2, 3}, taken.AvailablePages.Sorted())

	s.Require().NoError(s.svc.Poster.VoidTransaction(s.ctx, tx.TransactionID, actor))

	headAfter := s.head(headA)
	s.assertMoney(headBefore.CashBalance.String(), headAfter.CashBalance)
	s.assertMoney(headBefore.BankBalance.String(), headAfter.BankBalance)
	s.assertMoney(headBefore.CurrentBalance.String(), headAfter.CurrentBalance)
	snapAfter := s.snapshot(headA, time.March, 2025)
	s.assertMoney(snapBefore.Receipts.String(), snapAfter.Receipts)
	s.assertMoney(snapBefore.ClosingBalance.String(), snapAfter.ClosingBalance)
	s.assertMoney(snapBefore.CashInHand.String(), snapAfter.CashInHand)

	restored, err := s.svc.Booklet.GetBookletByID(s.ctx, booklet.BookletID)
	s.Require().NoError(err)
	s.Equal([]int{1, 2, 3}, restored.AvailablePages.Sorted())
	s.False(restored.IsClosed)

	_, err = s.svc.Poster.GetTransaction(s.ctx, tx.TransactionID)
	s.True(errors.Is(err, apperrors.ErrNotFound))
}

func (s *LedgerEngineTestSuite) TestVoidInClosedPeriodIsRejected() {
	tx := s.postMarchCredit()
	s.closeMarch()

	err := s.svc.Poster.VoidTransaction(s.ctx, tx.TransactionID, actor)
	s.True(errors.Is(err, apperrors.ErrPeriodClosed))
	s.assertMoney("1500", s.head(headA).CurrentBalance)
}

func figures(snaps []domain.MonthlyLedgerBalance) []string {
	out := make([]string, len(snaps))
	for i, sn := range snaps {
		out[i] = fmt.Sprintf("%s %s o=%s r=%s p=%s c=%s cash=%s bank=%s open=%t",
			sn.ID, sn.Period(), sn.OpeningBalance.StringFixed(2), sn.Receipts.StringFixed(2), sn.Payments.StringFixed(2),
			sn.ClosingBalance.StringFixed(2), sn.CashInHand.StringFixed(2), sn.CashInBank.StringFixed(2), sn.IsOpen)
	}
	return out
}

func (s *LedgerEngineTestSuite) TestRecalculateIsIdempotent() {
	s.postMarchCredit()
	_, err := s.svc.Poster.PostDebit(s.ctx, cashDebit(headA, headB, "120.25", day(2025, time.March, 20)), actor)
	s.Require().NoError(err)
	s.clock.now = day(2025, time.May, 3)

	first, err := s.svc.Recalculation.Recalculate(s.ctx, accID, headA, day(2025, time.March, 1), actor)
	s.Require().NoError(err)
	stored, err := s.svc.Snapshot.ListForLedgerHead(s.ctx, headA, &domain.Period{Month: 3, Year: 2025})
	s.Require().NoError(err)

	second, err := s.svc.Recalculation.Recalculate(s.ctx, accID, headA, day(2025, time.March, 1), actor)
	s.Require().NoError(err)
	storedAgain, err := s.svc.Snapshot.ListForLedgerHead(s.ctx, headA, &domain.Period{Month: 3, Year: 2025})
	s.Require().NoError(err)

	s.Len(first.Snapshots, 3)
	s.Equal(figures(first.Snapshots), figures(second.Snapshots))
	s.Equal(figures(stored), figures(storedAgain))
	s.assertMoney("1379.75", second.CurrentBalance)
	for _, sn := range storedAgain {
		s.True(sn.IsConsistent())
	}
}

func (s *LedgerEngineTestSuite) TestClosePeriodSequence() {
	s.postMarchCredit()
	s.closeMarch()
	acc := accID

	_, err := s.svc.Period.ClosePeriod(s.ctx, domain.Period{Month: 3, Year: 2025}, &acc, actor)
	s.True(errors.Is(err, apperrors.ErrPeriodClosed))

	s.clock.now = day(2025, time.June, 5)
	_, err = s.svc.Period.ClosePeriod(s.ctx, domain.Period{Month: 5, Year: 2025}, &acc, actor)
	s.True(errors.Is(err, apperrors.ErrPeriodOutOfSequence))
	s.True(errors.Is(err, apperrors.ErrConflict))

	_, err = s.svc.Period.ClosePeriod(s.ctx, domain.Period{Month: 7, Year: 2025}, &acc, actor)
	s.True(errors.Is(err, apperrors.ErrValidation))

	results, err := s.svc.Period.ClosePeriod(s.ctx, domain.Period{Month: 4, Year: 2025}, &acc, actor)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal("2025-04-30", results[0].LastClosedDate.Format(time.DateOnly))
}

func (s *LedgerEngineTestSuite) TestClosePeriodForAllAccountsContinuesPastFailures() {
	closed := day(2025, time.March, 31)
	s.store.accounts["acc-2"] = domain.Account{AccountID: "acc-2", Name: "Closed", LastClosedDate: &closed}
	s.clock.now = day(2025, time.April, 2)

	results, err := s.svc.Period.ClosePeriod(s.ctx, domain.Period{Month: 3, Year: 2025}, nil, actor)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.NoError(results[0].Err)
	s.Equal(accID, results[0].AccountID)
	s.Equal(2, results[0].HeadsClosed)
	s.True(errors.Is(results[1].Err, apperrors.ErrPeriodClosed))
}

func (s *LedgerEngineTestSuite) TestPeriodValidation() {
	s.postMarchCredit()

	_, err := s.svc.Poster.PostCredit(s.ctx, cashCredit(headA, "10", day(2025, time.April, 5)), actor)
	s.True(errors.Is(err, apperrors.ErrPeriodNotOpen))

	s.closeMarch()
	_, err = s.svc.Poster.PostCredit(s.ctx, cashCredit(headA, "10", day(2025, time.March, 20)), actor)
	s.True(errors.Is(err, apperrors.ErrPeriodClosed))

	requires, err := s.svc.Period.ValidateTransactionPeriod(s.ctx, accID, day(2025, time.April, 20), false)
	s.NoError(err)
	s.False(requires)
}

func (s *LedgerEngineTestSuite) TestReopenPeriod() {
	s.postMarchCredit()
	s.closeMarch()

	_, err := s.svc.Period.ReopenPeriod(s.ctx, accID, day(2025, time.April, 10), actor)
	s.True(errors.Is(err, apperrors.ErrValidation))

	acc, err := s.svc.Period.ReopenPeriod(s.ctx, accID, day(2025, time.February, 10), actor)
	s.Require().NoError(err)
	s.Equal("2025-02-28", acc.LastClosedDate.Format(time.DateOnly))

	open, err := s.svc.Period.GetOpenPeriodForAccount(s.ctx, accID)
	s.Require().NoError(err)
	s.Equal(domain.Period{Month: 3, Year: 2025}, *open)

	tx, err := s.svc.Poster.PostCredit(s.ctx, cashCredit(headA, "25", day(2025, time.March, 28)), actor)
	s.Require().NoError(err)
	s.False(tx.RequiresRecalculation)
	s.Contains(s.store.auditActions(), domain.AuditActionReopen)
}

func (s *LedgerEngineTestSuite) TestUpdateTransaction() {
	tx := s.postMarchCredit()

	updated, err := s.svc.Poster.UpdateTransaction(s.ctx, tx.TransactionID, cashCredit(headA, "300", day(2025, time.March, 11)), actor)
	s.Require().NoError(err)
	s.assertMoney("300", updated.Amount)
	s.Equal(tx.TransactionID, updated.TransactionID)

	s.assertMoney("1300", s.head(headA).CurrentBalance)
	march := s.snapshot(headA, time.March, 2025)
	s.assertMoney("300", march.Receipts)
	s.assertMoney("1300", march.ClosingBalance)

	wrongType := cashDebit(headA, headB, "300", day(2025, time.March, 11))
	wrongType.TxType = domain.TxTypeDebit
	_, err = s.svc.Poster.UpdateTransaction(s.ctx, tx.TransactionID, wrongType, actor)
	s.True(errors.Is(err, apperrors.ErrValidation))
}

func (s *LedgerEngineTestSuite) TestUpdateRollsBackOnInsufficientBalance() {
	tx, err := s.svc.Poster.PostDebit(s.ctx, cashDebit(headA, headB, "400", day(2025, time.March, 10)), actor)
	s.Require().NoError(err)

	_, err = s.svc.Poster.UpdateTransaction(s.ctx, tx.TransactionID, cashDebit(headA, headB, "1200", day(2025, time.March, 10)), actor)
	s.True(errors.Is(err, apperrors.ErrInsufficientBalance))

	s.assertMoney("600", s.head(headA).CashBalance)
	s.assertMoney("400", s.head(headB).CashBalance)
	stored, err := s.svc.Poster.GetTransaction(s.ctx, tx.TransactionID)
	s.Require().NoError(err)
	s.assertMoney("400", stored.Amount)
	s.assertMoney("400", s.snapshot(headA, time.March, 2025).Payments)
}

func (s *LedgerEngineTestSuite) TestMultipleCashTypeSplitsBuckets() {
	draft := cashCredit(headA, "300", day(2025, time.March, 10))
	draft.CashType = domain.CashTypeMultiple
	draft.CashAmount, draft.BankAmount = money("100"), money("200")
	draft.Splits[0].CashAmount, draft.Splits[0].BankAmount = money("100"), money("200")
	_, err := s.svc.Poster.PostCredit(s.ctx, draft, actor)
	s.Require().NoError(err)

	h := s.head(headA)
	s.assertMoney("1100", h.CashBalance)
	s.assertMoney("200", h.BankBalance)

	draft.BankAmount = money("150")
	_, err = s.svc.Poster.PostCredit(s.ctx, draft, actor)
	s.True(errors.Is(err, apperrors.ErrInvariantViolation))
}

func (s *LedgerEngineTestSuite) TestBookletAllocation() {
	booklet, err := s.svc.Booklet.CreateBooklet(s.ctx, accID, dto.CreateBookletRequest{StartNumber: 1, EndNumber: 2}, actor)
	s.Require().NoError(err)

	_, err = s.svc.Booklet.CreateBooklet(s.ctx, accID, dto.CreateBookletRequest{StartNumber: 2, EndNumber: 5}, actor)
	s.True(errors.Is(err, apperrors.ErrConflict))

	post := func(requested *int) (*domain.Transaction, error) {
		d := cashCredit(headA, "10", day(2025, time.March, 10))
		d.BookletID, d.ReceiptNumber = &booklet.BookletID, requested
		return s.svc.Poster.PostCredit(s.ctx, d, actor)
	}
	two, nine := 2, 9

	tx, err := post(&two)
	s.Require().NoError(err)
	s.Equal(2, *tx.ReceiptNumber)

	_, err = post(&two)
	s.True(errors.Is(err, apperrors.ErrReceiptNumberUsed))
	_, err = post(&nine)
	s.True(errors.Is(err, apperrors.ErrValidation))

	tx, err = post(nil)
	s.Require().NoError(err)
	s.Equal(1, *tx.ReceiptNumber)

	_, err = post(nil)
	s.True(errors.Is(err, apperrors.ErrBookletExhausted))
	s.assertMoney("1020", s.head(headA).CurrentBalance)
}

func (s *LedgerEngineTestSuite) postBankCreditAndCheque(amount string) (*domain.Transaction, *domain.Cheque) {
	bank := cashCredit(headA, "800", day(2025, time.March, 10))
	bank.CashType = domain.CashTypeBank
	_, err := s.svc.Poster.PostCredit(s.ctx, bank, actor)
	s.Require().NoError(err)

	draft := cashDebit(headA, headB, amount, day(2025, time.March, 10))
	draft.CashType = domain.CashTypeCheque
	draft.Cheque = &domain.ChequeDetails{ChequeNumber: "000123", BankName: "First Bank"}
	tx, err := s.svc.Poster.PostDebit(s.ctx, draft, actor)
	s.Require().NoError(err)
	cheque, err := s.store.FindChequeByTransactionID(s.ctx, tx.TransactionID)
	s.Require().NoError(err)
	return tx, cheque
}

func (s *LedgerEngineTestSuite) TestChequeClearAndCancel() {
	tx, cheque := s.postBankCreditAndCheque("300")
	s.Equal(domain.TxStatusPending, tx.Status)
	s.assertMoney("800", s.head(headA).BankBalance, "pending cheque moves nothing")

	cleared, err := s.svc.Cheque.ClearCheque(s.ctx, cheque.ChequeID, actor)
	s.Require().NoError(err)
	s.Equal(domain.ChequeStatusCleared, cleared.Status)
	s.NotNil(cleared.ClearedAt)
	s.assertMoney("500", s.head(headA).BankBalance)
	s.assertMoney("1000", s.head(headA).CashBalance)
	s.assertMoney("300", s.head(headB).BankBalance)
	stored, err := s.svc.Poster.GetTransaction(s.ctx, tx.TransactionID)
	s.Require().NoError(err)
	s.Equal(domain.TxStatusCompleted, stored.Status)

	_, err = s.svc.Cheque.ClearCheque(s.ctx, cheque.ChequeID, actor)
	s.True(errors.Is(err, apperrors.ErrConflict))

	draft := cashDebit(headA, headB, "100", day(2025, time.March, 11))
	draft.CashType = domain.CashTypeCheque
	draft.Cheque = &domain.ChequeDetails{ChequeNumber: "000124", BankName: "First Bank"}
	second, err := s.svc.Poster.PostDebit(s.ctx, draft, actor)
	s.Require().NoError(err)
	secondCheque, err := s.store.FindChequeByTransactionID(s.ctx, second.TransactionID)
	s.Require().NoError(err)

	cancelled, err := s.svc.Cheque.CancelCheque(s.ctx, secondCheque.ChequeID, actor)
	s.Require().NoError(err)
	s.Equal(domain.ChequeStatusCancelled, cancelled.Status)
	s.assertMoney("500", s.head(headA).BankBalance)
	stored, err = s.svc.Poster.GetTransaction(s.ctx, second.TransactionID)
	s.Require().NoError(err)
	s.Equal(domain.TxStatusCancelled, stored.Status)
}

func (s *LedgerEngineTestSuite) TestChequeClearRejectsOverdrawnBank() {
	_, cheque := s.postBankCreditAndCheque("900")

	_, err := s.svc.Cheque.ClearCheque(s.ctx, cheque.ChequeID, actor)
	s.True(errors.Is(err, apperrors.ErrInsufficientBalance))
	s.assertMoney("800", s.head(headA).BankBalance)
}

func (s *LedgerEngineTestSuite) TestChequeClearedAfterCloseLandsInClearingMonth() {
	tx, cheque := s.postBankCreditAndCheque("300")
	s.closeMarch()
	s.clock.now = day(2025, time.April, 3)

	_, err := s.svc.Cheque.ClearCheque(s.ctx, cheque.ChequeID, actor)
	s.Require().NoError(err)

	stored, err := s.svc.Poster.GetTransaction(s.ctx, tx.TransactionID)
	s.Require().NoError(err)
	s.Equal("2025-04-03", stored.TxDate.Format(time.DateOnly))
	s.assertMoney("0", s.snapshot(headA, time.March, 2025).Payments)
	s.assertMoney("300", s.snapshot(headA, time.April, 2025).Payments)
	s.assertMoney("300", s.snapshot(headB, time.April, 2025).Receipts)
	s.assertMoney("500", s.head(headA).BankBalance)
}

func (s *LedgerEngineTestSuite) TestReconcile() {
	s.postMarchCredit()

	drifted := s.store.heads[headA]
	drifted.SetBalances(money("1400"), decimal.Zero)
	s.store.heads[headA] = drifted
	s.store.heads["head-c"] = domain.LedgerHead{LedgerHeadID: "head-c", AccountID: accID, Name: "No history", HeadType: domain.HeadTypeCredit}
	s.store.heads["head-d"] = domain.LedgerHead{LedgerHeadID: "head-d", AccountID: accID, Name: "Locked", HeadType: domain.HeadTypeCredit}
	dKey := domain.SnapshotKey{AccountID: accID, LedgerHeadID: "head-d", Period: domain.Period{Month: 2, Year: 2025}}
	s.store.snapshots[dKey] = domain.NewSnapshot(dKey, domain.Position{}, domain.BalanceDelta{})
	s.store.lockErrors["head-d"] = errors.New("lock timeout")

	report, err := s.svc.Reconciliation.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, report.Checked)
	s.Equal(1, report.Skipped)
	s.Equal(1, report.Failed)
	s.Require().Len(report.Corrections, 1)
	c := report.Corrections[0]
	s.Equal(headA, c.LedgerHeadID)
	s.assertMoney("1400", c.OldBalance)
	s.assertMoney("1500", c.NewBalance)
	s.Equal(s.snapshot(headA, time.March, 2025).ID, c.SnapshotID)
	s.assertMoney("1500", s.head(headA).CurrentBalance)
	s.Len(s.store.corrections, 1)

	delete(s.store.lockErrors, "head-d")
	again, err := s.svc.Reconciliation.Reconcile(s.ctx)
	s.Require().NoError(err)
	s.Empty(again.Corrections)
	s.Zero(again.Failed)
}

func (s *LedgerEngineTestSuite) TestAutoRecalculationAfterBackdatedPost() {
	s.cfg.AutoRecalculateBackdated = true
	s.build()
	s.postMarchCredit()
	s.closeMarch()

	draft := cashCredit(headA, "200", day(2025, time.March, 15))
	draft.AdminOverride = true
	_, err := s.svc.Poster.PostCredit(s.ctx, draft, actor)
	s.Require().NoError(err)

	s.assertMoney("1700", s.snapshot(headA, time.March, 2025).ClosingBalance)
	s.assertMoney("1700", s.snapshot(headA, time.April, 2025).OpeningBalance)
	s.Contains(s.store.auditActions(), domain.AuditActionRecalculate)
}

func (s *LedgerEngineTestSuite) TestListTransactionsPaginates() {
	for d := 1; d <= 3; d++ {
		_, err := s.svc.Poster.PostCredit(s.ctx, cashCredit(headA, "1", day(2025, time.March, d)), actor)
		s.Require().NoError(err)
	}
	page, next, err := s.svc.Poster.ListTransactions(s.ctx, accID, 2, nil)
	s.Require().NoError(err)
	s.Len(page, 2)
	s.Require().NotNil(next)
	rest, next, err := s.svc.Poster.ListTransactions(s.ctx, accID, 2, next)
	s.Require().NoError(err)
	s.Len(rest, 1)
	s.Nil(next)
}

func (s *LedgerEngineTestSuite) TestListTransactionsKeepsRowsWithIdenticalTimestamps() {
	// The fixed clock gives every row the same created_at.
	posted := map[string]bool{}
	for i := 0; i < 5; i++ {
		tx, err := s.svc.Poster.PostCredit(s.ctx, cashCredit(headA, "1", day(2025, time.March, 5)), actor)
		s.Require().NoError(err)
		posted[tx.TransactionID] = true
	}

	seen := map[string]bool{}
	var next *string
	for pages := 0; pages < 5; pages++ {
		page, token, err := s.svc.Poster.ListTransactions(s.ctx, accID, 2, next)
		s.Require().NoError(err)
		for _, tx := range page {
			s.False(seen[tx.TransactionID], "transaction %s listed twice", tx.TransactionID)
			seen[tx.TransactionID] = true
		}
		if token == nil {
			break
		}
		next = token
	}
	s.Equal(posted, seen)
}

func (s *LedgerEngineTestSuite) TestBookletOfAnotherAccountIsRejected() {
	const otherAccID = "acc-2"
	s.store.accounts[otherAccID] = domain.Account{AccountID: otherAccID, Name: "Branch", AuditFields: domain.NewAuditFields(actor, day(2025, time.January, 1))}
	foreign, err := s.svc.Booklet.CreateBooklet(s.ctx, otherAccID, dto.CreateBookletRequest{StartNumber: 1, EndNumber: 5}, actor)
	s.Require().NoError(err)
	txsBefore := len(s.store.txs)

	draft := cashCredit(headA, "100", day(2025, time.March, 10))
	draft.BookletID = &foreign.BookletID
	_, err = s.svc.Poster.PostCredit(s.ctx, draft, actor)
	s.True(errors.Is(err, apperrors.ErrValidation), "got %v", err)
	s.Len(s.store.txs, txsBefore)
	s.assertMoney("1000", s.head(headA).CurrentBalance)

	own, err := s.svc.Poster.PostCredit(s.ctx, cashCredit(headA, "100", day(2025, time.March, 10)), actor)
	s.Require().NoError(err)
	edit := cashCredit(headA, "100", day(2025, time.March, 10))
	edit.BookletID = &foreign.BookletID
	_, err = s.svc.Poster.UpdateTransaction(s.ctx, own.TransactionID, edit, actor)
	s.True(errors.Is(err, apperrors.ErrValidation), "got %v", err)

	untouched, err := s.svc.Booklet.GetBookletByID(s.ctx, foreign.BookletID)
	s.Require().NoError(err)
	s.Equal([]int{1, 2, 3, 4, 5}, untouched.AvailablePages.Sorted())
}
