package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// postingPath is the balance-update path shared by the transaction poster and the cheque
// lifecycle. It is the only writer of receipts, payments and cash/bank deltas.
type postingPath struct {
	heads     portsrepo.LedgerHeadRepositoryFacade
	snapshots portssvc.SnapshotStoreSvc
}

// lockHeads locks the ledger heads and checks they exist and belong to the account.
func (p *postingPath) lockHeads(ctx context.Context, accountID string, ids []string) (map[string]domain.LedgerHead, error) {
	if len(ids) == 0 {
		return map[string]domain.LedgerHead{}, nil
	}
	heads, err := p.heads.FindLedgerHeadsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		h, ok := heads[id]
		if !ok {
			return nil, apperrors.NewNotFoundError("ledger head", id)
		}
		if h.AccountID != accountID {
			return nil, apperrors.NewValidationError("ledger head %s does not belong to account %s", id, accountID)
		}
	}
	return heads, nil
}

// ensureSufficient checks that every source head can cover its outflow in each bucket.
func (p *postingPath) ensureSufficient(heads map[string]domain.LedgerHead, items []domain.TransactionItem) error {
	type need struct{ cash, bank decimal.Decimal }
	needs := make(map[string]need)
	for _, item := range items {
		if item.Side != domain.SideMinus || item.LedgerHeadID == nil {
			continue
		}
		n := needs[*item.LedgerHeadID]
		n.cash = n.cash.Add(item.CashAmount)
		n.bank = n.bank.Add(item.BankAmount)
		needs[*item.LedgerHeadID] = n
	}
	for _, id := range sortedKeys(needs) {
		h, n := heads[id], needs[id]
		if n.cash.GreaterThan(h.CashBalance) {
			return fmt.Errorf("%w: ledger head %s has cash %s, needs %s", apperrors.ErrInsufficientBalance, h.Name, h.CashBalance.StringFixed(2), n.cash.StringFixed(2))
		}
		if n.bank.GreaterThan(h.BankBalance) {
			return fmt.Errorf("%w: ledger head %s has bank %s, needs %s", apperrors.ErrInsufficientBalance, h.Name, h.BankBalance.StringFixed(2), n.bank.StringFixed(2))
		}
	}
	return nil
}

// apply adds (or with reverse, removes) the transaction's item effects to the locked heads
// and to the snapshot of the transaction's month. heads is updated in place.
func (p *postingPath) apply(ctx context.Context, tx domain.Transaction, heads map[string]domain.LedgerHead, reverse bool, actorID string, now time.Time) error {
	deltas := make(map[string]domain.BalanceDelta)
	for _, item := range tx.Items {
		if item.LedgerHeadID == nil {
			continue
		}
		deltas[*item.LedgerHeadID] = deltas[*item.LedgerHeadID].Add(item.Delta(reverse))
	}

	updated := make([]domain.LedgerHead, 0, len(deltas))
	for _, id := range sortedKeys(deltas) {
		d := deltas[id]
		h, ok := heads[id]
		if !ok {
			return apperrors.NewNotFoundError("ledger head", id)
		}
		h.Apply(d.Cash, d.Bank)
		h.Touch(actorID, now)
		heads[id] = h
		updated = append(updated, h)

		key := domain.SnapshotKey{AccountID: tx.AccountID, LedgerHeadID: id, Period: tx.Period()}
		if _, err := p.snapshots.ApplyDelta(ctx, key, d); err != nil {
			return fmt.Errorf("failed to update snapshot %s for ledger head %s: %w", key.Period, id, err)
		}
	}
	return p.heads.UpdateLedgerHeadBalances(ctx, updated)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
