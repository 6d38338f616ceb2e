package services

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type balanceCalculator struct {
	BaseService
	snapshots portsrepo.SnapshotReader
	txs       portsrepo.TransactionReader
}

// NewBalanceCalculator creates the read-only balance calculator.
func NewBalanceCalculator(snapshots portsrepo.SnapshotReader, txs portsrepo.TransactionReader, opts ...Option) portssvc.BalanceCalculatorSvc {
	return &balanceCalculator{BaseService: newBaseService(opts...), snapshots: snapshots, txs: txs}
}

var _ portssvc.BalanceCalculatorSvc = (*balanceCalculator)(nil)

func (c *balanceCalculator) OpeningBalance(ctx context.Context, accountID, ledgerHeadID string, month, year int) (decimal.Decimal, error) {
	period, err := domain.NewPeriod(month, year)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError("%s", err.Error())
	}
	pos, err := c.OpeningPosition(ctx, accountID, ledgerHeadID, period)
	if err != nil {
		return decimal.Zero, err
	}
	return pos.Balance, nil
}

func (c *balanceCalculator) MonthlyActivity(ctx context.Context, accountID, ledgerHeadID string, month, year int) (decimal.Decimal, decimal.Decimal, error) {
	period, err := domain.NewPeriod(month, year)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewValidationError("%s", err.Error())
	}
	activity, err := c.Activity(ctx, accountID, ledgerHeadID, period)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return activity.Receipts, activity.Payments, nil
}

// OpeningPosition prefers the prior month's snapshot and falls back to the whole history
// dated before the month.
func (c *balanceCalculator) OpeningPosition(ctx context.Context, accountID, ledgerHeadID string, period domain.Period) (domain.Position, error) {
	prior, err := c.snapshots.FindSnapshot(ctx, domain.SnapshotKey{AccountID: accountID, LedgerHeadID: ledgerHeadID, Period: period.Prev()})
	if err == nil {
		return prior.ClosingPosition(), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Position{}, err
	}

	history, err := c.txs.SumLedgerHeadActivity(ctx, accountID, ledgerHeadID, portsrepo.ActivityRange{To: period.FirstDay()})
	if err != nil {
		return domain.Position{}, err
	}
	return domain.Position{
		Balance: domain.RoundMoney(history.Net()),
		Cash:    domain.RoundMoney(history.Cash),
		Bank:    domain.RoundMoney(history.Bank),
	}, nil
}

func (c *balanceCalculator) Activity(ctx context.Context, accountID, ledgerHeadID string, period domain.Period) (domain.BalanceDelta, error) {
	from := period.FirstDay()
	return c.txs.SumLedgerHeadActivity(ctx, accountID, ledgerHeadID, portsrepo.ActivityRange{From: &from, To: period.Next().FirstDay()})
}
