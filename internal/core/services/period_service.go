package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/apperrors"
	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type periodService struct {
	BaseService
	txm       portsrepo.TransactionManager
	accounts  portsrepo.AccountRepositoryFacade
	heads     portsrepo.LedgerHeadRepositoryFacade
	openState portsrepo.SnapshotRepositoryFacade
	snapshots portssvc.SnapshotStoreSvc
	calc      portssvc.BalanceCalculatorSvc
}

// NewPeriodService creates the period closure service.
func NewPeriodService(
	txm portsrepo.TransactionManager,
	accounts portsrepo.AccountRepositoryFacade,
	heads portsrepo.LedgerHeadRepositoryFacade,
	snapshotRepo portsrepo.SnapshotRepositoryFacade,
	snapshots portssvc.SnapshotStoreSvc,
	calc portssvc.BalanceCalculatorSvc,
	opts ...Option,
) portssvc.PeriodSvcFacade {
	return &periodService{
		BaseService: newBaseService(opts...),
		txm:         txm,
		accounts:    accounts,
		heads:       heads,
		openState:   snapshotRepo,
		snapshots:   snapshots,
		calc:        calc,
	}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) GetOpenPeriodForAccount(ctx context.Context, accountID string) (*domain.Period, error) {
	if _, err := s.accounts.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.openState.FindOpenPeriod(ctx, accountID)
}

// ValidateTransactionPeriod decides whether a transaction dated txDate may be written.
// A closed date needs override and then requires recalculation. When the account has no
// open period yet and the current month is not closed, the current month is opened.
func (s *periodService) ValidateTransactionPeriod(ctx context.Context, accountID string, txDate time.Time, override bool) (bool, error) {
	account, err := s.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	txPeriod := domain.PeriodOf(txDate)
	requires := false

	closed := account.IsClosedOn(txDate)
	if closed {
		if !override {
			return false, fmt.Errorf("%w: %s is on or before %s", apperrors.ErrPeriodClosed,
				txDate.Format(time.DateOnly), account.LastClosedDate.Format(time.DateOnly))
		}
		requires = true
	}

	open, err := s.openState.FindOpenPeriod(ctx, accountID)
	if errors.Is(err, apperrors.ErrNotFound) {
		current := domain.PeriodOf(s.Now())
		if account.IsClosedOn(current.FirstDay()) {
			return requires, nil
		}
		if err := s.openPeriod(ctx, *account, current, domain.SystemActor); err != nil {
			return false, err
		}
		s.LogInfo(ctx, "Opened current month", slog.String("account_id", accountID), slog.String("period", current.String()))
		open, err = &current, nil
	}
	if err != nil {
		return false, err
	}

	if txPeriod != *open {
		if txPeriod.Before(*open) {
			requires = true
		}
		if !override && !closed {
			return false, fmt.Errorf("%w: %s, open period is %s", apperrors.ErrPeriodNotOpen, txPeriod, open)
		}
	}
	return requires, nil
}

func (s *periodService) OpenPeriod(ctx context.Context, period domain.Period, accountID string, actorID string) error {
	if _, err := domain.NewPeriod(period.Month, period.Year); err != nil {
		return apperrors.NewValidationError("%s", err.Error())
	}
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.accounts.FindAccountByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if account.IsClosedOn(period.LastDay()) {
			return fmt.Errorf("%w: %s", apperrors.ErrPeriodClosed, period)
		}
		return s.openPeriod(ctx, *account, period, actorID)
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Period opened", slog.String("account_id", accountID), slog.String("period", period.String()))
	s.audit(ctx, actorID, domain.AuditActionOpen, "account", accountID, map[string]any{"period": period.String()})
	return nil
}

// openPeriod makes sure every ledger head has a snapshot for period and flags it as the
// account's only open month.
func (s *periodService) openPeriod(ctx context.Context, account domain.Account, period domain.Period, actorID string) error {
	heads, err := s.heads.ListLedgerHeadsByAccount(ctx, account.AccountID)
	if err != nil {
		return err
	}
	for _, h := range heads {
		key := domain.SnapshotKey{AccountID: account.AccountID, LedgerHeadID: h.LedgerHeadID, Period: period}
		if _, err := s.snapshots.FindOrCreate(ctx, key); err != nil {
			return fmt.Errorf("failed to open %s for ledger head %s: %w", period, h.LedgerHeadID, err)
		}
	}
	if err := s.openState.SetOpenPeriod(ctx, account.AccountID, period); err != nil {
		return err
	}
	s.LogDebug(ctx, "Open period set", slog.String("account_id", account.AccountID), slog.String("period", period.String()), slog.String("actor", actorID))
	return nil
}

// ClosePeriod closes period for one account, or for every account when accountID is nil.
// Each account is closed in its own unit of work; in the all-accounts sweep a failing
// account is reported in its result and the sweep moves on.
func (s *periodService) ClosePeriod(ctx context.Context, period domain.Period, accountID *string, actorID string) ([]domain.PeriodCloseResult, error) {
	if _, err := domain.NewPeriod(period.Month, period.Year); err != nil {
		return nil, apperrors.NewValidationError("%s", err.Error())
	}
	if current := domain.PeriodOf(s.Now()); period.After(current) {
		return nil, apperrors.NewValidationError("cannot close %s before it has started (current month %s)", period, current)
	}

	if accountID != nil {
		result, err := s.closeAccount(ctx, *accountID, period, actorID)
		s.Metrics.ObservePeriodClose(err)
		if err != nil {
			return nil, err
		}
		return []domain.PeriodCloseResult{result}, nil
	}

	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]domain.PeriodCloseResult, 0, len(accounts))
	for _, a := range accounts {
		result, err := s.closeAccount(ctx, a.AccountID, period, actorID)
		s.Metrics.ObservePeriodClose(err)
		if err != nil {
			s.LogError(ctx, err, "Failed to close period for account",
				slog.String("account_id", a.AccountID), slog.String("period", period.String()))
			result = domain.PeriodCloseResult{AccountID: a.AccountID, Period: period, Err: err}
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *periodService) closeAccount(ctx context.Context, accountID string, period domain.Period, actorID string) (domain.PeriodCloseResult, error) {
	result := domain.PeriodCloseResult{AccountID: accountID, Period: period}
	next := period.Next()

	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.accounts.FindAccountByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if last, ok := account.LastClosedPeriod(); ok {
			if !period.After(last) {
				return fmt.Errorf("%w: %s, closed through %s", apperrors.ErrPeriodClosed, period, last)
			}
			if period != last.Next() {
				return fmt.Errorf("%w: closed through %s, next closable month is %s, got %s",
					apperrors.ErrPeriodOutOfSequence, last, last.Next(), period)
			}
		}

		heads, err := s.heads.ListLedgerHeadsByAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		now := s.Now()
		cash, bank := decimal.Zero, decimal.Zero
		touched := make([]domain.LedgerHead, 0, len(heads))
		for _, h := range heads {
			closed, carried, err := s.closeHead(ctx, accountID, h.LedgerHeadID, period)
			if err != nil {
				return fmt.Errorf("ledger head %s: %w", h.LedgerHeadID, err)
			}
			cash, bank = cash.Add(closed.CashInHand), bank.Add(closed.CashInBank)

			latest, err := s.snapshots.Latest(ctx, h.LedgerHeadID)
			if err != nil {
				return err
			}
			if latest.Period().After(next) {
				continue
			}
			h.SetBalances(carried.CashInHand, carried.CashInBank)
			h.Touch(actorID, now)
			touched = append(touched, h)
		}
		if len(touched) > 0 {
			if err := s.heads.UpdateLedgerHeadBalances(ctx, touched); err != nil {
				return err
			}
		}
		if err := s.openState.SetOpenPeriod(ctx, accountID, next); err != nil {
			return err
		}

		lastDay := period.LastDay()
		account.LastClosedDate = &lastDay
		account.CashBalance = domain.RoundMoney(cash)
		account.BankBalance = domain.RoundMoney(bank)
		account.ClosingBalance = account.CashBalance.Add(account.BankBalance)
		account.Touch(actorID, now)
		if err := s.accounts.UpdateAccountBalances(ctx, *account); err != nil {
			return err
		}

		result.LastClosedDate = lastDay
		result.HeadsClosed = len(heads)
		return nil
	})
	if err != nil {
		return domain.PeriodCloseResult{}, err
	}

	s.LogInfo(ctx, "Period closed",
		slog.String("account_id", accountID),
		slog.String("period", period.String()),
		slog.Int("heads", result.HeadsClosed))
	s.audit(ctx, actorID, domain.AuditActionClose, "account", accountID, map[string]any{
		"period":         period.String(),
		"lastClosedDate": result.LastClosedDate.Format(time.DateOnly),
	})
	return result, nil
}

// closeHead freezes the head's figures for period from transaction history and seeds the
// following month with the closing position carried forward.
func (s *periodService) closeHead(ctx context.Context, accountID, headID string, period domain.Period) (closed, carried *domain.MonthlyLedgerBalance, err error) {
	key := domain.SnapshotKey{AccountID: accountID, LedgerHeadID: headID, Period: period}
	opening, err := s.calc.OpeningPosition(ctx, accountID, headID, period)
	if err != nil {
		return nil, nil, err
	}
	activity, err := s.calc.Activity(ctx, accountID, headID, period)
	if err != nil {
		return nil, nil, err
	}
	snap, err := s.rebuild(ctx, key, opening, activity, false)
	if err != nil {
		return nil, nil, err
	}

	nextKey := domain.SnapshotKey{AccountID: accountID, LedgerHeadID: headID, Period: period.Next()}
	nextActivity, err := s.calc.Activity(ctx, accountID, headID, nextKey.Period)
	if err != nil {
		return nil, nil, err
	}
	nextSnap, err := s.rebuild(ctx, nextKey, snap.ClosingPosition(), nextActivity, true)
	if err != nil {
		return nil, nil, err
	}
	return snap, nextSnap, nil
}

// rebuild upserts a freshly computed snapshot, keeping the identity of an existing row.
func (s *periodService) rebuild(ctx context.Context, key domain.SnapshotKey, opening domain.Position, activity domain.BalanceDelta, isOpen bool) (*domain.MonthlyLedgerBalance, error) {
	snap := domain.NewSnapshot(key, opening, activity)
	snap.IsOpen = isOpen
	existing, err := s.snapshots.Get(ctx, key)
	switch {
	case err == nil:
		snap.ID = existing.ID
		snap.AuditFields = existing.AuditFields
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}
	return s.snapshots.Upsert(ctx, snap)
}

// ReopenPeriod moves last_closed_date back to the end of newClosingDate's month. Balances
// are left as they are; callers recalculate afterwards when back-posting.
func (s *periodService) ReopenPeriod(ctx context.Context, accountID string, newClosingDate time.Time, actorID string) (*domain.Account, error) {
	var reopened domain.Account
	var previous time.Time
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		account, err := s.accounts.FindAccountByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if account.LastClosedDate == nil {
			return apperrors.NewValidationError("account %s has no closed period", accountID)
		}
		newLast := domain.PeriodOf(newClosingDate).LastDay()
		if !newLast.Before(*account.LastClosedDate) {
			return apperrors.NewValidationError("new closing date %s must be before the current one %s",
				newLast.Format(time.DateOnly), account.LastClosedDate.Format(time.DateOnly))
		}
		previous = *account.LastClosedDate
		account.LastClosedDate = &newLast
		account.Touch(actorID, s.Now())
		if err := s.accounts.UpdateAccountBalances(ctx, *account); err != nil {
			return err
		}
		if err := s.openPeriod(ctx, *account, domain.PeriodOf(newLast).Next(), actorID); err != nil {
			return err
		}
		reopened = *account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Period reopened",
		slog.String("account_id", accountID),
		slog.String("last_closed_date", reopened.LastClosedDate.Format(time.DateOnly)))
	s.audit(ctx, actorID, domain.AuditActionReopen, "account", accountID, map[string]any{
		"previousLastClosedDate": previous.Format(time.DateOnly),
		"lastClosedDate":         reopened.LastClosedDate.Format(time.DateOnly),
	})
	return &reopened, nil
}
