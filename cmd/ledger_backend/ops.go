package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/urfave/cli/v3"
)

var actorFlag = &cli.StringFlag{
	Name:  "actor",
	Usage: "Actor recorded in the audit log",
	Value: domain.SystemActor,
}

var cmdReconcile = &cli.Command{
	Name:   "reconcile",
	Usage:  "Run one reconciliation sweep and exit",
	Action: reconcileOnce,
}

var cmdRecalculate = &cli.Command{
	Name:  "recalculate",
	Usage: "Rebuild snapshots of an account forward from a date",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "account", Usage: "Account ID", Required: true},
		&cli.StringFlag{Name: "ledger-head", Usage: "Only this ledger head"},
		&cli.StringFlag{Name: "from", Usage: "Start date (YYYY-MM-DD)", Required: true},
		actorFlag,
	},
	Action: recalculate,
}

var cmdClosePeriod = &cli.Command{
	Name:  "close-period",
	Usage: "Close a month for one account or all accounts",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "month", Usage: "Month (1-12)", Required: true},
		&cli.IntFlag{Name: "year", Usage: "Year", Required: true},
		&cli.StringFlag{Name: "account", Usage: "Account ID; all accounts when omitted"},
		actorFlag,
	},
	Action: closePeriod,
}

func reconcileOnce(ctx context.Context, _ *cli.Command) error {
	app, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	report, err := app.services.Reconciliation.Reconcile(ctx)
	if err != nil {
		return err
	}
	app.logger.Info("Reconciliation finished",
		slog.Int("checked", report.Checked),
		slog.Int("corrected", len(report.Corrections)),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return nil
}

func recalculate(ctx context.Context, cmd *cli.Command) error {
	from, err := dto.ParseDate(cmd.String("from"))
	if err != nil {
		return err
	}
	app, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	accountID := cmd.String("account")
	actor := cmd.String("actor")
	if headID := cmd.String("ledger-head"); headID != "" {
		result, err := app.services.Recalculation.Recalculate(ctx, accountID, headID, from, actor)
		if err != nil {
			return err
		}
		app.logger.Info("Ledger head recalculated", slog.String("ledgerHeadID", headID),
			slog.String("currentBalance", result.CurrentBalance.StringFixed(2)))
		return nil
	}

	results, err := app.services.Recalculation.RecalculateAccount(ctx, accountID, from, actor)
	if err != nil {
		return err
	}
	app.logger.Info("Account recalculated", slog.String("accountID", accountID), slog.Int("ledgerHeads", len(results)))
	return nil
}

func closePeriod(ctx context.Context, cmd *cli.Command) error {
	period := domain.Period{Month: cmd.Int("month"), Year: cmd.Int("year")}
	if period.Month < 1 || period.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	app, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	var accountID *string
	if id := cmd.String("account"); id != "" {
		accountID = &id
	}
	started := time.Now()
	results, err := app.services.Period.ClosePeriod(ctx, period, accountID, cmd.String("actor"))
	if err != nil {
		return err
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			app.logger.Error("Period close failed", slog.String("accountID", r.AccountID), slog.String("error", r.Err.Error()))
			continue
		}
		app.logger.Info("Period closed", slog.String("accountID", r.AccountID),
			slog.String("lastClosedDate", r.LastClosedDate.Format(dto.DateLayout)), slog.Int("ledgerHeads", r.HeadsClosed))
	}
	app.logger.Info("Close finished", slog.Int("accounts", len(results)), slog.Int("failed", failed), slog.Duration("took", time.Since(started)))
	if failed > 0 {
		return fmt.Errorf("%d of %d accounts failed to close", failed, len(results))
	}
	return nil
}
