package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// @title Ledger Period Engine API
// @version 1.0
// @description Posting, period closing and balance reconciliation for cash ledgers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	app := &cli.Command{
		Name:  "ledger_backend",
		Usage: "Ledger period engine",
		Commands: []*cli.Command{
			cmdServe,
			cmdMigrate,
			cmdReconcile,
			cmdRecalculate,
			cmdClosePeriod,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
