package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_period_engine/internal/platform/config"
	"github.com/SscSPs/ledger_period_engine/pkg/database"
	"github.com/urfave/cli/v3"
)

var cmdMigrate = &cli.Command{
	Name:  "migrate",
	Usage: "Database migration commands",
	Commands: []*cli.Command{
		{
			Name:   "up",
			Usage:  "Run all pending migrations",
			Action: migrateUp,
		},
		{
			Name:  "down",
			Usage: "Roll back migrations",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "steps",
					Usage: "Number of migrations to roll back",
					Value: 1,
				},
			},
			Action: migrateDown,
		},
		{
			Name:   "version",
			Usage:  "Print the current version of the database",
			Action: migrateVersion,
		},
	},
}

func withMigrator(fn func(*database.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	newLogger(cfg)
	migrator, err := database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrator.Close(); cerr != nil {
			slog.Error("Error closing migrator", slog.String("error", cerr.Error()))
		}
	}()
	return fn(migrator)
}

func migrateUp(_ context.Context, _ *cli.Command) error {
	return withMigrator(func(m *database.Migrator) error { return m.Up() })
}

func migrateDown(_ context.Context, cmd *cli.Command) error {
	steps := cmd.Int("steps")
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}
	return withMigrator(func(m *database.Migrator) error { return m.Down(steps) })
}

func migrateVersion(_ context.Context, _ *cli.Command) error {
	return withMigrator(func(m *database.Migrator) error {
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	})
}
