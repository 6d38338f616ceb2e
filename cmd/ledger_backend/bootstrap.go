package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/core/services"
	rediscache "github.com/SscSPs/ledger_period_engine/internal/repositories/cache/redis"
	"github.com/SscSPs/ledger_period_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_period_engine/internal/platform/config"
	"github.com/SscSPs/ledger_period_engine/internal/platform/metrics"
	"github.com/SscSPs/ledger_period_engine/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// application holds the long-lived dependencies shared by every command.
type application struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	redis    *redis.Client
	metrics  *metrics.Metrics
	services *portssvc.ServiceContainer
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger
}

// bootstrap loads config, connects to Postgres and optionally Redis, and builds the services.
func bootstrap(ctx context.Context) (*application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	app := &application{cfg: cfg, logger: logger, pool: pool, metrics: metrics.New()}

	var dedup portsrepo.RequestDedupStore
	if cfg.RedisURL != "" {
		client, err := rediscache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			app.close()
			return nil, err
		}
		app.redis = client
		dedup = rediscache.NewDedupStore(client, cfg.RequestDedupTTL)
		logger.Info("Redis connected, request deduplication enabled")
	} else {
		logger.Warn("REDIS_URL not set, request deduplication disabled")
	}

	repos := pgsql.NewRepositoryProvider(pool, dedup)
	app.services = services.NewServiceContainer(cfg, repos, app.metrics)
	return app, nil
}

func (a *application) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(a.pool)
}

func runMigrations(cfg *config.Config) error {
	migrator, err := database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrator.Close(); cerr != nil {
			slog.Error("Error closing migrator", slog.String("error", cerr.Error()))
		}
	}()
	return migrator.Up()
}
