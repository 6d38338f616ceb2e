package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/handlers"
	"github.com/SscSPs/ledger_period_engine/internal/jobs"
	"github.com/SscSPs/ledger_period_engine/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
)

var cmdServe = &cli.Command{
	Name:  "serve",
	Usage: "Run migrations and start the HTTP API",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "skip-migrations",
			Usage: "Start without applying pending migrations",
		},
	},
	Action: serve,
}

func serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer app.close()
	logger := app.logger

	if !cmd.Bool("skip-migrations") {
		logger.Info("Running database migrations...")
		if err := runMigrations(app.cfg); err != nil {
			return err
		}
	}

	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	limiter, err := middleware.NewLimiter(app.cfg.RateLimit, app.redis)
	if err != nil {
		return err
	}

	if app.cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(corsConfig(app.cfg.CORSAllowedOrigins)),
		middleware.RequestMetrics(app.metrics),
		middleware.RateLimit(limiter),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}
	handlers.RegisterRoutes(r, app.cfg, app.services, app.metrics)

	if app.cfg.ReconcileInterval > 0 {
		job := jobs.NewReconciliationJob(app.services.Reconciliation, app.cfg.ReconcileInterval, logger)
		job.Start(ctx)
		defer job.Stop()
	}

	srv := &http.Server{Addr: ":" + app.cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", app.cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowHeaders("Authorization", middleware.IdempotencyKeyHeader)
	return cfg
}
