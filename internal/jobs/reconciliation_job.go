package jobs

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
)

// ReconciliationJob runs the reconciliation sweep on a fixed interval.
// A tick that arrives while a sweep is still running is skipped.
type ReconciliationJob struct {
	svc      portssvc.ReconciliationSvc
	interval time.Duration
	logger   *slog.Logger

	running atomic.Bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

func NewReconciliationJob(svc portssvc.ReconciliationSvc, interval time.Duration, logger *slog.Logger) *ReconciliationJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationJob{svc: svc, interval: interval, logger: logger.With("job", "reconciliation")}
}

// Start launches the loop. It returns immediately; call Stop to end it.
func (j *ReconciliationJob) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)
	j.wg.Add(1)
	go j.loop(ctx)
	j.logger.Info("Reconciliation job started", slog.Duration("interval", j.interval))
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (j *ReconciliationJob) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	j.wg.Wait()
	j.logger.Info("Reconciliation job stopped")
}

func (j *ReconciliationJob) loop(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.RunOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce performs a single sweep and reports whether it ran.
func (j *ReconciliationJob) RunOnce(ctx context.Context) bool {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("Previous reconciliation still running, skipping tick")
		return false
	}
	defer j.running.Store(false)

	report, err := j.svc.Reconcile(ctx)
	if err != nil {
		j.logger.Error("Reconciliation sweep failed", slog.String("error", err.Error()))
		return true
	}
	j.logger.Info("Reconciliation sweep finished",
		slog.Int("checked", report.Checked),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Int("corrections", len(report.Corrections)),
	)
	return true
}
