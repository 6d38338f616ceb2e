package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/middleware"
	"github.com/SscSPs/ledger_period_engine/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock   func() time.Time
	Auditor portssvc.AuditSvc
	Metrics *metrics.Metrics
}

// Option configures the BaseService embedded in every service.
type Option func(*BaseService)

// WithClock overrides the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(b *BaseService) { b.Clock = clock }
}

// WithAuditor sets the audit logger notified after each committed change.
func WithAuditor(a portssvc.AuditSvc) Option {
	return func(b *BaseService) { b.Auditor = a }
}

// WithMetrics sets the prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *BaseService) { b.Metrics = m }
}

func newBaseService(opts ...Option) BaseService {
	b := BaseService{}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// audit forwards to the auditor when one is configured.
func (s *BaseService) audit(ctx context.Context, actorID string, action domain.AuditAction, entityKind, entityID string, details map[string]any) {
	if s.Auditor == nil {
		return
	}
	var actor *string
	if actorID != "" {
		actor = &actorID
	}
	s.Auditor.Log(ctx, actor, action, entityKind, entityID, details)
}
