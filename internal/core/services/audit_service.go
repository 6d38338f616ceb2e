package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_period_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/google/uuid"
)

type auditService struct {
	BaseService
	repo portsrepo.AuditRepository
}

// NewAuditService creates the audit logger backed by repo.
func NewAuditService(repo portsrepo.AuditRepository, opts ...Option) portssvc.AuditSvc {
	return &auditService{BaseService: newBaseService(opts...), repo: repo}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// Log writes the entry and only logs a failure. It detaches from the caller's cancellation
// because it runs after the change already committed.
func (s *auditService) Log(ctx context.Context, actorID *string, action domain.AuditAction, entityKind, entityID string, details map[string]any) {
	entry := domain.AuditEntry{
		AuditID:    uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityKind: entityKind,
		EntityID:   entityID,
		Details:    details,
		OccurredAt: s.Now(),
	}
	if err := s.repo.SaveAuditEntry(context.WithoutCancel(ctx), entry); err != nil {
		s.LogError(ctx, err, "Failed to write audit entry",
			slog.String("action", string(action)),
			slog.String("entity_kind", entityKind),
			slog.String("entity_id", entityID))
	}
}
