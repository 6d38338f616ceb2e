package domain

import "time"

// AuditAction names a state-changing operation.
type AuditAction string

const (
	AuditActionCreate      AuditAction = "create"
	AuditActionUpdate      AuditAction = "update"
	AuditActionVoid        AuditAction = "void"
	AuditActionClose       AuditAction = "close_period"
	AuditActionOpen        AuditAction = "open_period"
	AuditActionReopen      AuditAction = "reopen_period"
	AuditActionRecalculate AuditAction = "recalculate"
	AuditActionReconcile   AuditAction = "reconcile"
	AuditActionClear       AuditAction = "clear_cheque"
	AuditActionCancel      AuditAction = "cancel_cheque"
)

// AuditEntry is one externally logged state change.
type AuditEntry struct {
	AuditID    string         `json:"auditID"`
	ActorID    *string        `json:"actorID,omitempty"`
	Action     AuditAction    `json:"action"`
	EntityKind string         `json:"entityKind"`
	EntityID   string         `json:"entityID"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}
