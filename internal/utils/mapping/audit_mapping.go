package mapping

import (
	"encoding/json"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	"github.com/SscSPs/ledger_period_engine/internal/models"
)

func toModelAuditFields(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toDomainAuditFields(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// ToModelAuditEntry encodes Details as JSON for the JSONB column.
func ToModelAuditEntry(d domain.AuditEntry) (models.AuditEntry, error) {
	var details []byte
	if len(d.Details) > 0 {
		var err error
		details, err = json.Marshal(d.Details)
		if err != nil {
			return models.AuditEntry{}, err
		}
	}
	return models.AuditEntry{
		AuditID:    d.AuditID,
		ActorID:    d.ActorID,
		Action:     string(d.Action),
		EntityKind: d.EntityKind,
		EntityID:   d.EntityID,
		Details:    details,
		OccurredAt: d.OccurredAt,
	}, nil
}

func ToDomainAuditEntry(m models.AuditEntry) (domain.AuditEntry, error) {
	var details map[string]any
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			return domain.AuditEntry{}, err
		}
	}
	return domain.AuditEntry{
		AuditID:    m.AuditID,
		ActorID:    m.ActorID,
		Action:     domain.AuditAction(m.Action),
		EntityKind: m.EntityKind,
		EntityID:   m.EntityID,
		Details:    details,
		OccurredAt: m.OccurredAt,
	}, nil
}
