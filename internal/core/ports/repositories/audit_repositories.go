package repositories

import (
	"context"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// AuditRepository persists the structured audit trail consumed by the
// external audit-log viewer.
type AuditRepository interface {
	// SaveRecord persists one audit record.
	SaveRecord(ctx context.Context, record domain.AuditRecord) error

	// ListRecordsByEntity retrieves the trail for one entity, newest first.
	ListRecordsByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.AuditRecord, error)
}
