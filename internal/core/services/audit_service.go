package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// auditService writes the audit trail. Recording never fails the calling
// operation: a persistence error is logged and swallowed.
type auditService struct {
	auditRepo portsrepo.AuditRepository
}

// NewAuditService creates the audit recorder.
func NewAuditService(auditRepo portsrepo.AuditRepository) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, userID, action, entityType, entityID, description string, metadata map[string]string) {
	record := domain.AuditRecord{
		RecordID:    uuid.NewString(),
		UserID:      userID,
		Action:      action,
		EntityID:    entityID,
		EntityType:  entityType,
		Description: description,
		Metadata:    metadata,
		Severity:    domain.SeverityInfo,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.auditRepo.SaveRecord(ctx, record); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to persist audit record",
			slog.String("action", action),
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.Any("error", err))
	}
}
