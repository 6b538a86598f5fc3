package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
)

// PgxAuditRepository persists the audit trail. Metadata goes into a JSONB
// column; pgx encodes the map directly.
type PgxAuditRepository struct {
	pool *pgxpool.Pool
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{pool: pool}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveRecord persists one audit record.
func (r *PgxAuditRepository) SaveRecord(ctx context.Context, record domain.AuditRecord) error {
	query := `
		INSERT INTO audit_records (record_id, user_id, action, entity_id, entity_type, description, metadata, severity, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		record.RecordID,
		record.UserID,
		record.Action,
		record.EntityID,
		record.EntityType,
		record.Description,
		record.Metadata,
		string(record.Severity),
		record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit record: %w", err)
	}
	return nil
}

// ListRecordsByEntity retrieves the trail for one entity, newest first.
func (r *PgxAuditRepository) ListRecordsByEntity(ctx context.Context, entityType, entityID string, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT record_id, user_id, action, entity_id, entity_type, description, metadata, severity, timestamp
		FROM audit_records
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY timestamp DESC
		LIMIT $3;
	`
	rows, err := r.pool.Query(ctx, query, entityType, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var rec domain.AuditRecord
		var severity string
		if err := rows.Scan(
			&rec.RecordID,
			&rec.UserID,
			&rec.Action,
			&rec.EntityID,
			&rec.EntityType,
			&rec.Description,
			&rec.Metadata,
			&severity,
			&rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.Severity = domain.AuditSeverity(severity)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit records: %w", err)
	}
	return records, nil
}
