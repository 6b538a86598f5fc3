package services

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceSvcFacade allocates gap-free, year-scoped entry numbers formatted
// "<prefix>-<year>-<seq>". One atomic counter increment per call; block
// allocation amortizes the counter contention for bulk flows.
type SequenceSvcFacade interface {
	NextEntryNumber(ctx context.Context, year int) (string, error)
	NextEntryNumberInTx(ctx context.Context, tx pgx.Tx, year int) (string, error)
	AllocateEntryNumberBlock(ctx context.Context, year, size int) ([]string, error)
}

// AuditSvcFacade records the audit trail. Recording is best-effort by
// contract: failures are logged and never surfaced to the caller.
type AuditSvcFacade interface {
	Record(ctx context.Context, userID, action, entityType, entityID, description string, metadata map[string]string)
}
