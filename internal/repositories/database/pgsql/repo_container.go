package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		PeriodRepo:   newPgxPeriodRepository(dbPool),
		SnapshotRepo: newPgxSnapshotRepository(dbPool),
		SequenceRepo: newPgxSequenceRepository(dbPool),
		AuditRepo:    newPgxAuditRepository(dbPool),
	}
}
