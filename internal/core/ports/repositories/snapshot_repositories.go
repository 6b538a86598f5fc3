package repositories

import (
	"context"
	"time"

	"github.com/finbooks/gl_engine/internal/core/domain"
)

// SnapshotRepository stores period-boundary balance checkpoints. Snapshots
// are derived data: rebuildable at any time from the ledger.
type SnapshotRepository interface {
	// SaveSnapshot upserts the snapshot for its (year, period).
	SaveSnapshot(ctx context.Context, snapshot domain.BalanceSnapshot) error

	// DeleteSnapshotsOnOrAfter removes every snapshot whose period end date
	// is on or after the boundary. Snapshots are cumulative from inception,
	// so reopening a period stales its own checkpoint and every later one.
	// Deleting missing snapshots is not an error.
	DeleteSnapshotsOnOrAfter(ctx context.Context, boundary time.Time) error

	// FindSnapshot retrieves the snapshot for a specific period.
	FindSnapshot(ctx context.Context, year, period int) (*domain.BalanceSnapshot, error)

	// FindLatestSnapshotBefore retrieves the snapshot with the greatest
	// period end date strictly before the boundary, or ErrNotFound.
	FindLatestSnapshotBefore(ctx context.Context, boundary time.Time) (*domain.BalanceSnapshot, error)
}
