package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/finbooks/gl_engine/internal/core/domain"
	"github.com/finbooks/gl_engine/internal/dto"
)

// JournalSvcFacade defines the journal entry engine: validation, persistence
// and the DRAFT -> POSTED -> VOID lifecycle. The engine exclusively owns
// entry transitions; every mutation is one atomic store transaction.
type JournalSvcFacade interface {
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	PostJournalEntry(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error)
	VoidJournalEntry(ctx context.Context, entryID, userID, reason string) (*domain.JournalEntry, error)

	// VoidJournalEntryInTx voids an entry as part of a caller-owned
	// transaction, for source-document cancellation flows. Callers already
	// holding account rows pass them as resolvedAccounts to avoid nested
	// reads; standalone callers pass nil.
	VoidJournalEntryInTx(ctx context.Context, tx pgx.Tx, entryID, userID, reason string, resolvedAccounts map[string]domain.Account) (*domain.JournalEntry, error)

	// CreateReversingJournalEntry builds a new posted entry with every line's
	// debit/credit swapped relative to the original. The original entry and
	// its audit trail stay intact.
	CreateReversingJournalEntry(ctx context.Context, originalEntryID string, date time.Time, reason, userID string) (*domain.JournalEntry, error)

	GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListPostedEntriesForExport feeds export adapters. Read-only.
	ListPostedEntriesForExport(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)
}
