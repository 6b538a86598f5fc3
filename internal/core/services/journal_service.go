package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/dto"
	"github.com/finbooks/gl_engine/internal/middleware"
	"github.com/finbooks/gl_engine/internal/utils/accounting"
)

// JournalServiceOptions carry the posting policy knobs.
type JournalServiceOptions struct {
	// RequireConfiguredPeriods rejects postings whose date falls outside any
	// configured fiscal period. The permissive default keeps tenants without
	// period configuration working.
	RequireConfiguredPeriods bool

	// FiscalYearStartMonth (1-12) drives the fiscal year/period stamped on
	// entries when no period row covers the entry date.
	FiscalYearStartMonth int
}

// journalService owns the journal entry lifecycle. All mutations are single
// database transactions: entry, lines, fan-out rows commit or fail together.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
	sequenceSvc portssvc.SequenceSvcFacade
	auditSvc    portssvc.AuditSvcFacade
	opts        JournalServiceOptions
}

// NewJournalService creates the journal entry engine.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade,
	sequenceSvc portssvc.SequenceSvcFacade,
	auditSvc portssvc.AuditSvcFacade,
	opts JournalServiceOptions,
) portssvc.JournalSvcFacade {
	if opts.FiscalYearStartMonth < 1 || opts.FiscalYearStartMonth > 12 {
		opts.FiscalYearStartMonth = 1
	}
	return &journalService{
		journalRepo: journalRepo,
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
		sequenceSvc: sequenceSvc,
		auditSvc:    auditSvc,
		opts:        opts,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry validates, numbers and persists a new entry. A POSTED
// request additionally fans out ledger rows in the same transaction.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := req.Status
	if status == "" {
		status = domain.Draft
	}
	if status != domain.Draft && status != domain.Posted {
		return nil, fmt.Errorf("%w: new entries must be DRAFT or POSTED, got %s", apperrors.ErrValidation, status)
	}
	source := req.Source
	if source == "" {
		source = domain.SourceManual
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	// Boundary math is day-granular; normalize intra-day timestamps so the
	// entry lands inside period, opening-balance and snapshot boundaries.
	entryDate := domain.DateOnly(req.EntryDate)

	lines := make([]domain.JournalEntryLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   i + 1,
			AccountID:    lineReq.AccountID,
			Debit:        lineReq.Debit,
			Credit:       lineReq.Credit,
			Description:  lineReq.Description,
			DepartmentID: lineReq.DepartmentID,
			EmployeeID:   lineReq.EmployeeID,
			ProjectID:    lineReq.ProjectID,
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if err := accounting.ValidateEntryLines(lines, req.TotalDebit, req.TotalCredit); err != nil {
		return nil, err
	}

	// Resolve accounts and snapshot their code/name onto the lines, so the
	// entry keeps its original labels even after account renames.
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for entry creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for i := range lines {
		acc, found := accountsMap[lines[i].AccountID]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, lines[i].AccountID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, acc.Code, acc.Name)
		}
		lines[i].AccountCode = acc.Code
		lines[i].AccountName = acc.Name
	}

	fiscal := s.resolveFiscalPeriod(ctx, entryDate)

	entry := domain.JournalEntry{
		EntryID:      entryID,
		EntryDate:    entryDate,
		Description:  req.Description,
		Source:       source,
		SourceID:     req.SourceID,
		SourceRef:    req.SourceRef,
		Lines:        lines,
		TotalDebit:   req.TotalDebit,
		TotalCredit:  req.TotalCredit,
		Status:       status,
		FiscalYear:   fiscal.Year,
		FiscalPeriod: fiscal.Period,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if status == domain.Posted {
		entry.PostedAt = &now
		entry.PostedBy = creatorUserID
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if status == domain.Posted {
		if err := s.checkPeriodOpenInTx(ctx, tx, entry.EntryDate); err != nil {
			return nil, err
		}
	}

	if req.PreallocatedNumber != "" {
		entry.EntryNumber = req.PreallocatedNumber
	} else {
		entry.EntryNumber, err = s.sequenceSvc.NextEntryNumberInTx(ctx, tx, entry.FiscalYear)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate entry number: %w", err)
		}
	}

	if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
		return nil, err
	}
	if status == domain.Posted {
		if err := s.ledgerRepo.InsertRowsInTx(ctx, tx, accounting.FanOutRows(entry, now)); err != nil {
			return nil, err
		}
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	action := domain.AuditActionEntryCreated
	if status == domain.Posted {
		action = domain.AuditActionEntryPosted
	}
	s.auditSvc.Record(ctx, creatorUserID, action, "journal_entry", entry.EntryID,
		fmt.Sprintf("Journal entry %s created (%s)", entry.EntryNumber, status),
		map[string]string{"entryNumber": entry.EntryNumber, "source": string(source)})

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(status)))
	return &entry, nil
}

// PostJournalEntry transitions DRAFT -> POSTED and fans out ledger rows.
// The status read, period check, fan-out and flip share one transaction so a
// concurrent period close or double post cannot slip in between.
func (s *journalService) PostJournalEntry(ctx context.Context, entryID, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	entry, err := s.journalRepo.FindEntryForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: cannot post entry %s in status %s", apperrors.ErrInvalidTransition, entry.EntryNumber, entry.Status)
	}
	if err := s.checkPeriodOpenInTx(ctx, tx, entry.EntryDate); err != nil {
		return nil, err
	}

	entry.Lines, err = s.journalRepo.FindLinesByEntryIDInTx(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.MarkEntryPosted(ctx, tx, entryID, userID, now); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.InsertRowsInTx(ctx, tx, accounting.FanOutRows(*entry, now)); err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.PostedBy = userID

	s.auditSvc.Record(ctx, userID, domain.AuditActionEntryPosted, "journal_entry", entry.EntryID,
		fmt.Sprintf("Journal entry %s posted", entry.EntryNumber),
		map[string]string{"entryNumber": entry.EntryNumber})

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// VoidJournalEntry transitions POSTED -> VOID in its own transaction.
func (s *journalService) VoidJournalEntry(ctx context.Context, entryID, userID, reason string) (*domain.JournalEntry, error) {
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	entry, err := s.VoidJournalEntryInTx(ctx, tx, entryID, userID, reason, nil)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, userID, domain.AuditActionEntryVoided, "journal_entry", entry.EntryID,
		fmt.Sprintf("Journal entry %s voided: %s", entry.EntryNumber, reason),
		map[string]string{"entryNumber": entry.EntryNumber, "reason": reason})

	middleware.GetLoggerFromCtx(ctx).Info("Journal entry voided",
		slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// VoidJournalEntryInTx voids an entry inside a caller-owned transaction, so
// source-document cancellation flows stay atomic end to end. Reversing rows
// swap debit/credit per line and carry the original entry date: the reversal
// lands in the same fiscal period it reverses.
func (s *journalService) VoidJournalEntryInTx(ctx context.Context, tx pgx.Tx, entryID, userID, reason string, resolvedAccounts map[string]domain.Account) (*domain.JournalEntry, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}
	now := time.Now().UTC()

	entry, err := s.journalRepo.FindEntryForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: cannot void entry %s in status %s", apperrors.ErrInvalidTransition, entry.EntryNumber, entry.Status)
	}
	// The original entry's period must still be open.
	if err := s.checkPeriodOpenInTx(ctx, tx, entry.EntryDate); err != nil {
		return nil, err
	}

	entry.Lines, err = s.journalRepo.FindLinesByEntryIDInTx(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}

	// Callers inside a larger transaction supply pre-resolved accounts to
	// avoid a nested read; standalone voids resolve within this transaction.
	if resolvedAccounts == nil {
		accountIDs := make([]string, 0, len(entry.Lines))
		for _, line := range entry.Lines {
			accountIDs = append(accountIDs, line.AccountID)
		}
		resolvedAccounts, err = s.accountRepo.FindAccountsByIDsInTx(ctx, tx, uniqueStrings(accountIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve accounts for void: %w", err)
		}
	}
	for _, line := range entry.Lines {
		if _, ok := resolvedAccounts[line.AccountID]; !ok {
			return nil, fmt.Errorf("%w: account %s referenced by entry %s", apperrors.ErrNotFound, line.AccountID, entry.EntryNumber)
		}
	}

	if err := s.journalRepo.MarkEntryVoided(ctx, tx, entryID, userID, reason, now); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.InsertRowsInTx(ctx, tx, accounting.ReversingRows(*entry, now)); err != nil {
		return nil, err
	}

	entry.Status = domain.Void
	entry.VoidedAt = &now
	entry.VoidedBy = userID
	entry.VoidReason = reason
	return entry, nil
}

// CreateReversingJournalEntry builds a brand-new posted entry with every
// line's debit/credit swapped, referencing the original via sourceRef. The
// original entry and its trail stay intact; this is the adjustment path,
// distinct from void.
func (s *journalService) CreateReversingJournalEntry(ctx context.Context, originalEntryID string, date time.Time, reason, userID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, originalEntryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: can only reverse a posted entry, %s is %s", apperrors.ErrInvalidTransition, original.EntryNumber, original.Status)
	}
	original.Lines, err = s.journalRepo.FindLinesByEntryID(ctx, originalEntryID)
	if err != nil {
		return nil, err
	}

	req := dto.CreateJournalEntryRequest{
		EntryDate:   date,
		Description: fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
		Source:      domain.SourceAdjustment,
		SourceID:    original.EntryID,
		SourceRef:   original.EntryNumber,
		Status:      domain.Posted,
		TotalDebit:  original.TotalCredit,
		TotalCredit: original.TotalDebit,
		Lines:       make([]dto.CreateJournalEntryLineRequest, len(original.Lines)),
	}
	for i, line := range original.Lines {
		req.Lines[i] = dto.CreateJournalEntryLineRequest{
			AccountID:    line.AccountID,
			Debit:        line.Credit,
			Credit:       line.Debit,
			Description:  line.Description,
			DepartmentID: line.DepartmentID,
			EmployeeID:   line.EmployeeID,
			ProjectID:    line.ProjectID,
		}
	}

	reversing, err := s.CreateJournalEntry(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, userID, domain.AuditActionEntryReversed, "journal_entry", original.EntryID,
		fmt.Sprintf("Journal entry %s reversed by %s", original.EntryNumber, reversing.EntryNumber),
		map[string]string{"reversingEntryNumber": reversing.EntryNumber, "reason": reason})
	return reversing, nil
}

// GetJournalEntry retrieves an entry with its lines.
func (s *journalService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines, err = s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListJournalEntries retrieves a page of entries, newest first.
func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken, params.IncludeVoid)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		if params.IncludeLines {
			entries[i].Lines, err = s.journalRepo.FindLinesByEntryID(ctx, entries[i].EntryID)
			if err != nil {
				middleware.GetLoggerFromCtx(ctx).Warn("Failed to fetch lines for entry",
					slog.String("entry_id", entries[i].EntryID), slog.String("error", err.Error()))
			}
		}
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// ListPostedEntriesForExport feeds export adapters with posted entries and
// their lines. Read-only.
func (s *journalService) ListPostedEntriesForExport(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListPostedEntriesBetween(ctx, from, to)
}

// resolveFiscalPeriod stamps the entry with its fiscal year/period: the
// configured period containing the date when one exists, otherwise the
// calendar derivation from the fiscal-year start month.
func (s *journalService) resolveFiscalPeriod(ctx context.Context, date time.Time) domain.PeriodRef {
	period, err := s.periodRepo.FindPeriodForDate(ctx, date)
	if err == nil {
		return domain.PeriodRef{Year: period.Year, Period: period.Period}
	}
	return domain.PeriodForDate(date, s.opts.FiscalYearStartMonth)
}

// checkPeriodOpenInTx gates posted/void mutations on the fiscal period state.
// A date with no configured period is permissive unless the strict policy
// flag is set.
func (s *journalService) checkPeriodOpenInTx(ctx context.Context, tx pgx.Tx, date time.Time) error {
	period, err := s.periodRepo.FindPeriodForDateInTx(ctx, tx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if s.opts.RequireConfiguredPeriods {
				return fmt.Errorf("%w: no fiscal period configured for %s", apperrors.ErrPeriodClosed, date.Format("2006-01-02"))
			}
			return nil
		}
		return err
	}
	if period.Status != domain.PeriodOpen {
		return fmt.Errorf("%w: period %d-%02d is %s, reopen it to continue",
			apperrors.ErrPeriodClosed, period.Year, period.Period, period.Status)
	}
	return nil
}

// uniqueStrings returns the unique strings from the input, order-preserving.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
