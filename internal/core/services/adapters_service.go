package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/dto"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// sourceAdapterService translates source documents (invoices, bills,
// expenses, payroll runs) into posted journal entries. It never builds
// ledger rows itself; the journal engine owns the fan-out.
type sourceAdapterService struct {
	journalSvc           portssvc.JournalSvcFacade
	sequenceSvc          portssvc.SequenceSvcFacade
	fiscalYearStartMonth int
}

// NewSourceAdapterService creates the source-document posting adapters.
func NewSourceAdapterService(journalSvc portssvc.JournalSvcFacade, sequenceSvc portssvc.SequenceSvcFacade, fiscalYearStartMonth int) portssvc.SourceAdapterSvcFacade {
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > 12 {
		fiscalYearStartMonth = 1
	}
	return &sourceAdapterService{
		journalSvc:           journalSvc,
		sequenceSvc:          sequenceSvc,
		fiscalYearStartMonth: fiscalYearStartMonth,
	}
}

var _ portssvc.SourceAdapterSvcFacade = (*sourceAdapterService)(nil)

// CreateFromInvoice posts: debit accounts receivable for the invoice total,
// credit each revenue allocation.
func (s *sourceAdapterService) CreateFromInvoice(ctx context.Context, req dto.InvoicePostingRequest, userID string) (*domain.JournalEntry, error) {
	total, err := sumAllocations(req.RevenueLines)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.CreateJournalEntryLineRequest, 0, len(req.RevenueLines)+1)
	lines = append(lines, dto.CreateJournalEntryLineRequest{
		AccountID:   req.ReceivableID,
		Debit:       total,
		Description: fmt.Sprintf("Invoice %s", req.InvoiceNumber),
	})
	for _, alloc := range req.RevenueLines {
		lines = append(lines, dto.CreateJournalEntryLineRequest{
			AccountID:    alloc.AccountID,
			Credit:       alloc.Amount,
			Description:  alloc.Description,
			DepartmentID: alloc.DepartmentID,
			ProjectID:    alloc.ProjectID,
		})
	}

	return s.journalSvc.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		EntryDate:   req.Date,
		Description: fmt.Sprintf("Invoice %s", req.InvoiceNumber),
		Source:      domain.SourceInvoice,
		SourceID:    req.InvoiceID,
		SourceRef:   req.InvoiceNumber,
		Status:      domain.Posted,
		TotalDebit:  total,
		TotalCredit: total,
		Lines:       lines,
	}, userID)
}

// CreateFromBill posts: debit each expense allocation, credit accounts
// payable for the bill total.
func (s *sourceAdapterService) CreateFromBill(ctx context.Context, req dto.BillPostingRequest, userID string) (*domain.JournalEntry, error) {
	total, err := sumAllocations(req.ExpenseLines)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.CreateJournalEntryLineRequest, 0, len(req.ExpenseLines)+1)
	for _, alloc := range req.ExpenseLines {
		lines = append(lines, dto.CreateJournalEntryLineRequest{
			AccountID:    alloc.AccountID,
			Debit:        alloc.Amount,
			Description:  alloc.Description,
			DepartmentID: alloc.DepartmentID,
			ProjectID:    alloc.ProjectID,
		})
	}
	lines = append(lines, dto.CreateJournalEntryLineRequest{
		AccountID:   req.PayableID,
		Credit:      total,
		Description: fmt.Sprintf("Bill %s", req.BillNumber),
	})

	return s.journalSvc.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		EntryDate:   req.Date,
		Description: fmt.Sprintf("Bill %s", req.BillNumber),
		Source:      domain.SourceBill,
		SourceID:    req.BillID,
		SourceRef:   req.BillNumber,
		Status:      domain.Posted,
		TotalDebit:  total,
		TotalCredit: total,
		Lines:       lines,
	}, userID)
}

// CreateFromExpense posts a paid expense: debit the expense account, credit
// the payment account.
func (s *sourceAdapterService) CreateFromExpense(ctx context.Context, req dto.ExpensePostingRequest, userID string) (*domain.JournalEntry, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	return s.journalSvc.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
		EntryDate:   req.Date,
		Description: req.Description,
		Source:      domain.SourcePayment,
		SourceID:    req.ExpenseID,
		Status:      domain.Posted,
		TotalDebit:  req.Amount,
		TotalCredit: req.Amount,
		Lines: []dto.CreateJournalEntryLineRequest{
			{
				AccountID:    req.ExpenseAccountID,
				Debit:        req.Amount,
				Description:  req.Description,
				EmployeeID:   req.EmployeeID,
				DepartmentID: req.DepartmentID,
			},
			{
				AccountID:   req.PaymentAccountID,
				Credit:      req.Amount,
				Description: req.Description,
			},
		},
	}, userID)
}

// CreateFromPayroll posts one entry per pay item: debit wage expense, credit
// wages payable. Entry numbers come from a single pre-allocated block so one
// payroll run occupies a contiguous range.
func (s *sourceAdapterService) CreateFromPayroll(ctx context.Context, req dto.PayrollPostingRequest, userID string) ([]domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: payroll run has no pay items", apperrors.ErrValidation)
	}
	for _, item := range req.Items {
		if !item.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: pay amount for employee %s must be positive", apperrors.ErrValidation, item.EmployeeID)
		}
	}

	fiscalYear := domain.PeriodForDate(req.Date, s.fiscalYearStartMonth).Year
	numbers, err := s.sequenceSvc.AllocateEntryNumberBlock(ctx, fiscalYear, len(req.Items))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate payroll entry numbers: %w", err)
	}

	entries := make([]domain.JournalEntry, 0, len(req.Items))
	for i, item := range req.Items {
		description := fmt.Sprintf("Payroll %s", req.PayrollRunID)
		if item.Name != "" {
			description = fmt.Sprintf("Payroll %s: %s", req.PayrollRunID, item.Name)
		}

		entry, err := s.journalSvc.CreateJournalEntry(ctx, dto.CreateJournalEntryRequest{
			EntryDate:   req.Date,
			Description: description,
			Source:      domain.SourcePayroll,
			SourceID:    req.PayrollRunID,
			Status:      domain.Posted,
			TotalDebit:  item.Amount,
			TotalCredit: item.Amount,
			Lines: []dto.CreateJournalEntryLineRequest{
				{
					AccountID:   req.WageAccountID,
					Debit:       item.Amount,
					Description: description,
					EmployeeID:  item.EmployeeID,
				},
				{
					AccountID:   req.PayableAccountID,
					Credit:      item.Amount,
					Description: description,
					EmployeeID:  item.EmployeeID,
				},
			},
			PreallocatedNumber: numbers[i],
		}, userID)
		if err != nil {
			// Numbers already handed out stay consumed; the counter never
			// rewinds. The caller retries the remaining items.
			logger.Error("Payroll item posting failed",
				slog.String("payroll_run_id", req.PayrollRunID),
				slog.String("employee_id", item.EmployeeID),
				slog.Int("posted_so_far", len(entries)),
				slog.Any("error", err))
			return entries, fmt.Errorf("payroll item %d (employee %s): %w", i+1, item.EmployeeID, err)
		}
		entries = append(entries, *entry)
	}

	logger.Info("Payroll run posted",
		slog.String("payroll_run_id", req.PayrollRunID),
		slog.Int("entries", len(entries)))
	return entries, nil
}

func sumAllocations(allocs []dto.AmountAllocation) (decimal.Decimal, error) {
	if len(allocs) == 0 {
		return decimal.Zero, fmt.Errorf("%w: at least one allocation line is required", apperrors.ErrValidation)
	}
	total := decimal.Zero
	for _, alloc := range allocs {
		if !alloc.Amount.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: allocation amount for account %s must be positive", apperrors.ErrValidation, alloc.AccountID)
		}
		total = total.Add(alloc.Amount)
	}
	return total, nil
}
