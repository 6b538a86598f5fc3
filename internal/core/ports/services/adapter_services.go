package services

import (
	"context"

	"github.com/finbooks/gl_engine/internal/core/domain"
	"github.com/finbooks/gl_engine/internal/dto"
)

// SourceAdapterSvcFacade builds journal entries on behalf of source-document
// modules (invoices, bills, expenses, payroll). Adapters never construct
// ledger rows themselves; they receive back the entry the engine created.
type SourceAdapterSvcFacade interface {
	CreateFromInvoice(ctx context.Context, req dto.InvoicePostingRequest, userID string) (*domain.JournalEntry, error)
	CreateFromBill(ctx context.Context, req dto.BillPostingRequest, userID string) (*domain.JournalEntry, error)
	CreateFromExpense(ctx context.Context, req dto.ExpensePostingRequest, userID string) (*domain.JournalEntry, error)

	// CreateFromPayroll posts one entry per pay item, drawing entry numbers
	// from a single pre-allocated block.
	CreateFromPayroll(ctx context.Context, req dto.PayrollPostingRequest, userID string) ([]domain.JournalEntry, error)
}
