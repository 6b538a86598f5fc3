package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoicePostingRequest asks the engine for an invoice journal entry:
// debit accounts receivable, credit revenue (split across revenue lines).
type InvoicePostingRequest struct {
	InvoiceID     string             `json:"invoiceID" binding:"required"`
	InvoiceNumber string             `json:"invoiceNumber" binding:"required"`
	Date          time.Time          `json:"date" binding:"required"`
	ReceivableID  string             `json:"receivableAccountID" binding:"required"`
	RevenueLines  []AmountAllocation `json:"revenueLines" binding:"required"`
}

// BillPostingRequest asks for a vendor bill entry: debit expense lines,
// credit accounts payable.
type BillPostingRequest struct {
	BillID       string             `json:"billID" binding:"required"`
	BillNumber   string             `json:"billNumber" binding:"required"`
	Date         time.Time          `json:"date" binding:"required"`
	PayableID    string             `json:"payableAccountID" binding:"required"`
	ExpenseLines []AmountAllocation `json:"expenseLines" binding:"required"`
}

// ExpensePostingRequest asks for a paid expense entry: debit expense,
// credit the payment (cash/card) account.
type ExpensePostingRequest struct {
	ExpenseID        string          `json:"expenseID" binding:"required"`
	Date             time.Time       `json:"date" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	PaymentAccountID string          `json:"paymentAccountID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	EmployeeID       string          `json:"employeeID"`
	DepartmentID     string          `json:"departmentID"`
}

// PayrollPostingRequest posts one entry per pay item in a payroll run,
// drawing entry numbers from a single pre-allocated block.
type PayrollPostingRequest struct {
	PayrollRunID     string        `json:"payrollRunID" binding:"required"`
	Date             time.Time     `json:"date" binding:"required"`
	WageAccountID    string        `json:"wageExpenseAccountID" binding:"required"`
	PayableAccountID string        `json:"wagesPayableAccountID" binding:"required"`
	Items            []PayrollItem `json:"items" binding:"required"`
}

// PayrollItem is one employee's net pay within a payroll run.
type PayrollItem struct {
	EmployeeID string          `json:"employeeID" binding:"required"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// AmountAllocation assigns an amount to an account, optionally dimensioned.
type AmountAllocation struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description"`
	DepartmentID string          `json:"departmentID"`
	ProjectID    string          `json:"projectID"`
}
