package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/core/services"
	"github.com/finbooks/gl_engine/internal/dto"
)

type AdapterServiceTestSuite struct {
	suite.Suite
	mockJournalSvc  *MockJournalService
	mockSequenceSvc *MockSequenceService
	service         portssvc.SourceAdapterSvcFacade
	userID          string
	date            time.Time
}

func (suite *AdapterServiceTestSuite) SetupTest() {
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockSequenceSvc = new(MockSequenceService)
	suite.service = services.NewSourceAdapterService(suite.mockJournalSvc, suite.mockSequenceSvc, 1)
	suite.userID = uuid.NewString()
	suite.date = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *AdapterServiceTestSuite) TestCreateFromInvoice_DebitsReceivableCreditsRevenue() {
	ctx := context.Background()
	receivableID := uuid.NewString()
	revenueID := uuid.NewString()
	req := dto.InvoicePostingRequest{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-1001",
		Date:          suite.date,
		ReceivableID:  receivableID,
		RevenueLines: []dto.AmountAllocation{
			{AccountID: revenueID, Amount: decimal.NewFromInt(750)},
		},
	}

	var captured dto.CreateJournalEntryRequest
	suite.mockJournalSvc.On("CreateJournalEntry", mock.Anything, mock.Anything, suite.userID).Run(func(args mock.Arguments) {
		captured = args.Get(1).(dto.CreateJournalEntryRequest)
	}).Return(&domain.JournalEntry{EntryID: uuid.NewString(), Status: domain.Posted}, nil).Once()

	entry, err := suite.service.CreateFromInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.SourceInvoice, captured.Source)
	suite.Equal(req.InvoiceID, captured.SourceID)
	suite.Equal("INV-1001", captured.SourceRef)
	suite.Equal(domain.Posted, captured.Status)
	suite.Require().Len(captured.Lines, 2)
	suite.Equal(receivableID, captured.Lines[0].AccountID)
	suite.True(captured.Lines[0].Debit.Equal(decimal.NewFromInt(750)))
	suite.Equal(revenueID, captured.Lines[1].AccountID)
	suite.True(captured.Lines[1].Credit.Equal(decimal.NewFromInt(750)))
}

func (suite *AdapterServiceTestSuite) TestCreateFromInvoice_SplitRevenue() {
	ctx := context.Background()
	req := dto.InvoicePostingRequest{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-1002",
		Date:          suite.date,
		ReceivableID:  uuid.NewString(),
		RevenueLines: []dto.AmountAllocation{
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(300)},
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(200)},
		},
	}

	var captured dto.CreateJournalEntryRequest
	suite.mockJournalSvc.On("CreateJournalEntry", mock.Anything, mock.Anything, suite.userID).Run(func(args mock.Arguments) {
		captured = args.Get(1).(dto.CreateJournalEntryRequest)
	}).Return(&domain.JournalEntry{}, nil).Once()

	_, err := suite.service.CreateFromInvoice(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// Receivable debit equals the sum of the revenue allocations.
	suite.True(captured.Lines[0].Debit.Equal(decimal.NewFromInt(500)))
	suite.True(captured.TotalDebit.Equal(captured.TotalCredit))
}

func (suite *AdapterServiceTestSuite) TestCreateFromInvoice_RejectsNonPositiveAllocation() {
	ctx := context.Background()
	req := dto.InvoicePostingRequest{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-1003",
		Date:          suite.date,
		ReceivableID:  uuid.NewString(),
		RevenueLines: []dto.AmountAllocation{
			{AccountID: uuid.NewString(), Amount: decimal.Zero},
		},
	}

	_, err := suite.service.CreateFromInvoice(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AdapterServiceTestSuite) TestCreateFromBill_CreditsPayable() {
	ctx := context.Background()
	payableID := uuid.NewString()
	req := dto.BillPostingRequest{
		BillID:     uuid.NewString(),
		BillNumber: "BILL-88",
		Date:       suite.date,
		PayableID:  payableID,
		ExpenseLines: []dto.AmountAllocation{
			{AccountID: uuid.NewString(), Amount: decimal.NewFromInt(120)},
		},
	}

	var captured dto.CreateJournalEntryRequest
	suite.mockJournalSvc.On("CreateJournalEntry", mock.Anything, mock.Anything, suite.userID).Run(func(args mock.Arguments) {
		captured = args.Get(1).(dto.CreateJournalEntryRequest)
	}).Return(&domain.JournalEntry{}, nil).Once()

	_, err := suite.service.CreateFromBill(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SourceBill, captured.Source)
	suite.Require().Len(captured.Lines, 2)
	// Expense first, payable credit last.
	suite.True(captured.Lines[0].Debit.Equal(decimal.NewFromInt(120)))
	suite.Equal(payableID, captured.Lines[1].AccountID)
	suite.True(captured.Lines[1].Credit.Equal(decimal.NewFromInt(120)))
}

func (suite *AdapterServiceTestSuite) TestCreateFromExpense_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.ExpensePostingRequest{
		ExpenseID:        uuid.NewString(),
		Date:             suite.date,
		Description:      "Team lunch",
		ExpenseAccountID: uuid.NewString(),
		PaymentAccountID: uuid.NewString(),
		Amount:           decimal.NewFromInt(-10),
	}

	_, err := suite.service.CreateFromExpense(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AdapterServiceTestSuite) TestCreateFromPayroll_OneEntryPerItemFromBlock() {
	ctx := context.Background()
	req := dto.PayrollPostingRequest{
		PayrollRunID:     "RUN-2026-03",
		Date:             suite.date,
		WageAccountID:    uuid.NewString(),
		PayableAccountID: uuid.NewString(),
		Items: []dto.PayrollItem{
			{EmployeeID: "emp-1", Name: "Ada", Amount: decimal.NewFromInt(5000)},
			{EmployeeID: "emp-2", Name: "Grace", Amount: decimal.NewFromInt(6000)},
		},
	}
	block := []string{"JE-2026-0100", "JE-2026-0101"}

	var numbers []string
	suite.mockSequenceSvc.On("AllocateEntryNumberBlock", mock.Anything, 2026, 2).Return(block, nil).Once()
	suite.mockJournalSvc.On("CreateJournalEntry", mock.Anything, mock.Anything, suite.userID).Run(func(args mock.Arguments) {
		r := args.Get(1).(dto.CreateJournalEntryRequest)
		numbers = append(numbers, r.PreallocatedNumber)
	}).Return(&domain.JournalEntry{Status: domain.Posted}, nil).Twice()

	entries, err := suite.service.CreateFromPayroll(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.Equal(block, numbers)
	suite.mockSequenceSvc.AssertExpectations(suite.T())
}

func (suite *AdapterServiceTestSuite) TestCreateFromPayroll_PartialFailureReturnsPosted() {
	ctx := context.Background()
	req := dto.PayrollPostingRequest{
		PayrollRunID:     "RUN-2026-03",
		Date:             suite.date,
		WageAccountID:    uuid.NewString(),
		PayableAccountID: uuid.NewString(),
		Items: []dto.PayrollItem{
			{EmployeeID: "emp-1", Amount: decimal.NewFromInt(5000)},
			{EmployeeID: "emp-2", Amount: decimal.NewFromInt(6000)},
		},
	}

	suite.mockSequenceSvc.On("AllocateEntryNumberBlock", mock.Anything, 2026, 2).
		Return([]string{"JE-2026-0100", "JE-2026-0101"}, nil).Once()
	suite.mockJournalSvc.On("CreateJournalEntry", mock.Anything, mock.Anything, suite.userID).
		Return(&domain.JournalEntry{Status: domain.Posted}, nil).Once()
	suite.mockJournalSvc.On("CreateJournalEntry", mock.Anything, mock.Anything, suite.userID).
		Return(nil, assert.AnError).Once()

	entries, err := suite.service.CreateFromPayroll(ctx, req, suite.userID)

	// The first entry stays posted; the error names the failed item.
	suite.Require().Error(err)
	suite.Len(entries, 1)
	suite.Contains(err.Error(), "emp-2")
}

func (suite *AdapterServiceTestSuite) TestCreateFromPayroll_RejectsEmptyRun() {
	ctx := context.Background()
	req := dto.PayrollPostingRequest{
		PayrollRunID:     "RUN-EMPTY",
		Date:             suite.date,
		WageAccountID:    uuid.NewString(),
		PayableAccountID: uuid.NewString(),
	}

	_, err := suite.service.CreateFromPayroll(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSequenceSvc.AssertNotCalled(suite.T(), "AllocateEntryNumberBlock", mock.Anything, mock.Anything, mock.Anything)
}

func TestSourceAdapterService(t *testing.T) {
	suite.Run(t, new(AdapterServiceTestSuite))
}
