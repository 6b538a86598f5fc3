package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/core/services"
	"github.com/finbooks/gl_engine/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockPeriodRepository
	mockSequenceSvc *MockSequenceService
	mockAuditSvc    *MockAuditService
	service         portssvc.JournalSvcFacade
	cashAccount     domain.Account
	revenueAccount  domain.Account
	expenseAccount  domain.Account
	userID          string
	entryDate       time.Time
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockSequenceSvc = new(MockSequenceService)
	suite.mockAuditSvc = new(MockAuditService)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockLedgerRepo,
		suite.mockAccountRepo,
		suite.mockPeriodRepo,
		suite.mockSequenceSvc,
		suite.mockAuditSvc,
		services.JournalServiceOptions{FiscalYearStartMonth: 1},
	)

	suite.userID = uuid.NewString()
	suite.entryDate = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "6100",
		Name:        "Rent Expense",
		AccountType: domain.Expense,
		IsActive:    true,
	}

	// Audit recording is fire-and-forget; individual tests assert the
	// financial outcomes, not the trail.
	suite.mockAuditSvc.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	// Rollback is always deferred; after a commit it is a no-op.
	suite.mockJournalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.AccountID:    suite.cashAccount,
		suite.revenueAccount.AccountID: suite.revenueAccount,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest(status domain.EntryStatus) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   suite.entryDate,
		Description: "March sales",
		Status:      status,
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.NewFromInt(100),
		Lines: []dto.CreateJournalEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) openPeriod() *domain.FiscalPeriod {
	return &domain.FiscalPeriod{
		Year:      2026,
		Period:    3,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_DraftSuccess() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Draft)

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockSequenceSvc.On("NextEntryNumberInTx", mock.Anything, mock.Anything, 2026).Return("JE-2026-0001", nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Draft, entry.Status)
	suite.Equal("JE-2026-0001", entry.EntryNumber)
	suite.Equal(2026, entry.FiscalYear)
	suite.Equal(3, entry.FiscalPeriod)
	suite.Nil(entry.PostedAt)
	suite.Equal(suite.userID, entry.CreatedBy)
	// Account code/name are snapshotted onto the lines.
	suite.Equal("1000", entry.Lines[0].AccountCode)
	suite.Equal("Sales Revenue", entry.Lines[1].AccountName)

	// Drafts never touch the ledger or the period gate.
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PostedFansOut() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Posted)

	var fannedOut []domain.GeneralLedgerRow
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(suite.openPeriod(), nil).Once()
	suite.mockSequenceSvc.On("NextEntryNumberInTx", mock.Anything, mock.Anything, 2026).Return("JE-2026-0007", nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		fannedOut = args.Get(2).([]domain.GeneralLedgerRow)
	}).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, entry.Status)
	suite.Require().NotNil(entry.PostedAt)
	suite.Equal(suite.userID, entry.PostedBy)

	suite.Require().Len(fannedOut, 2)
	suite.Equal(suite.cashAccount.AccountID, fannedOut[0].AccountID)
	suite.True(fannedOut[0].Debit.Equal(decimal.NewFromInt(100)))
	suite.True(fannedOut[1].Credit.Equal(decimal.NewFromInt(100)))
	suite.Equal("JE-2026-0007", fannedOut[0].EntryNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_NormalizesIntraDayDate() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Posted)
	// A caller-supplied timestamp inside the day must not slip between the
	// midnight-aligned period, opening-balance and snapshot boundaries.
	req.EntryDate = time.Date(2026, 3, 15, 15, 4, 5, 0, time.UTC)
	midnight := suite.entryDate

	var saved domain.JournalEntry
	var fannedOut []domain.GeneralLedgerRow
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.MatchedBy(func(d time.Time) bool {
		return d.Equal(midnight)
	})).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(d time.Time) bool {
		return d.Equal(midnight)
	})).Return(suite.openPeriod(), nil).Once()
	suite.mockSequenceSvc.On("NextEntryNumberInTx", mock.Anything, mock.Anything, 2026).Return("JE-2026-0008", nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(2).(domain.JournalEntry)
	}).Return(nil).Once()
	suite.mockLedgerRepo.On("InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		fannedOut = args.Get(2).([]domain.GeneralLedgerRow)
	}).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(entry.EntryDate.Equal(midnight))
	suite.True(saved.EntryDate.Equal(midnight))
	suite.Require().Len(fannedOut, 2)
	suite.True(fannedOut[0].EntryDate.Equal(midnight))
	suite.True(fannedOut[1].EntryDate.Equal(midnight))
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Draft)
	req.Lines[1].Credit = decimal.NewFromInt(99)
	req.TotalCredit = decimal.NewFromInt(99)

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_LineWithBothSides() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Draft)
	req.Lines[0].Credit = decimal.NewFromInt(10)

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_DeclaredTotalsMismatch() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Draft)
	// Lines balance at 100 but the declared totals disagree.
	req.TotalDebit = decimal.NewFromInt(60)
	req.TotalCredit = decimal.NewFromInt(40)

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Draft)
	inactive := suite.revenueAccount
	inactive.IsActive = false
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		inactive.AccountID:          inactive,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Draft)
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID: suite.cashAccount,
		// revenue account is missing
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PostedIntoClosedPeriod() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Posted)
	closed := suite.openPeriod()
	closed.Status = domain.PeriodClosed

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(closed, nil).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(closed, nil).Once()

	_, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_NoConfiguredPeriodIsPermissive() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Posted)

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSequenceSvc.On("NextEntryNumberInTx", mock.Anything, mock.Anything, 2026).Return("JE-2026-0002", nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	// Falls back to the calendar derivation.
	suite.Equal(2026, entry.FiscalYear)
	suite.Equal(3, entry.FiscalPeriod)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_StrictPolicyRejectsUnconfiguredPeriod() {
	ctx := context.Background()
	strictService := services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockLedgerRepo,
		suite.mockAccountRepo,
		suite.mockPeriodRepo,
		suite.mockSequenceSvc,
		suite.mockAuditSvc,
		services.JournalServiceOptions{RequireConfiguredPeriods: true, FiscalYearStartMonth: 1},
	)
	req := suite.balancedRequest(domain.Posted)

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	_, err := strictService.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PreallocatedNumberSkipsAllocator() {
	ctx := context.Background()
	req := suite.balancedRequest(domain.Draft)
	req.PreallocatedNumber = "JE-2026-0042"

	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("JE-2026-0042", entry.EntryNumber)
	suite.mockSequenceSvc.AssertNotCalled(suite.T(), "NextEntryNumberInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) draftEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:      uuid.NewString(),
		EntryNumber:  "JE-2026-0010",
		EntryDate:    suite.entryDate,
		Status:       domain.Draft,
		TotalDebit:   decimal.NewFromInt(250),
		TotalCredit:  decimal.NewFromInt(250),
		FiscalYear:   2026,
		FiscalPeriod: 3,
	}
}

func (suite *JournalServiceTestSuite) entryLines(entryID string) []domain.JournalEntryLine {
	return []domain.JournalEntryLine{
		{
			LineID: uuid.NewString(), EntryID: entryID, LineNumber: 1,
			AccountID: suite.cashAccount.AccountID, AccountCode: "1000", AccountName: "Cash",
			Debit: decimal.NewFromInt(250),
		},
		{
			LineID: uuid.NewString(), EntryID: entryID, LineNumber: 2,
			AccountID: suite.revenueAccount.AccountID, AccountCode: "4000", AccountName: "Sales Revenue",
			Credit: decimal.NewFromInt(250),
		},
	}
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_Success() {
	ctx := context.Background()
	entry := suite.draftEntry()

	var fannedOut []domain.GeneralLedgerRow
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("FindEntryForUpdate", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDInTx", mock.Anything, mock.Anything, entry.EntryID).Return(suite.entryLines(entry.EntryID), nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", mock.Anything, mock.Anything, entry.EntryID, suite.userID, mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		fannedOut = args.Get(2).([]domain.GeneralLedgerRow)
	}).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	posted, err := suite.service.PostJournalEntry(ctx, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal(suite.userID, posted.PostedBy)
	suite.Require().Len(fannedOut, 2)
	suite.Equal(entry.EntryNumber, fannedOut[0].EntryNumber)
	suite.True(fannedOut[0].EntryDate.Equal(suite.entryDate))
	// Every read feeding the transition goes through the transaction.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_AlreadyPosted() {
	ctx := context.Background()
	entry := suite.draftEntry()
	entry.Status = domain.Posted

	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("FindEntryForUpdate", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostJournalEntry(ctx, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_ClosedPeriod() {
	ctx := context.Background()
	entry := suite.draftEntry()
	closed := suite.openPeriod()
	closed.Status = domain.PeriodClosed

	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("FindEntryForUpdate", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(closed, nil).Once()

	_, err := suite.service.PostJournalEntry(ctx, entry.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidJournalEntry_Success() {
	ctx := context.Background()
	entry := suite.draftEntry()
	entry.Status = domain.Posted

	var reversing []domain.GeneralLedgerRow
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("FindEntryForUpdate", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(suite.openPeriod(), nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDInTx", mock.Anything, mock.Anything, entry.EntryID).Return(suite.entryLines(entry.EntryID), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsInTx", mock.Anything, mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("MarkEntryVoided", mock.Anything, mock.Anything, entry.EntryID, suite.userID, "duplicate entry", mock.Anything).Return(nil).Once()
	suite.mockLedgerRepo.On("InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		reversing = args.Get(2).([]domain.GeneralLedgerRow)
	}).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	voided, err := suite.service.VoidJournalEntry(ctx, entry.EntryID, suite.userID, "duplicate entry")

	suite.Require().NoError(err)
	suite.Equal(domain.Void, voided.Status)
	suite.Equal("duplicate entry", voided.VoidReason)

	// Reversing rows swap sides, carry the original date and a -VOID suffix.
	suite.Require().Len(reversing, 2)
	suite.Equal("JE-2026-0010-VOID", reversing[0].EntryNumber)
	suite.True(reversing[0].Credit.Equal(decimal.NewFromInt(250)))
	suite.True(reversing[1].Debit.Equal(decimal.NewFromInt(250)))
	suite.True(reversing[0].EntryDate.Equal(suite.entryDate))

	// Net effect of original plus reversal is zero per account.
	net := reversing[0].Net().Add(decimal.NewFromInt(250))
	suite.True(net.IsZero())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestVoidJournalEntry_ReasonRequired() {
	ctx := context.Background()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()

	_, err := suite.service.VoidJournalEntry(ctx, uuid.NewString(), suite.userID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntryForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidJournalEntry_DraftNotVoidable() {
	ctx := context.Background()
	entry := suite.draftEntry()

	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("FindEntryForUpdate", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.VoidJournalEntry(ctx, entry.EntryID, suite.userID, "mistake")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryVoided", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidJournalEntry_ClosedPeriod() {
	ctx := context.Background()
	entry := suite.draftEntry()
	entry.Status = domain.Posted
	locked := suite.openPeriod()
	locked.Status = domain.PeriodLocked

	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockJournalRepo.On("FindEntryForUpdate", mock.Anything, mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(locked, nil).Once()

	_, err := suite.service.VoidJournalEntry(ctx, entry.EntryID, suite.userID, "wrong amount")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateReversingJournalEntry_SwapsSides() {
	ctx := context.Background()
	original := suite.draftEntry()
	original.Status = domain.Posted
	reversalDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	var savedEntry domain.JournalEntry
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", mock.Anything, original.EntryID).Return(suite.entryLines(original.EntryID), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("FindPeriodForDateInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSequenceSvc.On("NextEntryNumberInTx", mock.Anything, mock.Anything, 2026).Return("JE-2026-0011", nil).Once()
	suite.mockJournalRepo.On("SaveEntryInTx", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		savedEntry = args.Get(2).(domain.JournalEntry)
	}).Return(nil).Once()
	suite.mockLedgerRepo.On("InsertRowsInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	reversing, err := suite.service.CreateReversingJournalEntry(ctx, original.EntryID, reversalDate, "accrual reversal", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, reversing.Status)
	suite.Equal(domain.SourceAdjustment, savedEntry.Source)
	suite.Equal(original.EntryNumber, savedEntry.SourceRef)
	// Original debit on cash becomes a credit on the reversal.
	suite.Require().Len(savedEntry.Lines, 2)
	suite.True(savedEntry.Lines[0].Credit.Equal(decimal.NewFromInt(250)))
	suite.True(savedEntry.Lines[1].Debit.Equal(decimal.NewFromInt(250)))
	// The original is never mutated.
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryVoided", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateReversingJournalEntry_RequiresPostedOriginal() {
	ctx := context.Background()
	original := suite.draftEntry()

	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, original.EntryID).Return(original, nil).Once()

	_, err := suite.service.CreateReversingJournalEntry(ctx, original.EntryID, suite.entryDate, "reversal", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *JournalServiceTestSuite) TestGetJournalEntry_LoadsLines() {
	ctx := context.Background()
	entry := suite.draftEntry()

	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", mock.Anything, entry.EntryID).Return(suite.entryLines(entry.EntryID), nil).Once()

	got, err := suite.service.GetJournalEntry(ctx, entry.EntryID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_DefaultsLimit() {
	ctx := context.Background()
	entries := []domain.JournalEntry{*suite.draftEntry()}

	suite.mockJournalRepo.On("ListEntries", mock.Anything, 20, (*string)(nil), false).Return(entries, nil, nil).Once()

	resp, err := suite.service.ListJournalEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
