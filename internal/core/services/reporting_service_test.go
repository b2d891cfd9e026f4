package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/altaerp/ledger_backend/internal/apperrors"
	"github.com/altaerp/ledger_backend/internal/core/domain"
	portsrepo "github.com/altaerp/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/altaerp/ledger_backend/internal/core/ports/services"
	"github.com/altaerp/ledger_backend/internal/core/services"
	"github.com/altaerp/ledger_backend/internal/dto"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ListEntriesInRange(ctx context.Context, from, to time.Time, limit, offset int, descending bool) ([]domain.Entry, error) {
	args := m.Called(ctx, from, to, limit, offset, descending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockReportingRepository) CountEntriesInRange(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockReportingRepository) FindDiaryLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.DiaryLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.DiaryLine), args.Error(1)
}

func (m *MockReportingRepository) ListLedgerStatements(ctx context.Context, from, to time.Time, search string) ([]domain.LedgerStatement, error) {
	args := m.Called(ctx, from, to, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerStatement), args.Error(1)
}

func (m *MockReportingRepository) MonthlyEntryCounts(ctx context.Context, year int) ([]domain.MonthlyEntryCount, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyEntryCount), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
	now      time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.now = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	suite.service = services.NewReportingService(suite.mockRepo,
		services.WithReportingClock(func() time.Time { return suite.now }))
}

func (suite *ReportingServiceTestSuite) TestGetDiary_DefaultsToCurrentMonth() {
	ctx := context.Background()
	monthStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	entryID := uuid.NewString()
	entries := []domain.Entry{{EntryID: entryID, SequenceNumber: 1, Description: "Opening"}}
	lines := map[string][]domain.DiaryLine{
		entryID: {{AccountName: "Caja", Posting: domain.Posting{EntryID: entryID, Debit: decimal.NewFromInt(10)}}},
	}

	suite.mockRepo.On("CountEntriesInRange", ctx, monthStart, monthEnd).Return(int64(1), nil).Once()
	suite.mockRepo.On("ListEntriesInRange", ctx, monthStart, monthEnd, 0, 0, false).Return(entries, nil).Once()
	suite.mockRepo.On("FindDiaryLinesByEntryIDs", ctx, []string{entryID}).Return(lines, nil).Once()

	resp, err := suite.service.GetDiary(ctx, dto.DiaryParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal("Caja", resp.Entries[0].Postings[0].AccountName)
	suite.Equal(1, resp.TotalPages)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetDiary_ExplicitRangeInclusiveUpperBound() {
	ctx := context.Background()
	from := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	toInclusive := time.Date(2024, time.January, 20, 23, 59, 59, 0, time.UTC)

	suite.mockRepo.On("CountEntriesInRange", ctx, from, toInclusive).Return(int64(0), nil).Once()
	suite.mockRepo.On("ListEntriesInRange", ctx, from, toInclusive, 0, 0, false).Return([]domain.Entry{}, nil).Once()
	suite.mockRepo.On("FindDiaryLinesByEntryIDs", ctx, []string{}).Return(map[string][]domain.DiaryLine{}, nil).Once()

	resp, err := suite.service.GetDiary(ctx, dto.DiaryParams{DateFrom: &from, DateTo: &to})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Equal(1, resp.TotalPages)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetEntries_Paginated() {
	ctx := context.Background()
	entries := []domain.Entry{{EntryID: uuid.NewString(), SequenceNumber: 3}}

	suite.mockRepo.On("CountEntriesInRange", ctx, mock.Anything, mock.Anything).Return(int64(5), nil).Once()
	// Page 2 of size 2 skips the first two rows.
	suite.mockRepo.On("ListEntriesInRange", ctx, mock.Anything, mock.Anything, 2, 2, true).Return(entries, nil).Once()

	resp, err := suite.service.GetEntries(ctx, dto.DiaryParams{Page: 2, PageSize: 2, Descending: true})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Equal(3, resp.TotalPages)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetSeat_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := &domain.Entry{EntryID: entryID, SequenceNumber: 9, Description: "Payroll"}
	lines := map[string][]domain.DiaryLine{
		entryID: {{AccountName: "Sueldos", Posting: domain.Posting{EntryID: entryID}}},
	}

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockRepo.On("FindDiaryLinesByEntryIDs", ctx, []string{entryID}).Return(lines, nil).Once()

	resp, err := suite.service.GetSeat(ctx, entryID)

	suite.Require().NoError(err)
	suite.Equal(int64(9), resp.Entry.SequenceNumber)
	suite.Len(resp.Postings, 1)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetSeat_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetSeat(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindDiaryLinesByEntryIDs", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetLedger_DerivesOpeningAndFinalBalances() {
	ctx := context.Background()
	accountID := uuid.NewString()
	statements := []domain.LedgerStatement{
		{
			AccountID:   accountID,
			AccountName: "Caja",
			AccountCode: 1100,
			AccountType: domain.Asset,
			Postings: []domain.LedgerLine{
				// Debit 50 brought the balance to 150, so it stood at 100 before.
				{Posting: domain.Posting{Debit: decimal.NewFromInt(50), Credit: decimal.Zero, ResultingBalance: decimal.NewFromInt(150)}},
				{Posting: domain.Posting{Debit: decimal.Zero, Credit: decimal.NewFromInt(30), ResultingBalance: decimal.NewFromInt(120)}},
			},
		},
	}

	suite.mockRepo.On("ListLedgerStatements", ctx, mock.Anything, mock.Anything, "").Return(statements, nil).Once()

	resp, err := suite.service.GetLedger(ctx, dto.LedgerParams{})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Statements, 1)
	st := resp.Statements[0]
	suite.True(st.OpeningBalance.Equal(decimal.NewFromInt(100)), "opening = %s", st.OpeningBalance)
	suite.True(st.FinalBalance.Equal(decimal.NewFromInt(120)), "final = %s", st.FinalBalance)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetLedger_CreditNormalOpeningBalance() {
	ctx := context.Background()
	statements := []domain.LedgerStatement{
		{
			AccountID:   uuid.NewString(),
			AccountName: "Proveedores",
			AccountType: domain.Liability,
			Postings: []domain.LedgerLine{
				// Credit 70 on a credit-normal account raised it to 70 from 0.
				{Posting: domain.Posting{Debit: decimal.Zero, Credit: decimal.NewFromInt(70), ResultingBalance: decimal.NewFromInt(70)}},
			},
		},
	}

	suite.mockRepo.On("ListLedgerStatements", ctx, mock.Anything, mock.Anything, "").Return(statements, nil).Once()

	resp, err := suite.service.GetLedger(ctx, dto.LedgerParams{})

	suite.Require().NoError(err)
	suite.True(resp.Statements[0].OpeningBalance.IsZero())
	suite.True(resp.Statements[0].FinalBalance.Equal(decimal.NewFromInt(70)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetLedger_DescendingReversesPresentationOnly() {
	ctx := context.Background()
	statements := []domain.LedgerStatement{
		{
			AccountID:   uuid.NewString(),
			AccountName: "Caja",
			AccountType: domain.Asset,
			Postings: []domain.LedgerLine{
				{EntrySequence: 1, Posting: domain.Posting{Debit: decimal.NewFromInt(100), ResultingBalance: decimal.NewFromInt(100)}},
				{EntrySequence: 2, Posting: domain.Posting{Credit: decimal.NewFromInt(40), ResultingBalance: decimal.NewFromInt(60)}},
			},
		},
	}

	suite.mockRepo.On("ListLedgerStatements", ctx, mock.Anything, mock.Anything, "").Return(statements, nil).Once()

	resp, err := suite.service.GetLedger(ctx, dto.LedgerParams{DiaryParams: dto.DiaryParams{Descending: true}})

	suite.Require().NoError(err)
	st := resp.Statements[0]
	// Balances stay anchored to chronological order.
	suite.True(st.OpeningBalance.IsZero())
	suite.True(st.FinalBalance.Equal(decimal.NewFromInt(60)))
	// Presentation order is reversed.
	suite.Equal(int64(2), st.Postings[0].EntrySequence)
	suite.Equal(int64(1), st.Postings[1].EntrySequence)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetLedger_PaginatesStatements() {
	ctx := context.Background()
	statements := make([]domain.LedgerStatement, 5)
	for i := range statements {
		statements[i] = domain.LedgerStatement{AccountID: uuid.NewString(), AccountCode: 1100 + i*100, AccountType: domain.Asset}
	}

	suite.mockRepo.On("ListLedgerStatements", ctx, mock.Anything, mock.Anything, "banco").Return(statements, nil).Once()

	resp, err := suite.service.GetLedger(ctx, dto.LedgerParams{
		DiaryParams: dto.DiaryParams{Page: 2, PageSize: 2},
		Search:      "banco",
	})

	suite.Require().NoError(err)
	suite.Len(resp.Statements, 2)
	suite.Equal(3, resp.TotalPages)
	suite.Equal(1300, resp.Statements[0].AccountCode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetEntryStatistics() {
	ctx := context.Background()
	monthly := make([]domain.MonthlyEntryCount, 12)
	for m := 1; m <= 12; m++ {
		monthly[m-1] = domain.MonthlyEntryCount{Month: time.Month(m)}
	}
	monthly[0].Count = 4
	monthly[6].Count = 9

	suite.mockRepo.On("MonthlyEntryCounts", ctx, 2024).Return(monthly, nil).Once()

	stats, err := suite.service.GetEntryStatistics(ctx, 2024)

	suite.Require().NoError(err)
	suite.Equal(2024, stats.Year)
	suite.Equal(int64(13), stats.Total)
	suite.Len(stats.Monthly, 12)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
