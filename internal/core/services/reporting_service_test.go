package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

// Ensure MockReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) SumAmountByType(ctx context.Context, userID string, txnType domain.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, txnType, start, end)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) ExpenseTotalsByCategory(ctx context.Context, userID string, start, end time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) SumUnpaidDebtByType(ctx context.Context, userID string, debtType domain.DebtType) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, debtType)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) ListExpenseAmountsInRange(ctx context.Context, userID string, start, end time.Time) ([]decimal.Decimal, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockTxnRepo       *MockTransactionRepository
	mockWalletRepo    *MockWalletReader
	service           portssvc.ReportingSvcFacade
	userID            string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockWalletRepo = new(MockWalletReader)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockTxnRepo, suite.mockWalletRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestGetDashboard_AggregatesAcrossSources() {
	ctx := context.Background()
	now := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	monthStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	wallets := []domain.Wallet{
		{WalletID: uuid.NewString(), UserID: suite.userID, Balance: decimal.NewFromInt(500000)},
		{WalletID: uuid.NewString(), UserID: suite.userID, Balance: decimal.NewFromInt(1500000)},
	}
	categories := []domain.CategoryTotal{{Category: "Makanan", Total: decimal.NewFromInt(300000), Count: 12}}
	recent := []domain.Transaction{{TransactionID: uuid.NewString(), UserID: suite.userID}}

	suite.mockWalletRepo.On("ListWalletsByUser", ctx, suite.userID).Return(wallets, nil).Once()
	suite.mockReportingRepo.On("SumAmountByType", ctx, suite.userID, domain.Income, monthStart, monthEnd).Return(decimal.NewFromInt(7000000), nil).Once()
	suite.mockReportingRepo.On("SumAmountByType", ctx, suite.userID, domain.Expense, monthStart, monthEnd).Return(decimal.NewFromInt(2500000), nil).Once()
	suite.mockReportingRepo.On("SumAmountByType", ctx, suite.userID, domain.Income, lastMonthStart, monthStart).Return(decimal.NewFromInt(6800000), nil).Once()
	suite.mockReportingRepo.On("SumAmountByType", ctx, suite.userID, domain.Expense, lastMonthStart, monthStart).Return(decimal.NewFromInt(2600000), nil).Once()
	suite.mockReportingRepo.On("ExpenseTotalsByCategory", ctx, suite.userID, monthStart, monthEnd).Return(categories, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, portsrepo.TransactionFilter{Limit: 10}).Return(recent, nil).Once()
	suite.mockReportingRepo.On("SumUnpaidDebtByType", ctx, suite.userID, domain.DebtOwed).Return(decimal.NewFromInt(400000), nil).Once()
	suite.mockReportingRepo.On("SumUnpaidDebtByType", ctx, suite.userID, domain.DebtOwing).Return(decimal.NewFromInt(150000), nil).Once()
	suite.mockReportingRepo.On("ListExpenseAmountsInRange", ctx, suite.userID, monthStart, now).Return([]decimal.Decimal{decimal.NewFromInt(100000)}, nil).Once()

	dashboard, err := suite.service.GetDashboard(ctx, suite.userID, now)

	suite.Require().NoError(err)
	suite.Require().NotNil(dashboard)
	suite.True(dashboard.TotalBalance.Equal(decimal.NewFromInt(2000000)))
	suite.True(dashboard.MonthlyIncome.Equal(decimal.NewFromInt(7000000)))
	suite.True(dashboard.MonthlyExpense.Equal(decimal.NewFromInt(2500000)))
	// Net worth folds unpaid debts into the wallet total.
	suite.True(dashboard.NetWorth.Equal(decimal.NewFromInt(2250000)))
	suite.Equal(categories, dashboard.ExpensesByCategory)
	suite.Equal(recent, dashboard.RecentTransactions)
	// June has 30 days; 10 remain after the 20th.
	suite.Equal(10, dashboard.DaysRemaining)
	// One 100k observation extrapolated over 10 remaining days.
	suite.True(dashboard.ForecastedBalance.Equal(decimal.NewFromInt(1000000)))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetCashFlow_BucketsDailyAndExcludesTransfers() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	destID := uuid.NewString()

	transactions := []domain.Transaction{
		{Type: domain.Income, Amount: decimal.NewFromInt(500000), Date: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
		{Type: domain.Expense, Amount: decimal.NewFromInt(75000), Date: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)},
		{Type: domain.Expense, Amount: decimal.NewFromInt(25000), Date: time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)},
		{Type: domain.Transfer, Amount: decimal.NewFromInt(999999), Date: time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC), TransferToWalletID: &destID},
	}

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
		return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(start) && f.EndDate.Equal(end)
	})).Return(transactions, nil).Once()

	entries, err := suite.service.GetCashFlow(ctx, suite.userID, start, end, domain.CashFlowDaily)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)

	suite.Equal("2025-06-02", entries[0].Period)
	suite.True(entries[0].Income.Equal(decimal.NewFromInt(500000)))
	suite.True(entries[0].Expense.Equal(decimal.NewFromInt(75000)))
	suite.True(entries[0].Net.Equal(decimal.NewFromInt(425000)))

	suite.Equal("2025-06-03", entries[1].Period)
	suite.True(entries[1].Net.Equal(decimal.NewFromInt(-25000)))
}

func (suite *ReportingServiceTestSuite) TestGetCashFlow_WeeklyBucketsAnchorOnSunday() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	// June 10 2025 is a Tuesday; its week anchors on Sunday June 8.
	transactions := []domain.Transaction{
		{Type: domain.Expense, Amount: decimal.NewFromInt(50000), Date: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)},
		{Type: domain.Expense, Amount: decimal.NewFromInt(30000), Date: time.Date(2025, 6, 12, 12, 0, 0, 0, time.UTC)},
	}

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, mock.AnythingOfType("repositories.TransactionFilter")).Return(transactions, nil).Once()

	entries, err := suite.service.GetCashFlow(ctx, suite.userID, start, end, domain.CashFlowWeekly)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("2025-06-08", entries[0].Period)
	suite.True(entries[0].Expense.Equal(decimal.NewFromInt(80000)))
}

func (suite *ReportingServiceTestSuite) TestGetCashFlow_MonthlyBucketsSpanMonths() {
	ctx := context.Background()
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	transactions := []domain.Transaction{
		{Type: domain.Income, Amount: decimal.NewFromInt(100000), Date: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)},
		{Type: domain.Income, Amount: decimal.NewFromInt(200000), Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
	}

	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, mock.AnythingOfType("repositories.TransactionFilter")).Return(transactions, nil).Once()

	entries, err := suite.service.GetCashFlow(ctx, suite.userID, start, end, domain.CashFlowMonthly)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal("2025-05", entries[0].Period)
	suite.Equal("2025-06", entries[1].Period)
}

func (suite *ReportingServiceTestSuite) TestGetCategoryReport_PassesRangeThrough() {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	expected := []domain.CategoryTotal{{Category: "Transportasi", Total: decimal.NewFromInt(120000), Count: 8}}

	suite.mockReportingRepo.On("ExpenseTotalsByCategory", ctx, suite.userID, start, end).Return(expected, nil).Once()

	totals, err := suite.service.GetCategoryReport(ctx, suite.userID, start, end)

	suite.Require().NoError(err)
	suite.Equal(expected, totals)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
