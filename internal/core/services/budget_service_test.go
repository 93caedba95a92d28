package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portsrepo "github.com/dompetku/dompetku_backend/internal/core/ports/repositories"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/core/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

// Ensure MockBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) SumExpensesByCategory(ctx context.Context, userID string, category string, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, category, start, end)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeactivateBudget(ctx context.Context, budgetID string, userID string, now time.Time) error {
	args := m.Called(ctx, budgetID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo *MockBudgetRepository
	service        portssvc.BudgetSvcFacade
	userID         string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo)
	suite.userID = uuid.NewString()
}

func (suite *BudgetServiceTestSuite) monthlyBudget(amount int64) domain.Budget {
	return domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   suite.userID,
		Category: "Makanan",
		Amount:   decimal.NewFromInt(amount),
		Period:   domain.BudgetMonthly,
		IsActive: true,
	}
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_DefaultsPeriodToMonthly() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category: "Makanan",
		Amount:   decimal.NewFromInt(1000000),
	}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.AnythingOfType("domain.Budget")).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.Equal(domain.BudgetMonthly, budget.Period)
	suite.True(budget.IsActive)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_NonPositiveAmountFails() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Category: "Makanan",
		Amount:   decimal.Zero,
	}

	_, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestListBudgets_DerivesProgressTiers() {
	ctx := context.Background()
	safe := suite.monthlyBudget(1000000)
	warning := suite.monthlyBudget(1000000)
	warning.Category = "Transportasi"
	exceeded := suite.monthlyBudget(1000000)
	exceeded.Category = "Hiburan"

	suite.mockBudgetRepo.On("ListBudgetsByUser", ctx, suite.userID).Return([]domain.Budget{safe, warning, exceeded}, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCategory", ctx, suite.userID, "Makanan", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(200000), nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCategory", ctx, suite.userID, "Transportasi", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(850000), nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCategory", ctx, suite.userID, "Hiburan", mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(1300000), nil).Once()

	progress, err := suite.service.ListBudgets(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(progress, 3)

	suite.Equal(domain.BudgetSafe, progress[0].Status)
	suite.InDelta(20, progress[0].Percentage, 0.01)
	suite.True(progress[0].Remaining.Equal(decimal.NewFromInt(800000)))

	suite.Equal(domain.BudgetWarning, progress[1].Status)
	suite.InDelta(85, progress[1].Percentage, 0.01)

	// Overspend caps the percentage at 100 but keeps the negative remaining.
	suite.Equal(domain.BudgetExceeded, progress[2].Status)
	suite.InDelta(100, progress[2].Percentage, 0.01)
	suite.True(progress[2].Remaining.Equal(decimal.NewFromInt(-300000)))
}

func (suite *BudgetServiceTestSuite) TestListBudgets_MonthlyWindowCoversCalendarMonth() {
	ctx := context.Background()
	budget := suite.monthlyBudget(500000)
	now := time.Now().UTC()
	expectedStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	suite.mockBudgetRepo.On("ListBudgetsByUser", ctx, suite.userID).Return([]domain.Budget{budget}, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCategory", ctx, suite.userID, "Makanan", expectedStart, expectedStart.AddDate(0, 1, 0)).
		Return(decimal.Zero, nil).Once()

	_, err := suite.service.ListBudgets(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestListBudgets_WeeklyWindowAnchorsOnSunday() {
	ctx := context.Background()
	budget := suite.monthlyBudget(500000)
	budget.Period = domain.BudgetWeekly
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := midnight.AddDate(0, 0, -int(midnight.Weekday()))

	suite.mockBudgetRepo.On("ListBudgetsByUser", ctx, suite.userID).Return([]domain.Budget{budget}, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCategory", ctx, suite.userID, "Makanan", weekStart, weekStart.AddDate(0, 0, 7)).
		Return(decimal.Zero, nil).Once()

	_, err := suite.service.ListBudgets(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(time.Sunday, weekStart.Weekday())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_ForeignBudgetNotFound() {
	ctx := context.Background()
	budget := suite.monthlyBudget(500000)
	budget.UserID = uuid.NewString()
	newAmount := decimal.NewFromInt(600000)
	req := dto.UpdateBudgetRequest{Amount: &newAmount}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(&budget, nil).Once()

	_, err := suite.service.UpdateBudget(ctx, suite.userID, budget.BudgetID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestDeactivateBudget_Success() {
	ctx := context.Background()
	budget := suite.monthlyBudget(500000)

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(&budget, nil).Once()
	suite.mockBudgetRepo.On("DeactivateBudget", ctx, budget.BudgetID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateBudget(ctx, suite.userID, budget.BudgetID)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
