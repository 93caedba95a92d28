package services_test

import (
	"context"
	"errors"
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

// --- Mock RecurringRepository ---
type MockRecurringRepository struct {
	mock.Mock
}

// Ensure MockRecurringRepository implements portsrepo.RecurringRepositoryFacade
var _ portsrepo.RecurringRepositoryFacade = (*MockRecurringRepository)(nil)

func (m *MockRecurringRepository) FindRecurringByID(ctx context.Context, recurringID string) (*domain.RecurringDefinition, error) {
	args := m.Called(ctx, recurringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringDefinition), args.Error(1)
}

func (m *MockRecurringRepository) ListRecurringByUser(ctx context.Context, userID string) ([]domain.RecurringDefinition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringDefinition), args.Error(1)
}

func (m *MockRecurringRepository) ListDueRecurring(ctx context.Context, now time.Time) ([]domain.RecurringDefinition, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringDefinition), args.Error(1)
}

func (m *MockRecurringRepository) SaveRecurring(ctx context.Context, def domain.RecurringDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockRecurringRepository) UpdateRecurring(ctx context.Context, def domain.RecurringDefinition) error {
	args := m.Called(ctx, def)
	return args.Error(0)
}

func (m *MockRecurringRepository) DeactivateRecurring(ctx context.Context, recurringID string, userID string, now time.Time) error {
	args := m.Called(ctx, recurringID, userID, now)
	return args.Error(0)
}

func (m *MockRecurringRepository) MaterializeRecurring(ctx context.Context, def domain.RecurringDefinition, expectedDue time.Time, txn domain.Transaction, balanceChanges map[string]decimal.Decimal, newNextDue time.Time) error {
	args := m.Called(ctx, def, expectedDue, txn, balanceChanges, newNextDue)
	return args.Error(0)
}

// --- Test Suite Setup ---
type RecurringServiceTestSuite struct {
	suite.Suite
	mockRecurringRepo *MockRecurringRepository
	mockWalletRepo    *MockWalletReader
	service           portssvc.RecurringSvcFacade
	userID            string
	wallet            domain.Wallet
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.mockWalletRepo = new(MockWalletReader)
	suite.service = services.NewRecurringService(suite.mockRecurringRepo, suite.mockWalletRepo)

	suite.userID = uuid.NewString()
	suite.wallet = domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   suite.userID,
		Name:     "Rekening Gaji",
		Type:     domain.WalletBank,
		Balance:  decimal.NewFromInt(1000000),
		Currency: "IDR",
		IsActive: true,
	}
}

func (suite *RecurringServiceTestSuite) monthlyDefinition(due time.Time) domain.RecurringDefinition {
	return domain.RecurringDefinition{
		RecurringID: uuid.NewString(),
		UserID:      suite.userID,
		WalletID:    suite.wallet.WalletID,
		Type:        domain.Expense,
		Category:    "Tagihan",
		Amount:      decimal.NewFromInt(150000),
		Description: "internet bulanan",
		Frequency:   domain.Monthly,
		NextDueDate: due,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *RecurringServiceTestSuite) TestCreateRecurring_Success() {
	ctx := context.Background()
	req := dto.CreateRecurringRequest{
		WalletID:    suite.wallet.WalletID,
		Type:        domain.Expense,
		Category:    "Tagihan",
		Amount:      decimal.NewFromInt(150000),
		Description: "internet bulanan",
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(&suite.wallet, nil).Once()
	suite.mockRecurringRepo.On("SaveRecurring", ctx, mock.AnythingOfType("domain.RecurringDefinition")).Return(nil).Once()

	def, err := suite.service.CreateRecurring(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(def)
	suite.NotEmpty(def.RecurringID)
	suite.Equal(suite.userID, def.UserID)
	suite.Equal(domain.Monthly, def.Frequency) // defaulted
	suite.True(def.IsActive)
	suite.WithinDuration(time.Now().UTC(), def.NextDueDate, time.Minute) // defaulted to now
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_NonPositiveAmountFails() {
	ctx := context.Background()
	req := dto.CreateRecurringRequest{
		WalletID: suite.wallet.WalletID,
		Type:     domain.Expense,
		Category: "Tagihan",
		Amount:   decimal.NewFromInt(-5),
	}

	_, err := suite.service.CreateRecurring(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "SaveRecurring", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestCreateRecurring_ForeignWalletNotFound() {
	ctx := context.Background()
	foreignWallet := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   uuid.NewString(),
		IsActive: true,
	}
	req := dto.CreateRecurringRequest{
		WalletID: foreignWallet.WalletID,
		Type:     domain.Expense,
		Category: "Tagihan",
		Amount:   decimal.NewFromInt(150000),
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, foreignWallet.WalletID).Return(&foreignWallet, nil).Once()

	_, err := suite.service.CreateRecurring(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RecurringServiceTestSuite) TestProcessDue_MaterializesAndAdvancesOnePeriod() {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	def := suite.monthlyDefinition(due)

	suite.mockRecurringRepo.On("ListDueRecurring", ctx, now).Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(&suite.wallet, nil).Once()

	var (
		materialized   domain.Transaction
		balanceChanges map[string]decimal.Decimal
		newNextDue     time.Time
	)
	suite.mockRecurringRepo.On("MaterializeRecurring", ctx, def, due, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			materialized = args.Get(3).(domain.Transaction)
			balanceChanges = args.Get(4).(map[string]decimal.Decimal)
			newNextDue = args.Get(5).(time.Time)
		}).Return(nil).Once()

	processed, err := suite.service.ProcessDue(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(1, processed)
	// The produced transaction is dated at the due date, not at tick time.
	suite.Equal(due, materialized.Date)
	suite.True(materialized.IsRecurring)
	suite.Require().NotNil(materialized.RecurringID)
	suite.Equal(def.RecurringID, *materialized.RecurringID)
	suite.True(materialized.Amount.Equal(def.Amount))
	suite.True(balanceChanges[suite.wallet.WalletID].Equal(decimal.NewFromInt(-150000)))
	// Exactly one month forward.
	suite.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), newNextDue)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestProcessDue_VanishedWalletIsSkippedSilently() {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	def := suite.monthlyDefinition(now.Add(-time.Hour))

	suite.mockRecurringRepo.On("ListDueRecurring", ctx, now).Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(nil, apperrors.ErrNotFound).Once()

	processed, err := suite.service.ProcessDue(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(0, processed)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "MaterializeRecurring", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestProcessDue_ConcurrentTickConflictIsNotAFailure() {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	def := suite.monthlyDefinition(now.Add(-time.Hour))

	suite.mockRecurringRepo.On("ListDueRecurring", ctx, now).Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(&suite.wallet, nil).Once()
	suite.mockRecurringRepo.On("MaterializeRecurring", ctx, def, def.NextDueDate, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrConflict).Once()

	processed, err := suite.service.ProcessDue(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(0, processed)
}

func (suite *RecurringServiceTestSuite) TestProcessDue_OneFailureDoesNotStopTheBatch() {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	failing := suite.monthlyDefinition(now.Add(-2 * time.Hour))
	healthy := suite.monthlyDefinition(now.Add(-time.Hour))

	suite.mockRecurringRepo.On("ListDueRecurring", ctx, now).Return([]domain.RecurringDefinition{failing, healthy}, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(&suite.wallet, nil).Twice()
	suite.mockRecurringRepo.On("MaterializeRecurring", ctx, failing, failing.NextDueDate, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Return(errors.New("insert failed")).Once()
	suite.mockRecurringRepo.On("MaterializeRecurring", ctx, healthy, healthy.NextDueDate, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	processed, err := suite.service.ProcessDue(ctx, now)

	suite.Require().Error(err)
	suite.Contains(err.Error(), failing.RecurringID)
	suite.Equal(1, processed)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestProcessDue_OwnerMismatchIsSkipped() {
	ctx := context.Background()
	now := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	def := suite.monthlyDefinition(now.Add(-time.Hour))
	strayWallet := suite.wallet
	strayWallet.UserID = uuid.NewString()

	suite.mockRecurringRepo.On("ListDueRecurring", ctx, now).Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(&strayWallet, nil).Once()

	processed, err := suite.service.ProcessDue(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(0, processed)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "MaterializeRecurring", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestProcessDue_MonthlyAnchorClampsShortMonths() {
	ctx := context.Background()
	now := time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC)
	dayOfMonth := 31
	def := suite.monthlyDefinition(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	def.DayOfMonth = &dayOfMonth

	suite.mockRecurringRepo.On("ListDueRecurring", ctx, now).Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.wallet.WalletID).Return(&suite.wallet, nil).Once()

	var newNextDue time.Time
	suite.mockRecurringRepo.On("MaterializeRecurring", ctx, def, def.NextDueDate, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			newNextDue = args.Get(5).(time.Time)
		}).Return(nil).Once()

	processed, err := suite.service.ProcessDue(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(1, processed)
	// Day 31 clamps to the last day of February.
	suite.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), newNextDue)
}

func (suite *RecurringServiceTestSuite) TestUpdateRecurring_ForeignDefinitionNotFound() {
	ctx := context.Background()
	def := suite.monthlyDefinition(time.Now().UTC())
	def.UserID = uuid.NewString()
	isActive := false
	req := dto.UpdateRecurringRequest{IsActive: &isActive}

	suite.mockRecurringRepo.On("FindRecurringByID", ctx, def.RecurringID).Return(&def, nil).Once()

	_, err := suite.service.UpdateRecurring(ctx, suite.userID, def.RecurringID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "UpdateRecurring", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestDeactivateRecurring_Success() {
	ctx := context.Background()
	def := suite.monthlyDefinition(time.Now().UTC())

	suite.mockRecurringRepo.On("FindRecurringByID", ctx, def.RecurringID).Return(&def, nil).Once()
	suite.mockRecurringRepo.On("DeactivateRecurring", ctx, def.RecurringID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateRecurring(ctx, suite.userID, def.RecurringID)

	suite.Require().NoError(err)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
