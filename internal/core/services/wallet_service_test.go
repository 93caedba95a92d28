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
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

// Ensure MockWalletRepository implements portsrepo.WalletRepositoryFacade
var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) DeactivateWallet(ctx context.Context, walletID string, userID string, now time.Time) error {
	args := m.Called(ctx, walletID, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error) {
	args := m.Called(ctx, tx, walletIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	service        portssvc.WalletSvcFacade
	userID         string
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.service = services.NewWalletService(suite.mockWalletRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *WalletServiceTestSuite) TestCreateWallet_AppliesDefaults() {
	ctx := context.Background()
	req := dto.CreateWalletRequest{Name: "Dompet Harian"}

	var saved domain.Wallet
	suite.mockWalletRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Wallet)
		}).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(wallet)
	suite.NotEmpty(wallet.WalletID)
	suite.Equal(domain.WalletCash, wallet.Type)
	suite.Equal("IDR", wallet.Currency)
	suite.True(wallet.Balance.IsZero())
	suite.True(wallet.IsActive)
	suite.Equal(suite.userID, saved.CreatedBy)
}

func (suite *WalletServiceTestSuite) TestCreateWallet_KeepsOpeningBalance() {
	ctx := context.Background()
	opening := decimal.NewFromInt(750000)
	req := dto.CreateWalletRequest{
		Name:     "Rekening BCA",
		Type:     domain.WalletBank,
		Balance:  &opening,
		Currency: "IDR",
	}

	suite.mockWalletRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.WalletBank, wallet.Type)
	suite.True(wallet.Balance.Equal(opening))
}

func (suite *WalletServiceTestSuite) TestGetWalletByID_ForeignWalletNotFound() {
	ctx := context.Background()
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   uuid.NewString(),
		Name:     "Bukan milikku",
		IsActive: true,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, wallet.WalletID).Return(&wallet, nil).Once()

	_, err := suite.service.GetWalletByID(ctx, suite.userID, wallet.WalletID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WalletServiceTestSuite) TestUpdateWallet_BalanceIsAbsoluteOverwrite() {
	ctx := context.Background()
	existing := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   suite.userID,
		Name:     "Dompet Harian",
		Type:     domain.WalletCash,
		Balance:  decimal.NewFromInt(100000),
		Currency: "IDR",
		IsActive: true,
	}
	newBalance := decimal.NewFromInt(80000)
	req := dto.UpdateWalletRequest{Balance: &newBalance}

	suite.mockWalletRepo.On("FindWalletByID", ctx, existing.WalletID).Return(&existing, nil).Once()

	var persisted domain.Wallet
	suite.mockWalletRepo.On("UpdateWallet", ctx, mock.AnythingOfType("domain.Wallet")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(domain.Wallet)
		}).Return(nil).Once()

	updated, err := suite.service.UpdateWallet(ctx, suite.userID, existing.WalletID, req)

	suite.Require().NoError(err)
	suite.True(updated.Balance.Equal(newBalance))
	suite.True(persisted.Balance.Equal(newBalance))
	suite.Equal(existing.Name, updated.Name) // untouched fields survive
}

func (suite *WalletServiceTestSuite) TestDeactivateWallet_Success() {
	ctx := context.Background()
	existing := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   suite.userID,
		IsActive: true,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, existing.WalletID).Return(&existing, nil).Once()
	suite.mockWalletRepo.On("DeactivateWallet", ctx, existing.WalletID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateWallet(ctx, suite.userID, existing.WalletID)

	suite.Require().NoError(err)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestListWallets_PropagatesRepositoryError() {
	ctx := context.Background()

	suite.mockWalletRepo.On("ListWalletsByUser", ctx, suite.userID).Return(nil, errors.New("connection reset")).Once()

	_, err := suite.service.ListWallets(ctx, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "failed to list wallets")
}

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
