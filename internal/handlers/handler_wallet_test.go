package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

func (m *MockWalletService) CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) GetWalletByID(ctx context.Context, userID string, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletService) UpdateWallet(ctx context.Context, userID string, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, walletID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) DeactivateWallet(ctx context.Context, userID string, walletID string) error {
	args := m.Called(ctx, userID, walletID)
	return args.Error(0)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Test Suite ---
type WalletHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockWalletService *MockWalletService
	mockUserService   *MockUserService
	jwtSecret         string
	userID            string
}

func (suite *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerCustomValidations()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockWalletService = new(MockWalletService)
	suite.mockUserService = new(MockUserService)

	v1 := suite.router.Group("/api/v1")
	registerWalletRoutes(v1, suite.mockWalletService, suite.mockUserService)
}

func (suite *WalletHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *WalletHandlerTestSuite) authedRequest(method, url string, body any) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *WalletHandlerTestSuite) TestGetWallet_Success() {
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   suite.userID,
		Name:     "Dompet Harian",
		Type:     domain.WalletCash,
		Balance:  decimal.NewFromInt(125000),
		Currency: "IDR",
		IsActive: true,
	}

	suite.mockWalletService.On("GetWalletByID", mock.Anything, suite.userID, wallet.WalletID).Return(&wallet, nil).Once()
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(&domain.User{UserID: suite.userID}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/wallets/"+wallet.WalletID, nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(wallet.WalletID, resp.WalletID)
	suite.Equal("125000", resp.Balance)
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestGetWallet_PrivacyModeMasksBalance() {
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   suite.userID,
		Name:     "Dompet Harian",
		Balance:  decimal.NewFromInt(125000),
		Currency: "IDR",
		IsActive: true,
	}

	suite.mockWalletService.On("GetWalletByID", mock.Anything, suite.userID, wallet.WalletID).Return(&wallet, nil).Once()
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(&domain.User{UserID: suite.userID, PrivacyMode: true}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/wallets/"+wallet.WalletID, nil))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("***", resp.Balance)
}

func (suite *WalletHandlerTestSuite) TestGetWallet_NotFound() {
	walletID := uuid.NewString()

	suite.mockWalletService.On("GetWalletByID", mock.Anything, suite.userID, walletID).Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/wallets/"+walletID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *WalletHandlerTestSuite) TestCreateWallet_Success() {
	reqBody := dto.CreateWalletRequest{Name: "Rekening BCA", Type: domain.WalletBank}
	created := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   suite.userID,
		Name:     reqBody.Name,
		Type:     domain.WalletBank,
		Balance:  decimal.Zero,
		Currency: "IDR",
		IsActive: true,
	}

	suite.mockWalletService.On("CreateWallet", mock.Anything, suite.userID, mock.MatchedBy(func(r dto.CreateWalletRequest) bool {
		return r.Name == reqBody.Name && r.Type == domain.WalletBank
	})).Return(&created, nil).Once()
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(&domain.User{UserID: suite.userID}, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/wallets", reqBody))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.WalletID, resp.WalletID)
}

func (suite *WalletHandlerTestSuite) TestDeleteWallet_NoContent() {
	walletID := uuid.NewString()

	suite.mockWalletService.On("DeactivateWallet", mock.Anything, suite.userID, walletID).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/wallets/"+walletID, nil))

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *WalletHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/wallets", nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockWalletService.AssertNotCalled(suite.T(), "ListWallets", mock.Anything, mock.Anything)
}

func TestWalletHandler(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}
