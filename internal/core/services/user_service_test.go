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
	"github.com/dompetku/dompetku_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshTokenHash(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	userID       string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Andi",
		Email:    "andi@example.com",
		Password: "rahasia-sekali",
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.ProviderLocal, user.AuthProvider)
	suite.NotEqual(req.Password, saved.PasswordHash) // never stored in the clear
	suite.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmailRejected() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Andi",
		Email:    "andi@example.com",
		Password: "rahasia-sekali",
	}
	existing := domain.User{UserID: uuid.NewString(), Email: req.Email}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(&existing, nil).Once()

	_, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "rahasia-sekali"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := domain.User{
		UserID:       suite.userID,
		Email:        "andi@example.com",
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(&user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().NoError(err)
	suite.Equal(suite.userID, authenticated.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPasswordUnauthorized() {
	ctx := context.Background()
	hash, err := utils.HashPassword("benar")
	suite.Require().NoError(err)
	user := domain.User{
		UserID:       suite.userID,
		Email:        "andi@example.com",
		PasswordHash: hash,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(&user, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, user.Email, "salah")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailUnauthorized() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "ghost@example.com", "whatever")

	suite.Require().Error(err)
	// Unknown emails are indistinguishable from bad passwords.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_OAuthOnlyAccountUnauthorized() {
	ctx := context.Background()
	user := domain.User{
		UserID:       suite.userID,
		Email:        "google-only@example.com",
		AuthProvider: domain.ProviderGoogle,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(&user, nil).Once()

	_, err := suite.service.AuthenticateUser(ctx, user.Email, "anything")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ReturnsExisting() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{ID: "google-sub-1", Email: "andi@example.com", Name: "Andi"}
	existing := domain.User{UserID: suite.userID, AuthProvider: domain.ProviderGoogle, ProviderUserID: info.ID}

	suite.mockUserRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, info.ID).Return(&existing, nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(suite.userID, user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_LinksLocalAccountByEmail() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{ID: "google-sub-2", Email: "andi@example.com", Name: "Andi"}
	local := domain.User{
		UserID:       suite.userID,
		Email:        info.Email,
		AuthProvider: domain.ProviderLocal,
		PasswordHash: "some-hash",
	}

	suite.mockUserRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, info.ID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, info.Email).Return(&local, nil).Once()

	var linked domain.User
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			linked = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(suite.userID, user.UserID)
	suite.Equal(domain.ProviderGoogle, linked.AuthProvider)
	suite.Equal(info.ID, linked.ProviderUserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesFreshAccount() {
	ctx := context.Background()
	info := &domain.GoogleUserInfo{ID: "google-sub-3", Email: "baru@example.com", Name: "Pengguna Baru"}

	suite.mockUserRepo.On("FindUserByProviderID", ctx, domain.ProviderGoogle, info.ID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, info.Email).Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, info)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.ProviderGoogle, saved.AuthProvider)
	suite.Empty(saved.PasswordHash)
}

func (suite *UserServiceTestSuite) TestUpdateUser_TogglesPrivacyMode() {
	ctx := context.Background()
	existing := domain.User{UserID: suite.userID, Name: "Andi", PrivacyMode: false}
	privacyOn := true
	req := dto.UpdateUserRequest{PrivacyMode: &privacyOn}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.userID).Return(&existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(updated.PrivacyMode)
	suite.Equal("Andi", updated.Name)
}

func (suite *UserServiceTestSuite) TestClearRefreshToken_ClearsHashAndExpiry() {
	ctx := context.Background()

	suite.mockUserRepo.On("UpdateRefreshTokenHash", ctx, suite.userID, "", (*time.Time)(nil)).Return(nil).Once()

	err := suite.service.ClearRefreshToken(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
