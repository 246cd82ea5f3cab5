package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/auth"
)

type mockAuthUserStore struct {
	mock.Mock
}

func (m *mockAuthUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockAuthUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockRefreshTokenStore struct {
	mock.Mock
}

func (m *mockRefreshTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	args := m.Called(ctx, token, userID, expiryDate)
	return args.Error(0)
}

func (m *mockRefreshTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Bool(2), args.Error(3)
}

func (m *mockRefreshTokenStore) RevokeToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub-test",
	})
}

func newAuthService(users *mockAuthUserStore, tokens *mockRefreshTokenStore) AuthService {
	return NewAuthService(users, tokens, newTestJWTService(), zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestRegister_StudentRequiresStudentID(t *testing.T) {
	users := new(mockAuthUserStore)
	svc := newAuthService(users, new(mockRefreshTokenStore))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "jane@campus.edu",
		Password: "secret123",
		Role:     models.RoleStudent,
	})

	require.Error(t, err)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_StudentRejectsEmployeeID(t *testing.T) {
	users := new(mockAuthUserStore)
	svc := newAuthService(users, new(mockRefreshTokenStore))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:      "jane@campus.edu",
		Password:   "secret123",
		Role:       models.RoleStudent,
		StudentID:  strPtr("20231234"),
		EmployeeID: strPtr("E200"),
	})

	require.Error(t, err)
}

func TestRegister_FacultyRequiresEmployeeID(t *testing.T) {
	users := new(mockAuthUserStore)
	svc := newAuthService(users, new(mockRefreshTokenStore))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "prof@campus.edu",
		Password: "secret123",
		Role:     models.RoleFaculty,
	})

	require.Error(t, err)
}

func TestRegister_RejectsMalformedStudentID(t *testing.T) {
	users := new(mockAuthUserStore)
	svc := newAuthService(users, new(mockRefreshTokenStore))

	for _, id := range []string{"S100", "1234", "123456789", "2023123a"} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:     "jane@campus.edu",
			Password:  "secret123",
			Role:      models.RoleStudent,
			StudentID: strPtr(id),
		})
		require.Error(t, err, "student ID %q should be rejected", id)
	}
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	users := new(mockAuthUserStore)
	svc := newAuthService(users, new(mockRefreshTokenStore))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "x@campus.edu",
		Password: "secret123",
		Role:     models.Role("dean"),
	})

	require.Error(t, err)
}

func TestRegister_RejectsBadEmail(t *testing.T) {
	users := new(mockAuthUserStore)
	svc := newAuthService(users, new(mockRefreshTokenStore))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "not-an-email",
		Password:  "secret123",
		Role:      models.RoleStudent,
		StudentID: strPtr("20231234"),
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	users := new(mockAuthUserStore)
	svc := newAuthService(users, new(mockRefreshTokenStore))

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "jane@campus.edu",
		Password:  "short",
		Role:      models.RoleStudent,
		StudentID: strPtr("20231234"),
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_SuccessReturnsTokens(t *testing.T) {
	users := new(mockAuthUserStore)
	tokens := new(mockRefreshTokenStore)
	svc := newAuthService(users, tokens)

	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "jane@campus.edu" && u.IsActive && u.Password != "secret123"
	})).Return(nil)
	tokens.On("CreateToken", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("int64"), mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "Jane@Campus.edu",
		Password:  "secret123",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      models.RoleStudent,
		StudentID: strPtr("20231234"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, "jane@campus.edu", resp.User.Email)
}

func TestLogin_UnknownEmailAndBadPasswordSameError(t *testing.T) {
	users := new(mockAuthUserStore)
	tokens := new(mockRefreshTokenStore)
	svc := newAuthService(users, tokens)

	hashed, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	users.On("GetByEmail", mock.Anything, "ghost@campus.edu").Return(nil, apperrors.ErrUserNotFound)
	users.On("GetByEmail", mock.Anything, "jane@campus.edu").Return(&models.User{
		ID: 7, Email: "jane@campus.edu", Password: hashed, Role: models.RoleStudent, IsActive: true,
	}, nil)

	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{Email: "ghost@campus.edu", Password: "whatever"})
	_, badPassErr := svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@campus.edu", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, badPassErr, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := new(mockAuthUserStore)
	svc := newAuthService(users, new(mockRefreshTokenStore))

	users.On("GetByEmail", mock.Anything, "jane@campus.edu").Return(&models.User{
		ID: 7, Email: "jane@campus.edu", IsActive: false,
	}, nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jane@campus.edu", Password: "secret123"})

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshToken_RotatesOldToken(t *testing.T) {
	users := new(mockAuthUserStore)
	tokens := new(mockRefreshTokenStore)
	svc := newAuthService(users, tokens)

	tokens.On("GetTokenByValue", mock.Anything, "old-token").Return(int64(7), time.Now().Add(time.Hour), false, nil)
	users.On("GetByID", mock.Anything, int64(7)).Return(&models.User{
		ID: 7, Email: "jane@campus.edu", Role: models.RoleStudent, IsActive: true,
	}, nil)
	tokens.On("RevokeToken", mock.Anything, "old-token").Return(nil)
	tokens.On("CreateToken", mock.Anything, mock.AnythingOfType("string"), int64(7), mock.AnythingOfType("time.Time")).Return(nil)

	resp, err := svc.RefreshToken(context.Background(), "old-token")

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, "old-token", resp.RefreshToken)
	tokens.AssertExpectations(t)
}
