package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetAll(ctx context.Context, role, department, search string, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, role, department, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id int64, firstName, lastName, department string) error {
	args := m.Called(ctx, id, firstName, lastName, department)
	return args.Error(0)
}

func (m *mockUserStore) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSessionRevoker struct {
	mock.Mock
}

func (m *mockSessionRevoker) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newUserService(store *mockUserStore) UserService {
	revoker := new(mockSessionRevoker)
	revoker.On("RevokeAllUserTokens", mock.Anything, mock.AnythingOfType("int64")).Return(nil)
	return NewUserService(store, revoker, zerolog.Nop())
}

func TestUserUpdateProfile_ReloadsAfterWrite(t *testing.T) {
	store := new(mockUserStore)
	svc := newUserService(store)

	store.On("UpdateProfile", mock.Anything, int64(7), "Jane", "Doe", "Physics").Return(nil)
	store.On("GetByID", mock.Anything, int64(7)).Return(&models.User{ID: 7, FirstName: "Jane"}, nil)

	user, err := svc.UpdateProfile(context.Background(), 7, &dto.UpdateProfileRequest{
		FirstName:  "Jane",
		LastName:   "Doe",
		Department: "Physics",
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane", user.FirstName)
	store.AssertExpectations(t)
}

func TestUserList_AdminOnly(t *testing.T) {
	store := new(mockUserStore)
	svc := newUserService(store)

	_, _, err := svc.List(context.Background(), models.Actor{ID: 7, Role: models.RoleFaculty}, &dto.UserFilterRequest{Page: 1, PageSize: 20})

	assert.Error(t, err)
	store.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUserList_PassesFilterThrough(t *testing.T) {
	store := new(mockUserStore)
	svc := newUserService(store)

	store.On("GetAll", mock.Anything, "student", "Physics", "jane", 2, 10).
		Return([]models.User{{ID: 1}}, int64(1), nil)

	users, total, err := svc.List(context.Background(), models.Actor{ID: 1, Role: models.RoleAdmin}, &dto.UserFilterRequest{
		Role:       "student",
		Department: "Physics",
		Search:     "jane",
		Page:       2,
		PageSize:   10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
}

func TestUserDeactivate_NeverSelf(t *testing.T) {
	store := new(mockUserStore)
	svc := newUserService(store)

	err := svc.Deactivate(context.Background(), models.Actor{ID: 3, Role: models.RoleAdmin}, 3)

	assert.Error(t, err)
	store.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestUserDeactivate_AdminAllowed(t *testing.T) {
	store := new(mockUserStore)
	svc := newUserService(store)

	store.On("Deactivate", mock.Anything, int64(9)).Return(nil)

	err := svc.Deactivate(context.Background(), models.Actor{ID: 3, Role: models.RoleAdmin}, 9)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUserDeactivate_RevokesSessions(t *testing.T) {
	store := new(mockUserStore)
	revoker := new(mockSessionRevoker)
	svc := NewUserService(store, revoker, zerolog.Nop())

	store.On("Deactivate", mock.Anything, int64(9)).Return(nil)
	revoker.On("RevokeAllUserTokens", mock.Anything, int64(9)).Return(nil)

	err := svc.Deactivate(context.Background(), models.Actor{ID: 3, Role: models.RoleAdmin}, 9)

	require.NoError(t, err)
	revoker.AssertExpectations(t)
}

func TestUserDeactivate_NoRevocationOnStoreFailure(t *testing.T) {
	store := new(mockUserStore)
	revoker := new(mockSessionRevoker)
	svc := NewUserService(store, revoker, zerolog.Nop())

	store.On("Deactivate", mock.Anything, int64(9)).Return(assert.AnError)

	err := svc.Deactivate(context.Background(), models.Actor{ID: 3, Role: models.RoleAdmin}, 9)

	assert.Error(t, err)
	revoker.AssertNotCalled(t, "RevokeAllUserTokens", mock.Anything, mock.Anything)
}
