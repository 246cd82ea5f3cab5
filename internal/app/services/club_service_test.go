package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/notifications"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

func newClubService(store *mockClubStore, pub *fakePublisher) ClubService {
	return NewClubService(store, auth.NewAuthorizationService(), pub, zerolog.Nop())
}

func TestClubCreate_FacultyStaysPending(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Club")).Return(nil)

	club, err := svc.Create(context.Background(), models.Actor{ID: 3, Role: models.RoleFaculty}, &dto.CreateClubRequest{
		Name:     "Chess Club",
		Category: "hobby",
	})

	require.NoError(t, err)
	assert.False(t, club.IsApproved)
	assert.Equal(t, int64(3), club.AdvisorID)
	assert.Equal(t, []string{notifications.EventNewClub}, pub.events)
}

func TestClubCreate_AdminAutoApproved(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Club")).Return(nil)

	club, err := svc.Create(context.Background(), models.Actor{ID: 1, Role: models.RoleAdmin}, &dto.CreateClubRequest{
		Name:     "Debate Society",
		Category: "academic",
	})

	require.NoError(t, err)
	assert.True(t, club.IsApproved)
	assert.True(t, club.IsActive)
}

func TestClubJoin_RejectsUnapproved(t *testing.T) {
	store := new(mockClubStore)
	svc := newClubService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4, IsApproved: false}, nil)

	_, err := svc.Join(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 4)

	assert.ErrorIs(t, err, apperrors.ErrNotApproved)
	store.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClubJoin_SurfacesCapacityFull(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	cap := 1
	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4, IsApproved: true, IsActive: true, MaxMembers: &cap}, nil)
	store.On("AddMember", mock.Anything, int64(4), int64(7)).Return(nil, apperrors.ErrCapacityFull)

	_, err := svc.Join(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 4)

	assert.ErrorIs(t, err, apperrors.ErrCapacityFull)
	assert.Empty(t, pub.events)
}

func TestClubJoin_SurfacesAlreadyJoined(t *testing.T) {
	store := new(mockClubStore)
	svc := newClubService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4, IsApproved: true, IsActive: true}, nil)
	store.On("AddMember", mock.Anything, int64(4), int64(7)).Return(nil, apperrors.ErrAlreadyJoined)

	_, err := svc.Join(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 4)

	assert.ErrorIs(t, err, apperrors.ErrAlreadyJoined)
}

func TestClubJoin_PublishesOnSuccess(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4, IsApproved: true, IsActive: true}, nil)
	store.On("AddMember", mock.Anything, int64(4), int64(7)).Return(&models.ClubMember{ClubID: 4, UserID: 7}, nil)

	club, err := svc.Join(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 4)

	require.NoError(t, err)
	assert.Equal(t, int64(4), club.ID)
	assert.Equal(t, []string{notifications.EventClubMemberJoined}, pub.events)
}

func TestClubLeave_SurfacesNotAMember(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	store.On("RemoveMember", mock.Anything, int64(4), int64(7)).Return(apperrors.ErrNotAMember)

	err := svc.Leave(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 4)

	assert.ErrorIs(t, err, apperrors.ErrNotAMember)
	assert.Empty(t, pub.events)
}

func TestClubUpdate_PresidentMustBeMember(t *testing.T) {
	store := new(mockClubStore)
	svc := newClubService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{
		ID:        4,
		AdvisorID: 3,
		Members:   []models.ClubMember{{ClubID: 4, UserID: 7}},
	}, nil)

	outsider := int64(99)
	_, err := svc.Update(context.Background(), models.Actor{ID: 3, Role: models.RoleFaculty}, 4, &dto.UpdateClubRequest{PresidentID: &outsider})

	assert.ErrorIs(t, err, apperrors.ErrMemberNotFound)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestClubUpdateMemberRole_PresidentAllowed(t *testing.T) {
	store := new(mockClubStore)
	svc := newClubService(store, &fakePublisher{})

	president := int64(7)
	club := &models.Club{ID: 4, AdvisorID: 3, PresidentID: &president, IsApproved: true, IsActive: true}
	store.On("GetByID", mock.Anything, int64(4)).Return(club, nil)
	store.On("UpdateMemberRole", mock.Anything, int64(4), int64(8), models.MemberRoleSecretary).Return(nil)

	_, err := svc.UpdateMemberRole(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 4, 8, models.MemberRoleSecretary)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestClubUpdateMemberRole_PlainMemberForbidden(t *testing.T) {
	store := new(mockClubStore)
	svc := newClubService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4, AdvisorID: 3}, nil)

	_, err := svc.UpdateMemberRole(context.Background(), models.Actor{ID: 8, Role: models.RoleStudent}, 4, 9, models.MemberRoleSecretary)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	store.AssertNotCalled(t, "UpdateMemberRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClubUpdateMemberRole_UnknownRole(t *testing.T) {
	store := new(mockClubStore)
	svc := newClubService(store, &fakePublisher{})

	_, err := svc.UpdateMemberRole(context.Background(), models.Actor{ID: 1, Role: models.RoleAdmin}, 4, 8, models.MemberRole("chancellor"))

	require.Error(t, err)
	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestClubUpdate_Publishes(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4, AdvisorID: 3}, nil)
	store.On("Update", mock.Anything, mock.AnythingOfType("*models.Club")).Return(nil)

	name := "Chess & Go Club"
	_, err := svc.Update(context.Background(), models.Actor{ID: 3, Role: models.RoleFaculty}, 4, &dto.UpdateClubRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, []string{notifications.EventClubUpdated}, pub.events)
}

func TestClubDelete_PublishesDeletion(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4, AdvisorID: 3}, nil)
	store.On("Delete", mock.Anything, int64(4)).Return(nil)

	err := svc.Delete(context.Background(), models.Actor{ID: 1, Role: models.RoleAdmin}, 4)

	require.NoError(t, err)
	require.Equal(t, []string{notifications.EventClubUpdated}, pub.events)
	assert.Equal(t, &notifications.Deleted{ResourceID: 4}, pub.payloads[0])
}

func TestClubUpdateMemberRole_Publishes(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4, AdvisorID: 3}, nil)
	store.On("UpdateMemberRole", mock.Anything, int64(4), int64(8), models.MemberRoleSecretary).Return(nil)

	club, err := svc.UpdateMemberRole(context.Background(), models.Actor{ID: 3, Role: models.RoleFaculty}, 4, 8, models.MemberRoleSecretary)

	require.NoError(t, err)
	assert.Equal(t, int64(4), club.ID)
	assert.Equal(t, []string{notifications.EventClubUpdated}, pub.events)
}

func TestClubReject_DeletesAndPublishes(t *testing.T) {
	store := new(mockClubStore)
	pub := &fakePublisher{}
	svc := newClubService(store, pub)

	store.On("GetByID", mock.Anything, int64(4)).Return(&models.Club{ID: 4}, nil)
	store.On("Delete", mock.Anything, int64(4)).Return(nil)

	err := svc.Reject(context.Background(), models.Actor{ID: 1, Role: models.RoleAdmin}, 4)

	require.NoError(t, err)
	assert.Equal(t, []string{notifications.EventClubRejected}, pub.events)
}
