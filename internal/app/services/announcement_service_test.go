package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/notifications"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

func newAnnouncementService(store *mockAnnouncementStore, pub *fakePublisher) AnnouncementService {
	return NewAnnouncementService(store, auth.NewAuthorizationService(), pub, zerolog.Nop())
}

func TestAnnouncementCreate_StudentForbidden(t *testing.T) {
	store := new(mockAnnouncementStore)
	svc := newAnnouncementService(store, &fakePublisher{})

	_, err := svc.Create(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, &dto.CreateAnnouncementRequest{
		Title:          "Exam schedule",
		Content:        "Finals start June 1",
		TargetAudience: models.AudienceAll,
	})

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnnouncementCreate_DefaultsPriorityNormal(t *testing.T) {
	store := new(mockAnnouncementStore)
	pub := &fakePublisher{}
	svc := newAnnouncementService(store, pub)

	store.On("Create", mock.Anything, mock.AnythingOfType("*models.Announcement")).Return(nil)

	a, err := svc.Create(context.Background(), models.Actor{ID: 3, Role: models.RoleFaculty}, &dto.CreateAnnouncementRequest{
		Title:          "Library hours",
		Content:        "Extended hours during finals week",
		TargetAudience: models.AudienceAll,
	})

	require.NoError(t, err)
	assert.Equal(t, models.PriorityNormal, a.Priority)
	assert.True(t, a.IsActive)
	assert.Equal(t, []string{notifications.EventNewAnnouncement}, pub.events)
}

func TestAnnouncementCreate_DepartmentAudienceNeedsDepartment(t *testing.T) {
	store := new(mockAnnouncementStore)
	svc := newAnnouncementService(store, &fakePublisher{})

	_, err := svc.Create(context.Background(), models.Actor{ID: 3, Role: models.RoleFaculty}, &dto.CreateAnnouncementRequest{
		Title:          "Dept meeting",
		Content:        "All CS staff",
		TargetAudience: models.AudienceSpecificDepartment,
	})

	require.Error(t, err)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAnnouncementGet_HidesExpiredFromNonStaff(t *testing.T) {
	store := new(mockAnnouncementStore)
	svc := newAnnouncementService(store, &fakePublisher{})

	past := time.Now().Add(-time.Hour)
	store.On("GetByID", mock.Anything, int64(6)).Return(&models.Announcement{ID: 6, IsActive: true, ExpiresAt: &past}, nil)

	_, err := svc.Get(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 6)

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAnnouncementGet_StaffSeesExpired(t *testing.T) {
	store := new(mockAnnouncementStore)
	svc := newAnnouncementService(store, &fakePublisher{})

	past := time.Now().Add(-time.Hour)
	store.On("GetByID", mock.Anything, int64(6)).Return(&models.Announcement{ID: 6, IsActive: true, ExpiresAt: &past, Views: 4}, nil)
	store.On("IncrementViews", mock.Anything, int64(6)).Return(nil)

	a, err := svc.Get(context.Background(), models.Actor{ID: 2, Role: models.RoleAdmin}, 6)

	require.NoError(t, err)
	assert.Equal(t, 5, a.Views)
}

func TestAnnouncementGet_ViewCountBestEffort(t *testing.T) {
	store := new(mockAnnouncementStore)
	svc := newAnnouncementService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(6)).Return(&models.Announcement{ID: 6, IsActive: true, Views: 4}, nil)
	store.On("IncrementViews", mock.Anything, int64(6)).Return(assert.AnError)

	a, err := svc.Get(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 6)

	require.NoError(t, err)
	assert.Equal(t, 4, a.Views)
}

func TestAnnouncementList_NonStaffVisibleOnly(t *testing.T) {
	store := new(mockAnnouncementStore)
	svc := newAnnouncementService(store, &fakePublisher{})

	store.On("GetAll", mock.Anything, mock.MatchedBy(func(f repositories.AnnouncementFilter) bool {
		return f.VisibleOnly
	}), 1, 20).Return([]models.Announcement{}, int64(0), nil)

	_, _, err := svc.List(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, &dto.AnnouncementFilterRequest{Page: 1, PageSize: 20})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAnnouncementUpdate_RejectsUnknownPriority(t *testing.T) {
	store := new(mockAnnouncementStore)
	svc := newAnnouncementService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(6)).Return(&models.Announcement{ID: 6, CreatedBy: 3}, nil)

	bad := models.Priority("critical")
	_, err := svc.Update(context.Background(), models.Actor{ID: 3, Role: models.RoleFaculty}, 6, &dto.UpdateAnnouncementRequest{Priority: &bad})

	require.Error(t, err)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAnnouncementDelete_PublishesDeletion(t *testing.T) {
	store := new(mockAnnouncementStore)
	pub := &fakePublisher{}
	svc := newAnnouncementService(store, pub)

	store.On("GetByID", mock.Anything, int64(6)).Return(&models.Announcement{ID: 6, CreatedBy: 3}, nil)
	store.On("Delete", mock.Anything, int64(6)).Return(nil)

	err := svc.Delete(context.Background(), models.Actor{ID: 3, Role: models.RoleFaculty}, 6)

	require.NoError(t, err)
	require.Len(t, pub.payloads, 1)
	deleted, ok := pub.payloads[0].(*notifications.Deleted)
	require.True(t, ok)
	assert.Equal(t, int64(6), deleted.ResourceID)
}

func TestAnnouncementMarkRead(t *testing.T) {
	store := new(mockAnnouncementStore)
	svc := newAnnouncementService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(6)).Return(&models.Announcement{ID: 6, IsActive: true}, nil)
	store.On("MarkRead", mock.Anything, int64(6), int64(7), mock.AnythingOfType("time.Time")).Return(nil)

	err := svc.MarkRead(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 6)

	require.NoError(t, err)
	store.AssertExpectations(t)
}
