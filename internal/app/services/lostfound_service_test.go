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

func newLostFoundService(store *mockLostFoundStore, pub *fakePublisher) LostFoundService {
	return NewLostFoundService(store, auth.NewAuthorizationService(), pub, zerolog.Nop())
}

func floatPtr(f float64) *float64 { return &f }

func TestLostFoundList_PartialGeoFilterRejected(t *testing.T) {
	store := new(mockLostFoundStore)
	svc := newLostFoundService(store, &fakePublisher{})

	_, _, err := svc.List(context.Background(), &dto.LostFoundFilterRequest{
		Latitude: floatPtr(41.0),
		Page:     1, PageSize: 20,
	})

	require.Error(t, err)
	store.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLostFoundCreate_LoneLatitudeRejected(t *testing.T) {
	store := new(mockLostFoundStore)
	svc := newLostFoundService(store, &fakePublisher{})

	_, err := svc.Create(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, &dto.CreateLostFoundRequest{
		Title:    "Blue backpack",
		Category: models.CategoryLost,
		Location: "Library",
		Latitude: floatPtr(41.0),
	})

	require.Error(t, err)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLostFoundCreate_OpensAndPublishes(t *testing.T) {
	store := new(mockLostFoundStore)
	pub := &fakePublisher{}
	svc := newLostFoundService(store, pub)

	store.On("Create", mock.Anything, mock.AnythingOfType("*models.LostFoundItem")).Return(nil)

	item, err := svc.Create(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, &dto.CreateLostFoundRequest{
		Title:    "Blue backpack",
		Category: models.CategoryLost,
		Location: "Library",
	})

	require.NoError(t, err)
	assert.Equal(t, models.LostFoundOpen, item.Status)
	assert.Equal(t, int64(7), item.ReportedBy)
	assert.Equal(t, []string{notifications.EventLostFoundUpdate}, pub.events)
}

func TestLostFoundClaim_OwnItemRejected(t *testing.T) {
	store := new(mockLostFoundStore)
	svc := newLostFoundService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(5)).Return(&models.LostFoundItem{
		ID: 5, Status: models.LostFoundOpen, ReportedBy: 7,
	}, nil)

	_, err := svc.Claim(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 5)

	require.Error(t, err)
	store.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
}

func TestLostFoundClaim_PublishesOnSuccess(t *testing.T) {
	store := new(mockLostFoundStore)
	pub := &fakePublisher{}
	svc := newLostFoundService(store, pub)

	store.On("GetByID", mock.Anything, int64(5)).Return(&models.LostFoundItem{
		ID: 5, Status: models.LostFoundOpen, ReportedBy: 7,
	}, nil)
	store.On("Claim", mock.Anything, int64(5), int64(8)).Return(nil)

	item, err := svc.Claim(context.Background(), models.Actor{ID: 8, Role: models.RoleStudent}, 5)

	require.NoError(t, err)
	assert.Equal(t, models.LostFoundClaimed, item.Status)
	require.NotNil(t, item.ClaimedBy)
	assert.Equal(t, int64(8), *item.ClaimedBy)
	assert.Equal(t, []string{notifications.EventLostFoundClaimed}, pub.events)
}

func TestLostFoundResolve_UninvolvedStudentForbidden(t *testing.T) {
	store := new(mockLostFoundStore)
	svc := newLostFoundService(store, &fakePublisher{})

	claimant := int64(8)
	store.On("GetByID", mock.Anything, int64(5)).Return(&models.LostFoundItem{
		ID: 5, Status: models.LostFoundClaimed, ReportedBy: 7, ClaimedBy: &claimant,
	}, nil)

	_, err := svc.Resolve(context.Background(), models.Actor{ID: 9, Role: models.RoleStudent}, 5)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestLostFoundResolve_ClaimantAllowed(t *testing.T) {
	store := new(mockLostFoundStore)
	pub := &fakePublisher{}
	svc := newLostFoundService(store, pub)

	claimant := int64(8)
	store.On("GetByID", mock.Anything, int64(5)).Return(&models.LostFoundItem{
		ID: 5, Status: models.LostFoundClaimed, ReportedBy: 7, ClaimedBy: &claimant,
	}, nil)
	store.On("Resolve", mock.Anything, int64(5), int64(8)).Return(nil)

	item, err := svc.Resolve(context.Background(), models.Actor{ID: 8, Role: models.RoleStudent}, 5)

	require.NoError(t, err)
	assert.Equal(t, models.LostFoundResolved, item.Status)
	assert.Equal(t, []string{notifications.EventLostFoundResolved}, pub.events)
}

func TestLostFoundMatch_StudentForbidden(t *testing.T) {
	store := new(mockLostFoundStore)
	svc := newLostFoundService(store, &fakePublisher{})

	_, err := svc.Match(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 5, 6)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestLostFoundMatch_LinksBothAndPublishesTwice(t *testing.T) {
	store := new(mockLostFoundStore)
	pub := &fakePublisher{}
	svc := newLostFoundService(store, pub)

	lost := &models.LostFoundItem{ID: 5, Status: models.LostFoundOpen, Category: models.CategoryLost}
	found := &models.LostFoundItem{ID: 6, Status: models.LostFoundOpen, Category: models.CategoryFound}
	store.On("GetByID", mock.Anything, int64(5)).Return(lost, nil)
	store.On("GetByID", mock.Anything, int64(6)).Return(found, nil)
	store.On("Match", mock.Anything, int64(5), int64(6)).Return(nil)

	item, err := svc.Match(context.Background(), models.Actor{ID: 2, Role: models.RoleFaculty}, 5, 6)

	require.NoError(t, err)
	assert.Equal(t, models.LostFoundMatched, item.Status)
	require.NotNil(t, item.MatchedWith)
	assert.Equal(t, int64(6), *item.MatchedWith)
	assert.Len(t, pub.events, 2)
}

func TestLostFoundDelete_PublishesDeletion(t *testing.T) {
	store := new(mockLostFoundStore)
	pub := &fakePublisher{}
	svc := newLostFoundService(store, pub)

	store.On("GetByID", mock.Anything, int64(5)).Return(&models.LostFoundItem{ID: 5, ReportedBy: 7}, nil)
	store.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.Delete(context.Background(), models.Actor{ID: 7, Role: models.RoleStudent}, 5)

	require.NoError(t, err)
	require.Equal(t, []string{notifications.EventLostFoundUpdate}, pub.events)
	assert.Equal(t, &notifications.Deleted{ResourceID: 5}, pub.payloads[0])
}

func TestLostFoundMatch_SameCategoryRejected(t *testing.T) {
	store := new(mockLostFoundStore)
	svc := newLostFoundService(store, &fakePublisher{})

	store.On("GetByID", mock.Anything, int64(5)).Return(&models.LostFoundItem{ID: 5, Status: models.LostFoundOpen, Category: models.CategoryLost}, nil)
	store.On("GetByID", mock.Anything, int64(6)).Return(&models.LostFoundItem{ID: 6, Status: models.LostFoundOpen, Category: models.CategoryLost}, nil)

	_, err := svc.Match(context.Background(), models.Actor{ID: 2, Role: models.RoleAdmin}, 5, 6)

	require.Error(t, err)
	store.AssertNotCalled(t, "Match", mock.Anything, mock.Anything, mock.Anything)
}
