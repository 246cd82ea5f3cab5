package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/repositories"
)

// fakePublisher records published events for assertions.
type fakePublisher struct {
	events   []string
	payloads []interface{}
}

func (p *fakePublisher) Publish(event string, payload interface{}) {
	p.events = append(p.events, event)
	p.payloads = append(p.payloads, payload)
}

type mockEventStore struct {
	mock.Mock
}

func (m *mockEventStore) GetAll(ctx context.Context, filter repositories.EventFilter, page, pageSize int) ([]models.Event, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]models.Event), args.Get(1).(int64), args.Error(2)
}

func (m *mockEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventStore) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventStore) Update(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventStore) Approve(ctx context.Context, id, approvedBy int64, approvedAt time.Time) error {
	args := m.Called(ctx, id, approvedBy, approvedAt)
	return args.Error(0)
}

func (m *mockEventStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockEventStore) Register(ctx context.Context, eventID, userID int64) (*models.EventAttendee, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventAttendee), args.Error(1)
}

func (m *mockEventStore) CancelRegistration(ctx context.Context, eventID, userID int64) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

type mockClubStore struct {
	mock.Mock
}

func (m *mockClubStore) GetAll(ctx context.Context, filter repositories.ClubFilter, page, pageSize int) ([]models.Club, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]models.Club), args.Get(1).(int64), args.Error(2)
}

func (m *mockClubStore) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Club), args.Error(1)
}

func (m *mockClubStore) Create(ctx context.Context, club *models.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *mockClubStore) Update(ctx context.Context, club *models.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}

func (m *mockClubStore) Approve(ctx context.Context, id, approvedBy int64, approvedAt time.Time) error {
	args := m.Called(ctx, id, approvedBy, approvedAt)
	return args.Error(0)
}

func (m *mockClubStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockClubStore) AddMember(ctx context.Context, clubID, userID int64) (*models.ClubMember, error) {
	args := m.Called(ctx, clubID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClubMember), args.Error(1)
}

func (m *mockClubStore) RemoveMember(ctx context.Context, clubID, userID int64) error {
	args := m.Called(ctx, clubID, userID)
	return args.Error(0)
}

func (m *mockClubStore) UpdateMemberRole(ctx context.Context, clubID, userID int64, role models.MemberRole) error {
	args := m.Called(ctx, clubID, userID, role)
	return args.Error(0)
}

type mockFeedbackStore struct {
	mock.Mock
}

func (m *mockFeedbackStore) GetAll(ctx context.Context, filter repositories.FeedbackFilter, page, pageSize int) ([]models.Feedback, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]models.Feedback), args.Get(1).(int64), args.Error(2)
}

func (m *mockFeedbackStore) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *mockFeedbackStore) Create(ctx context.Context, f *models.Feedback) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *mockFeedbackStore) Update(ctx context.Context, f *models.Feedback) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *mockFeedbackStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockFeedbackStore) AddResponse(ctx context.Context, f *models.Feedback, resp *models.FeedbackResponse) error {
	args := m.Called(ctx, f, resp)
	return args.Error(0)
}

func (m *mockFeedbackStore) Vote(ctx context.Context, feedbackID, userID int64, voteType models.VoteType) error {
	args := m.Called(ctx, feedbackID, userID, voteType)
	return args.Error(0)
}

type mockAnnouncementStore struct {
	mock.Mock
}

func (m *mockAnnouncementStore) GetAll(ctx context.Context, filter repositories.AnnouncementFilter, page, pageSize int) ([]models.Announcement, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]models.Announcement), args.Get(1).(int64), args.Error(2)
}

func (m *mockAnnouncementStore) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *mockAnnouncementStore) Create(ctx context.Context, a *models.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAnnouncementStore) Update(ctx context.Context, a *models.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAnnouncementStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAnnouncementStore) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAnnouncementStore) MarkRead(ctx context.Context, id, userID int64, readAt time.Time) error {
	args := m.Called(ctx, id, userID, readAt)
	return args.Error(0)
}

type mockLostFoundStore struct {
	mock.Mock
}

func (m *mockLostFoundStore) GetAll(ctx context.Context, filter repositories.LostFoundFilter, page, pageSize int) ([]models.LostFoundItem, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]models.LostFoundItem), args.Get(1).(int64), args.Error(2)
}

func (m *mockLostFoundStore) GetByID(ctx context.Context, id int64) (*models.LostFoundItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LostFoundItem), args.Error(1)
}

func (m *mockLostFoundStore) Create(ctx context.Context, item *models.LostFoundItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockLostFoundStore) Update(ctx context.Context, item *models.LostFoundItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockLostFoundStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLostFoundStore) Claim(ctx context.Context, id, claimedBy int64) error {
	args := m.Called(ctx, id, claimedBy)
	return args.Error(0)
}

func (m *mockLostFoundStore) Resolve(ctx context.Context, id, resolvedBy int64) error {
	args := m.Called(ctx, id, resolvedBy)
	return args.Error(0)
}

func (m *mockLostFoundStore) Match(ctx context.Context, lostID, foundID int64) error {
	args := m.Called(ctx, lostID, foundID)
	return args.Error(0)
}
