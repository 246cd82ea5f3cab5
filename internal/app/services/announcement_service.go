package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/notifications"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// AnnouncementService handles the announcement lifecycle
type AnnouncementService interface {
	List(ctx context.Context, actor models.Actor, filter *dto.AnnouncementFilterRequest) ([]models.Announcement, int64, error)
	Get(ctx context.Context, actor models.Actor, id int64) (*models.Announcement, error)
	Create(ctx context.Context, actor models.Actor, req *dto.CreateAnnouncementRequest) (*models.Announcement, error)
	Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	MarkRead(ctx context.Context, actor models.Actor, id int64) error
}

// AnnouncementStore is the persistence surface for announcements.
type AnnouncementStore interface {
	GetAll(ctx context.Context, filter repositories.AnnouncementFilter, page, pageSize int) ([]models.Announcement, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	Create(ctx context.Context, a *models.Announcement) error
	Update(ctx context.Context, a *models.Announcement) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	MarkRead(ctx context.Context, id, userID int64, readAt time.Time) error
}

type announcementService struct {
	announcementRepo AnnouncementStore
	authz            *auth.AuthorizationService
	publisher        notifications.Publisher
	logger           zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo AnnouncementStore, authz *auth.AuthorizationService, publisher notifications.Publisher, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		authz:            authz,
		publisher:        publisher,
		logger:           logger,
	}
}

// List returns announcements. Non-staff only see active, unexpired ones.
func (s *announcementService) List(ctx context.Context, actor models.Actor, filter *dto.AnnouncementFilterRequest) ([]models.Announcement, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	repoFilter := repositories.AnnouncementFilter{
		Priority:    filter.Priority,
		Audience:    filter.Audience,
		Search:      filter.Search,
		VisibleOnly: !actor.Role.IsStaff(),
	}

	return s.announcementRepo.GetAll(ctx, repoFilter, filter.Page, filter.PageSize)
}

// Get returns an announcement and counts the view
func (s *announcementService) Get(ctx context.Context, actor models.Actor, id int64) (*models.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Visible(time.Now()) && !actor.Role.IsStaff() {
		return nil, apperrors.NewResourceNotFoundError("announcement not found")
	}

	if err := s.announcementRepo.IncrementViews(ctx, id); err != nil {
		// View counting is best effort; the read still succeeds
		s.logger.Warn().Err(err).Int64("announcementID", id).Msg("Failed to count view")
	} else {
		a.Views++
	}

	return a, nil
}

// Create posts a new announcement; faculty or admin only
func (s *announcementService) Create(ctx context.Context, actor models.Actor, req *dto.CreateAnnouncementRequest) (*models.Announcement, error) {
	if !s.authz.CanPostAnnouncement(actor) {
		return nil, apperrors.NewForbiddenError("posting announcements requires faculty or admin role")
	}
	if !req.TargetAudience.Valid() {
		return nil, apperrors.NewBadRequestError("unknown target audience")
	}
	if req.TargetAudience == models.AudienceSpecificDepartment && req.Department == nil {
		return nil, apperrors.NewBadRequestError("department is required for a department-specific announcement")
	}
	if req.TargetAudience == models.AudienceSpecificYear && req.Year == nil {
		return nil, apperrors.NewBadRequestError("year is required for a year-specific announcement")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}

	a := &models.Announcement{
		Title:          req.Title,
		Content:        req.Content,
		Priority:       priority,
		TargetAudience: req.TargetAudience,
		Department:     req.Department,
		Year:           req.Year,
		CreatedBy:      actor.ID,
		ExpiresAt:      req.ExpiresAt,
		IsActive:       true,
	}

	if err := s.announcementRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("announcementID", a.ID).Msg("Announcement created")
	s.publisher.Publish(notifications.EventNewAnnouncement, a)
	return a, nil
}

// Update patches an announcement; poster or admin only
func (s *announcementService) Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateEdit(actor, a.OwnerID()); err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, apperrors.NewBadRequestError("unknown priority")
		}
		a.Priority = *req.Priority
	}
	if req.TargetAudience != nil {
		if !req.TargetAudience.Valid() {
			return nil, apperrors.NewBadRequestError("unknown target audience")
		}
		a.TargetAudience = *req.TargetAudience
	}
	if req.Department != nil {
		a.Department = req.Department
	}
	if req.Year != nil {
		a.Year = req.Year
	}
	if req.ExpiresAt != nil {
		a.ExpiresAt = req.ExpiresAt
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.announcementRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.publisher.Publish(notifications.EventAnnouncementUpdated, a)
	return a, nil
}

// Delete removes an announcement; poster or admin only
func (s *announcementService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	a, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateDelete(actor, a.OwnerID()); err != nil {
		return err
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(notifications.EventAnnouncementDeleted, &notifications.Deleted{ResourceID: id})
	return nil
}

// MarkRead records the caller's read receipt
func (s *announcementService) MarkRead(ctx context.Context, actor models.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if _, err := s.announcementRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.announcementRepo.MarkRead(ctx, id, actor.ID, time.Now())
}
