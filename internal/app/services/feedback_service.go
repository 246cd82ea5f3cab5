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
	"github.com/campushub/campushub/internal/app/workflow"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// FeedbackService handles the feedback lifecycle: CRUD, responses and votes
type FeedbackService interface {
	List(ctx context.Context, actor models.Actor, filter *dto.FeedbackFilterRequest) ([]models.Feedback, int64, error)
	Get(ctx context.Context, actor models.Actor, id int64) (*models.Feedback, error)
	Create(ctx context.Context, actor models.Actor, req *dto.CreateFeedbackRequest) (*models.Feedback, error)
	Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateFeedbackRequest) (*models.Feedback, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	Respond(ctx context.Context, actor models.Actor, id int64, text string) (*models.Feedback, error)
	Vote(ctx context.Context, actor models.Actor, id int64, voteType models.VoteType) (*models.Feedback, error)
}

// FeedbackStore is the persistence surface for feedback.
type FeedbackStore interface {
	GetAll(ctx context.Context, filter repositories.FeedbackFilter, page, pageSize int) ([]models.Feedback, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Feedback, error)
	Create(ctx context.Context, f *models.Feedback) error
	Update(ctx context.Context, f *models.Feedback) error
	Delete(ctx context.Context, id int64) error
	AddResponse(ctx context.Context, f *models.Feedback, resp *models.FeedbackResponse) error
	Vote(ctx context.Context, feedbackID, userID int64, voteType models.VoteType) error
}

type feedbackService struct {
	feedbackRepo FeedbackStore
	authz        *auth.AuthorizationService
	publisher    notifications.Publisher
	logger       zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(feedbackRepo FeedbackStore, authz *auth.AuthorizationService, publisher notifications.Publisher, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		authz:        authz,
		publisher:    publisher,
		logger:       logger,
	}
}

// List returns feedback entries. Non-staff callers see public entries
// plus their own private ones.
func (s *feedbackService) List(ctx context.Context, actor models.Actor, filter *dto.FeedbackFilterRequest) ([]models.Feedback, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	repoFilter := repositories.FeedbackFilter{
		Category: filter.Category,
		Status:   filter.Status,
	}
	if !actor.Role.IsStaff() {
		repoFilter.PublicOnly = true
		if !actor.Anonymous() {
			repoFilter.CreatedBy = &actor.ID
		}
	}

	return s.feedbackRepo.GetAll(ctx, repoFilter, filter.Page, filter.PageSize)
}

// Get returns a single entry; private entries are restricted to the
// submitter and staff
func (s *feedbackService) Get(ctx context.Context, actor models.Actor, id int64) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	f, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.IsPublic && !actor.Role.IsStaff() && actor.ID != f.CreatedBy {
		return nil, apperrors.NewResourceNotFoundError("feedback not found")
	}
	return f, nil
}

// Create submits a new feedback entry
func (s *feedbackService) Create(ctx context.Context, actor models.Actor, req *dto.CreateFeedbackRequest) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	f := &models.Feedback{
		Subject:   req.Subject,
		Message:   req.Message,
		Category:  req.Category,
		Status:    models.FeedbackOpen,
		CreatedBy: actor.ID,
		IsPublic:  isPublic,
	}

	if err := s.feedbackRepo.Create(ctx, f); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("feedbackID", f.ID).Msg("Feedback created")
	s.publisher.Publish(notifications.EventNewFeedback, f)
	return f, nil
}

// Update patches an entry. Owners edit their own text; status writes are
// a staff override.
func (s *feedbackService) Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateFeedbackRequest) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	f, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !actor.Role.IsStaff() {
			return nil, apperrors.NewForbiddenError("status changes require faculty or admin role")
		}
		if err := workflow.SetFeedbackStatus(f, *req.Status); err != nil {
			return nil, err
		}
	}
	if req.Subject != nil || req.Message != nil || req.Category != nil || req.IsPublic != nil {
		if err := s.authz.ValidateEdit(actor, f.OwnerID()); err != nil {
			return nil, err
		}
		if req.Subject != nil {
			f.Subject = *req.Subject
		}
		if req.Message != nil {
			f.Message = *req.Message
		}
		if req.Category != nil {
			f.Category = *req.Category
		}
		if req.IsPublic != nil {
			f.IsPublic = *req.IsPublic
		}
	}

	if err := s.feedbackRepo.Update(ctx, f); err != nil {
		return nil, err
	}

	s.publisher.Publish(notifications.EventFeedbackUpdated, f)
	return f, nil
}

// Delete removes an entry; owner or admin only
func (s *feedbackService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	f, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateDelete(actor, f.OwnerID()); err != nil {
		return err
	}

	if err := s.feedbackRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(notifications.EventFeedbackUpdated, &notifications.Deleted{ResourceID: id})
	return nil
}

// Respond posts a staff response; the first one moves open feedback to
// in-progress and assigns it
func (s *feedbackService) Respond(ctx context.Context, actor models.Actor, id int64, text string) (*models.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	f, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := workflow.ApplyResponse(f, actor, text, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.feedbackRepo.AddResponse(ctx, f, &resp); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("feedbackID", id).Int64("respondedBy", actor.ID).Msg("Feedback response added")
	s.publisher.Publish(notifications.EventFeedbackResponse, f)
	return f, nil
}

// Vote records or switches the caller's vote
func (s *feedbackService) Vote(ctx context.Context, actor models.Actor, id int64, voteType models.VoteType) (*models.Feedback, error) {
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return nil, apperrors.NewBadRequestError("voteType must be up or down")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.feedbackRepo.Vote(ctx, id, actor.ID, voteType); err != nil {
		return nil, err
	}

	f, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(notifications.EventFeedbackUpdated, f)
	return f, nil
}
