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

// EventService handles the event lifecycle: CRUD, approval and registration
type EventService interface {
	List(ctx context.Context, actor models.Actor, filter *dto.EventFilterRequest) ([]models.Event, int64, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, actor models.Actor, req *dto.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	Approve(ctx context.Context, actor models.Actor, id int64) (*models.Event, error)
	Reject(ctx context.Context, actor models.Actor, id int64) error
	Register(ctx context.Context, actor models.Actor, id int64) (*models.Event, error)
	CancelRegistration(ctx context.Context, actor models.Actor, id int64) error
}

// EventStore is the persistence surface for events.
type EventStore interface {
	GetAll(ctx context.Context, filter repositories.EventFilter, page, pageSize int) ([]models.Event, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Approve(ctx context.Context, id, approvedBy int64, approvedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	Register(ctx context.Context, eventID, userID int64) (*models.EventAttendee, error)
	CancelRegistration(ctx context.Context, eventID, userID int64) error
}

type eventService struct {
	eventRepo EventStore
	authz     *auth.AuthorizationService
	publisher notifications.Publisher
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo EventStore, authz *auth.AuthorizationService, publisher notifications.Publisher, logger zerolog.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns events matching the filter. Non-staff callers only see
// approved active events; staff may request pending ones.
func (s *eventService) List(ctx context.Context, actor models.Actor, filter *dto.EventFilterRequest) ([]models.Event, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	repoFilter := repositories.EventFilter{
		Category: filter.Category,
		Search:   filter.Search,
	}
	if actor.Role.IsStaff() {
		repoFilter.ApprovedOnly = filter.Status == "approved"
		repoFilter.PendingOnly = filter.Status == "pending"
	} else {
		repoFilter.ApprovedOnly = true
	}
	if filter.From != "" {
		from, err := time.Parse(time.DateOnly, filter.From)
		if err != nil {
			return nil, 0, apperrors.NewBadRequestError("from must be a YYYY-MM-DD date")
		}
		repoFilter.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(time.DateOnly, filter.To)
		if err != nil {
			return nil, 0, apperrors.NewBadRequestError("to must be a YYYY-MM-DD date")
		}
		repoFilter.To = &to
	}

	return s.eventRepo.GetAll(ctx, repoFilter, filter.Page, filter.PageSize)
}

// Get returns a single event with its attendee list
func (s *eventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.eventRepo.GetByID(ctx, id)
}

// Create submits a new event. Staff-created events skip the pending state.
func (s *eventService) Create(ctx context.Context, actor models.Actor, req *dto.CreateEventRequest) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	event := &models.Event{
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Venue:                req.Venue,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		OrganizerID:          actor.ID,
		MaxAttendees:         req.MaxAttendees,
		RegistrationDeadline: req.RegistrationDeadline,
	}

	if workflow.EventAutoApproved(actor.Role) {
		now := time.Now()
		event.IsApproved = true
		event.IsActive = true
		event.ApprovedBy = &actor.ID
		event.ApprovedAt = &now
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", event.ID).Bool("autoApproved", event.IsApproved).Msg("Event created")
	s.publisher.Publish(notifications.EventNewEvent, event)
	return event, nil
}

// Update patches the mutable fields; owner or admin only
func (s *eventService) Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateEdit(actor, event.OwnerID()); err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.MaxAttendees != nil {
		event.MaxAttendees = req.MaxAttendees
	}
	if req.RegistrationDeadline != nil {
		event.RegistrationDeadline = req.RegistrationDeadline
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, apperrors.NewBadRequestError("endDate must not precede startDate")
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.publisher.Publish(notifications.EventEventUpdated, event)
	return event, nil
}

// Delete removes an event; owner or admin only
func (s *eventService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateDelete(actor, event.OwnerID()); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("eventID", id).Int64("actorID", actor.ID).Msg("Event deleted")
	s.publisher.Publish(notifications.EventEventUpdated, &notifications.Deleted{ResourceID: id})
	return nil
}

// Approve moves a pending event to approved; faculty or admin only
func (s *eventService) Approve(ctx context.Context, actor models.Actor, id int64) (*models.Event, error) {
	if err := s.authz.ValidateApprover(actor); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := workflow.ApproveEvent(event, actor, now); err != nil {
		return nil, err
	}

	// The conditional write is authoritative; the in-memory transition
	// only pre-validated the edge.
	if err := s.eventRepo.Approve(ctx, id, actor.ID, now); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).Int64("approvedBy", actor.ID).Msg("Event approved")
	s.publisher.Publish(notifications.EventEventApproved, event)
	return event, nil
}

// Reject removes a pending event; faculty or admin only
func (s *eventService) Reject(ctx context.Context, actor models.Actor, id int64) error {
	if err := s.authz.ValidateApprover(actor); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := workflow.RejectEvent(event); err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("eventID", id).Int64("rejectedBy", actor.ID).Msg("Event rejected")
	s.publisher.Publish(notifications.EventEventRejected, event)
	return nil
}

// Register adds the caller to an approved event's attendee list
func (s *eventService) Register(ctx context.Context, actor models.Actor, id int64) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsApproved || !event.IsActive {
		return nil, apperrors.ErrNotApproved
	}
	if !event.RegistrationOpen(time.Now()) {
		return nil, apperrors.ErrRegistrationClosed
	}

	if _, err := s.eventRepo.Register(ctx, id, actor.ID); err != nil {
		return nil, err
	}

	event, err = s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).Int64("userID", actor.ID).Msg("Event registration")
	s.publisher.Publish(notifications.EventEventRegistration, event)
	return event, nil
}

// CancelRegistration frees the caller's seat
func (s *eventService) CancelRegistration(ctx context.Context, actor models.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.eventRepo.CancelRegistration(ctx, id, actor.ID); err != nil {
		return err
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("eventID", id).Int64("userID", actor.ID).Msg("Registration cancelled")
	s.publisher.Publish(notifications.EventEventRegistration, event)
	return nil
}
