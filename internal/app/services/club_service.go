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

// ClubService handles the club lifecycle: CRUD, approval and membership
type ClubService interface {
	List(ctx context.Context, actor models.Actor, filter *dto.ClubFilterRequest) ([]models.Club, int64, error)
	Get(ctx context.Context, id int64) (*models.Club, error)
	Create(ctx context.Context, actor models.Actor, req *dto.CreateClubRequest) (*models.Club, error)
	Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateClubRequest) (*models.Club, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	Approve(ctx context.Context, actor models.Actor, id int64) (*models.Club, error)
	Reject(ctx context.Context, actor models.Actor, id int64) error
	Join(ctx context.Context, actor models.Actor, id int64) (*models.Club, error)
	Leave(ctx context.Context, actor models.Actor, id int64) error
	UpdateMemberRole(ctx context.Context, actor models.Actor, clubID, userID int64, role models.MemberRole) (*models.Club, error)
}

// ClubStore is the persistence surface for clubs.
type ClubStore interface {
	GetAll(ctx context.Context, filter repositories.ClubFilter, page, pageSize int) ([]models.Club, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	Create(ctx context.Context, club *models.Club) error
	Update(ctx context.Context, club *models.Club) error
	Approve(ctx context.Context, id, approvedBy int64, approvedAt time.Time) error
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, clubID, userID int64) (*models.ClubMember, error)
	RemoveMember(ctx context.Context, clubID, userID int64) error
	UpdateMemberRole(ctx context.Context, clubID, userID int64, role models.MemberRole) error
}

type clubService struct {
	clubRepo  ClubStore
	authz     *auth.AuthorizationService
	publisher notifications.Publisher
	logger    zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(clubRepo ClubStore, authz *auth.AuthorizationService, publisher notifications.Publisher, logger zerolog.Logger) ClubService {
	return &clubService{
		clubRepo:  clubRepo,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns clubs matching the filter. Non-staff only see approved
// active clubs.
func (s *clubService) List(ctx context.Context, actor models.Actor, filter *dto.ClubFilterRequest) ([]models.Club, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	repoFilter := repositories.ClubFilter{
		Category: filter.Category,
		Search:   filter.Search,
	}
	if actor.Role.IsStaff() {
		repoFilter.ApprovedOnly = filter.Status == "approved"
		repoFilter.PendingOnly = filter.Status == "pending"
	} else {
		repoFilter.ApprovedOnly = true
	}

	return s.clubRepo.GetAll(ctx, repoFilter, filter.Page, filter.PageSize)
}

// Get returns a single club with its membership list
func (s *clubService) Get(ctx context.Context, id int64) (*models.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.clubRepo.GetByID(ctx, id)
}

// Create submits a new club with the caller as advisor. Admin-created
// clubs skip the pending state.
func (s *clubService) Create(ctx context.Context, actor models.Actor, req *dto.CreateClubRequest) (*models.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	club := &models.Club{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		AdvisorID:   actor.ID,
		MaxMembers:  req.MaxMembers,
	}

	if workflow.ClubAutoApproved(actor.Role) {
		now := time.Now()
		club.IsApproved = true
		club.IsActive = true
		club.ApprovedBy = &actor.ID
		club.ApprovedAt = &now
	}

	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("clubID", club.ID).Bool("autoApproved", club.IsApproved).Msg("Club created")
	s.publisher.Publish(notifications.EventNewClub, club)
	return club, nil
}

// Update patches the mutable fields; advisor or admin only
func (s *clubService) Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateClubRequest) (*models.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateEdit(actor, club.OwnerID()); err != nil {
		return nil, err
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.Category != nil {
		club.Category = *req.Category
	}
	if req.MaxMembers != nil {
		club.MaxMembers = req.MaxMembers
	}
	if req.PresidentID != nil {
		if !club.HasMember(*req.PresidentID) {
			return nil, apperrors.ErrMemberNotFound
		}
		club.PresidentID = req.PresidentID
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, err
	}

	s.publisher.Publish(notifications.EventClubUpdated, club)
	return club, nil
}

// Delete removes a club; advisor or admin only
func (s *clubService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateDelete(actor, club.OwnerID()); err != nil {
		return err
	}

	if err := s.clubRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(notifications.EventClubUpdated, &notifications.Deleted{ResourceID: id})
	return nil
}

// Approve moves a pending club to approved; faculty or admin only
func (s *clubService) Approve(ctx context.Context, actor models.Actor, id int64) (*models.Club, error) {
	if err := s.authz.ValidateApprover(actor); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := workflow.ApproveClub(club, actor, now); err != nil {
		return nil, err
	}

	if err := s.clubRepo.Approve(ctx, id, actor.ID, now); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("clubID", id).Int64("approvedBy", actor.ID).Msg("Club approved")
	s.publisher.Publish(notifications.EventClubApproved, club)
	return club, nil
}

// Reject removes a pending club; faculty or admin only
func (s *clubService) Reject(ctx context.Context, actor models.Actor, id int64) error {
	if err := s.authz.ValidateApprover(actor); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := workflow.RejectClub(club); err != nil {
		return err
	}

	if err := s.clubRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("clubID", id).Int64("rejectedBy", actor.ID).Msg("Club rejected")
	s.publisher.Publish(notifications.EventClubRejected, club)
	return nil
}

// Join adds the caller to an approved club
func (s *clubService) Join(ctx context.Context, actor models.Actor, id int64) (*models.Club, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !club.IsApproved || !club.IsActive {
		return nil, apperrors.ErrNotApproved
	}

	if _, err := s.clubRepo.AddMember(ctx, id, actor.ID); err != nil {
		return nil, err
	}

	club, err = s.clubRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("clubID", id).Int64("userID", actor.ID).Msg("Club member joined")
	s.publisher.Publish(notifications.EventClubMemberJoined, club)
	return club, nil
}

// Leave removes the caller's membership
func (s *clubService) Leave(ctx context.Context, actor models.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.clubRepo.RemoveMember(ctx, id, actor.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("clubID", id).Int64("userID", actor.ID).Msg("Club member left")
	s.publisher.Publish(notifications.EventClubMemberLeft, &notifications.Deleted{ResourceID: id})
	return nil
}

// UpdateMemberRole changes a member's office; advisor, president or admin
func (s *clubService) UpdateMemberRole(ctx context.Context, actor models.Actor, clubID, userID int64, role models.MemberRole) (*models.Club, error) {
	if !role.Valid() {
		return nil, apperrors.NewBadRequestError("unknown member role")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateMemberManager(actor, club.AdvisorID, club.PresidentID); err != nil {
		return nil, err
	}

	if err := s.clubRepo.UpdateMemberRole(ctx, clubID, userID, role); err != nil {
		return nil, err
	}

	club, err = s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(notifications.EventClubUpdated, club)
	return club, nil
}
