package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// UserService handles profile and admin user management
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	List(ctx context.Context, actor models.Actor, filter *dto.UserFilterRequest) ([]models.User, int64, error)
	Deactivate(ctx context.Context, actor models.Actor, userID int64) error
}

// UserStore is the persistence surface for user management.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context, role, department, search string, page, pageSize int) ([]models.User, int64, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, department string) error
	Deactivate(ctx context.Context, id int64) error
}

// SessionRevoker invalidates a user's outstanding refresh tokens.
type SessionRevoker interface {
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo UserStore
	sessions SessionRevoker
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, sessions SessionRevoker, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// GetProfile returns the user's own profile
func (s *userService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates the caller's own mutable fields
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Department); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// List returns users matching the filter; admin only
func (s *userService) List(ctx context.Context, actor models.Actor, filter *dto.UserFilterRequest) ([]models.User, int64, error) {
	if actor.Role != models.RoleAdmin {
		return nil, 0, apperrors.NewForbiddenError("user listing requires the admin role")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.userRepo.GetAll(ctx, filter.Role, filter.Department, filter.Search, filter.Page, filter.PageSize)
}

// Deactivate marks an account inactive; admin only, and never self
func (s *userService) Deactivate(ctx context.Context, actor models.Actor, userID int64) error {
	if actor.Role != models.RoleAdmin {
		return apperrors.NewForbiddenError("user deactivation requires the admin role")
	}
	if actor.ID == userID {
		return apperrors.NewBadRequestError("cannot deactivate your own account")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}

	// A deactivated account must not come back through a refresh token.
	if err := s.sessions.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Int64("actorID", actor.ID).Msg("User deactivated")
	return nil
}
