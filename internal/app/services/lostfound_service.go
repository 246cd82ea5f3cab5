package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/notifications"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/app/workflow"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// LostFoundService handles the lost and found item lifecycle
type LostFoundService interface {
	List(ctx context.Context, filter *dto.LostFoundFilterRequest) ([]models.LostFoundItem, int64, error)
	Get(ctx context.Context, id int64) (*models.LostFoundItem, error)
	Create(ctx context.Context, actor models.Actor, req *dto.CreateLostFoundRequest) (*models.LostFoundItem, error)
	Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateLostFoundRequest) (*models.LostFoundItem, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	Claim(ctx context.Context, actor models.Actor, id int64) (*models.LostFoundItem, error)
	Resolve(ctx context.Context, actor models.Actor, id int64) (*models.LostFoundItem, error)
	Match(ctx context.Context, actor models.Actor, id, matchedItemID int64) (*models.LostFoundItem, error)
}

// LostFoundStore is the persistence surface for lost and found items.
type LostFoundStore interface {
	GetAll(ctx context.Context, filter repositories.LostFoundFilter, page, pageSize int) ([]models.LostFoundItem, int64, error)
	GetByID(ctx context.Context, id int64) (*models.LostFoundItem, error)
	Create(ctx context.Context, item *models.LostFoundItem) error
	Update(ctx context.Context, item *models.LostFoundItem) error
	Delete(ctx context.Context, id int64) error
	Claim(ctx context.Context, id, claimedBy int64) error
	Resolve(ctx context.Context, id, resolvedBy int64) error
	Match(ctx context.Context, lostID, foundID int64) error
}

type lostFoundService struct {
	itemRepo  LostFoundStore
	authz     *auth.AuthorizationService
	publisher notifications.Publisher
	logger    zerolog.Logger
}

// NewLostFoundService creates a new LostFoundService
func NewLostFoundService(itemRepo LostFoundStore, authz *auth.AuthorizationService, publisher notifications.Publisher, logger zerolog.Logger) LostFoundService {
	return &lostFoundService{
		itemRepo:  itemRepo,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns items matching the filter, including the optional
// geo-radius constraint
func (s *lostFoundService) List(ctx context.Context, filter *dto.LostFoundFilterRequest) ([]models.LostFoundItem, int64, error) {
	geoFields := 0
	for _, f := range []*float64{filter.Latitude, filter.Longitude, filter.MaxDistance} {
		if f != nil {
			geoFields++
		}
	}
	if geoFields != 0 && geoFields != 3 {
		return nil, 0, apperrors.NewBadRequestError("geo filtering needs lat, lon and maxDistance together")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	repoFilter := repositories.LostFoundFilter{
		Category:    filter.Category,
		Status:      filter.Status,
		Search:      filter.Search,
		Latitude:    filter.Latitude,
		Longitude:   filter.Longitude,
		MaxDistance: filter.MaxDistance,
	}

	return s.itemRepo.GetAll(ctx, repoFilter, filter.Page, filter.PageSize)
}

// Get returns a single item
func (s *lostFoundService) Get(ctx context.Context, id int64) (*models.LostFoundItem, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.itemRepo.GetByID(ctx, id)
}

// Create reports a lost or found item
func (s *lostFoundService) Create(ctx context.Context, actor models.Actor, req *dto.CreateLostFoundRequest) (*models.LostFoundItem, error) {
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, apperrors.NewBadRequestError("latitude and longitude must be set together")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	item := &models.LostFoundItem{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      models.LostFoundOpen,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ReportedBy:  actor.ID,
		IsActive:    true,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("itemID", item.ID).Str("category", string(item.Category)).Msg("Lost and found item reported")
	s.publisher.Publish(notifications.EventLostFoundUpdate, item)
	return item, nil
}

// Update patches the descriptive fields; reporter or admin only
func (s *lostFoundService) Update(ctx context.Context, actor models.Actor, id int64, req *dto.UpdateLostFoundRequest) (*models.LostFoundItem, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.ValidateEdit(actor, item.OwnerID()); err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.Latitude != nil {
		item.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		item.Longitude = req.Longitude
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.publisher.Publish(notifications.EventLostFoundUpdate, item)
	return item, nil
}

// Delete removes an item report; reporter or admin only
func (s *lostFoundService) Delete(ctx context.Context, actor models.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.ValidateDelete(actor, item.OwnerID()); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(notifications.EventLostFoundUpdate, &notifications.Deleted{ResourceID: id})
	return nil
}

// Claim moves an open item to claimed by the caller
func (s *lostFoundService) Claim(ctx context.Context, actor models.Actor, id int64) (*models.LostFoundItem, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := workflow.ClaimItem(item, actor); err != nil {
		return nil, err
	}

	// The status-guarded write is authoritative for racing claims.
	if err := s.itemRepo.Claim(ctx, id, actor.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("itemID", id).Int64("claimedBy", actor.ID).Msg("Item claimed")
	s.publisher.Publish(notifications.EventLostFoundClaimed, item)
	return item, nil
}

// Resolve moves a claimed item to resolved; reporter, claimant or staff
func (s *lostFoundService) Resolve(ctx context.Context, actor models.Actor, id int64) (*models.LostFoundItem, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	involved := actor.ID == item.ReportedBy ||
		(item.ClaimedBy != nil && actor.ID == *item.ClaimedBy)
	if !involved && !s.authz.CanModerateLostFound(actor) {
		return nil, apperrors.NewForbiddenError("only the reporter, the claimant or staff may resolve an item")
	}

	if err := workflow.ResolveItem(item, actor); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Resolve(ctx, id, actor.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("itemID", id).Int64("resolvedBy", actor.ID).Msg("Item resolved")
	s.publisher.Publish(notifications.EventLostFoundResolved, item)
	return item, nil
}

// Match links a lost report and a found report; staff only
func (s *lostFoundService) Match(ctx context.Context, actor models.Actor, id, matchedItemID int64) (*models.LostFoundItem, error) {
	if !s.authz.CanModerateLostFound(actor) {
		return nil, apperrors.NewForbiddenError("matching items requires faculty or admin role")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	other, err := s.itemRepo.GetByID(ctx, matchedItemID)
	if err != nil {
		return nil, err
	}

	if err := workflow.MatchItems(item, other); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Match(ctx, id, matchedItemID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("itemID", id).Int64("matchedWith", matchedItemID).Msg("Items matched")
	s.publisher.Publish(notifications.EventLostFoundUpdate, item)
	s.publisher.Publish(notifications.EventLostFoundUpdate, other)
	return item, nil
}
