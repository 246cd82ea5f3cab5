// Package auth evaluates role capabilities over an already-authenticated
// actor. The rules are pure functions of the actor and the resource owner,
// so services call them with data they already loaded; nothing here touches
// the store.
package auth

import (
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// AuthorizationService handles capability checks
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// CanEdit reports whether the actor may modify a resource owned by ownerID.
// Owners edit their own resources; admins edit anything.
func (s *AuthorizationService) CanEdit(actor models.Actor, ownerID int64) bool {
	if actor.Anonymous() {
		return false
	}
	return actor.ID == ownerID || actor.Role == models.RoleAdmin
}

// CanDelete mirrors CanEdit; deletion carries the same ownership rule.
func (s *AuthorizationService) CanDelete(actor models.Actor, ownerID int64) bool {
	return s.CanEdit(actor, ownerID)
}

// CanApprove reports whether the actor may approve or reject pending
// events and clubs.
func (s *AuthorizationService) CanApprove(actor models.Actor) bool {
	return actor.Role.IsStaff()
}

// CanRespondToFeedback reports whether the actor may post responses on
// feedback threads.
func (s *AuthorizationService) CanRespondToFeedback(actor models.Actor) bool {
	return actor.Role.IsStaff()
}

// CanModerateLostFound reports whether the actor may match items or
// override item state beyond the reporter's own actions.
func (s *AuthorizationService) CanModerateLostFound(actor models.Actor) bool {
	return actor.Role.IsStaff()
}

// CanPostAnnouncement reports whether the actor may create announcements.
func (s *AuthorizationService) CanPostAnnouncement(actor models.Actor) bool {
	return actor.Role.IsStaff()
}

// CanManageMembers reports whether the actor may change club member roles.
// The club advisor, the club president and admins qualify.
func (s *AuthorizationService) CanManageMembers(actor models.Actor, advisorID int64, presidentID *int64) bool {
	if actor.Anonymous() {
		return false
	}
	if actor.Role == models.RoleAdmin || actor.ID == advisorID {
		return true
	}
	return presidentID != nil && actor.ID == *presidentID
}

// ValidateEdit returns a forbidden error unless the actor may edit.
func (s *AuthorizationService) ValidateEdit(actor models.Actor, ownerID int64) error {
	if !s.CanEdit(actor, ownerID) {
		return apperrors.NewForbiddenError("you do not own this resource")
	}
	return nil
}

// ValidateDelete returns a forbidden error unless the actor may delete.
func (s *AuthorizationService) ValidateDelete(actor models.Actor, ownerID int64) error {
	if !s.CanDelete(actor, ownerID) {
		return apperrors.NewForbiddenError("you do not own this resource")
	}
	return nil
}

// ValidateApprover returns a forbidden error unless the actor may approve.
func (s *AuthorizationService) ValidateApprover(actor models.Actor) error {
	if !s.CanApprove(actor) {
		return apperrors.NewForbiddenError("approval requires faculty or admin role")
	}
	return nil
}

// ValidateMemberManager returns a forbidden error unless the actor may
// manage club member roles.
func (s *AuthorizationService) ValidateMemberManager(actor models.Actor, advisorID int64, presidentID *int64) error {
	if !s.CanManageMembers(actor, advisorID, presidentID) {
		return apperrors.NewForbiddenError("member management requires the advisor, president or an admin")
	}
	return nil
}
