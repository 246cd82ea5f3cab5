// Package workflow holds the per-resource state machines. Each resource
// type gets its own small transition set rather than a shared generic
// machine: the terminal actions differ (reject deletes an event or club,
// while feedback and lost&found flip state), and the per-type fields
// (claimedBy, assignedTo) have no cross-type analogue.
package workflow

import (
	"time"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// Auto-approve sets per resource type. Admins skip the pending state for
// both; faculty additionally skip it for events.
var (
	eventAutoApprove = map[models.Role]bool{
		models.RoleAdmin:   true,
		models.RoleFaculty: true,
	}
	clubAutoApprove = map[models.Role]bool{
		models.RoleAdmin: true,
	}
)

// EventAutoApproved reports whether an event created by role skips the
// pending state.
func EventAutoApproved(role models.Role) bool {
	return eventAutoApprove[role]
}

// ClubAutoApproved reports whether a club created by role skips the
// pending state.
func ClubAutoApproved(role models.Role) bool {
	return clubAutoApprove[role]
}

// ApproveEvent moves a pending event to the approved terminal state.
// Approval is one-way: approving an already-approved event is a client
// error, not a silent no-op.
func ApproveEvent(e *models.Event, approver models.Actor, now time.Time) error {
	if e.IsApproved {
		return apperrors.ErrAlreadyApproved
	}
	e.IsApproved = true
	e.IsActive = true
	e.ApprovedBy = &approver.ID
	e.ApprovedAt = &now
	return nil
}

// RejectEvent validates that a pending event may be rejected. Rejection
// deletes the record; there is no re-pending path.
func RejectEvent(e *models.Event) error {
	if e.IsApproved {
		return apperrors.ErrAlreadyApproved
	}
	return nil
}

// ApproveClub moves a pending club to the approved terminal state.
func ApproveClub(c *models.Club, approver models.Actor, now time.Time) error {
	if c.IsApproved {
		return apperrors.ErrAlreadyApproved
	}
	c.IsApproved = true
	c.IsActive = true
	c.ApprovedBy = &approver.ID
	c.ApprovedAt = &now
	return nil
}

// RejectClub validates that a pending club may be rejected.
func RejectClub(c *models.Club) error {
	if c.IsApproved {
		return apperrors.ErrAlreadyApproved
	}
	return nil
}
