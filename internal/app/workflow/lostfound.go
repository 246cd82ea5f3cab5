package workflow

import (
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// ClaimItem moves an open item to claimed. Claiming your own report is
// never valid, regardless of the item's current status.
func ClaimItem(item *models.LostFoundItem, claimant models.Actor) error {
	if item.ReportedBy == claimant.ID {
		return apperrors.NewInvalidTransitionError("cannot claim your own item")
	}
	if item.Status != models.LostFoundOpen {
		return apperrors.ErrInvalidTransition
	}
	item.Status = models.LostFoundClaimed
	item.ClaimedBy = &claimant.ID
	return nil
}

// ResolveItem moves a claimed item to resolved.
func ResolveItem(item *models.LostFoundItem, resolver models.Actor) error {
	if item.Status != models.LostFoundClaimed {
		return apperrors.ErrInvalidTransition
	}
	item.Status = models.LostFoundResolved
	item.ResolvedBy = &resolver.ID
	return nil
}

// ExpireItem moves an open item to expired. Driven by the retention
// sweeper, never by a client request.
func ExpireItem(item *models.LostFoundItem) error {
	if item.Status != models.LostFoundOpen {
		return apperrors.ErrInvalidTransition
	}
	item.Status = models.LostFoundExpired
	return nil
}

// MatchItems pairs a lost report with a found report. Both items must be
// open and of opposite categories; the link is symmetric.
func MatchItems(a, b *models.LostFoundItem) error {
	if a.ID == b.ID {
		return apperrors.NewInvalidTransitionError("cannot match an item with itself")
	}
	if a.Status != models.LostFoundOpen || b.Status != models.LostFoundOpen {
		return apperrors.ErrInvalidTransition
	}
	if a.Category == b.Category {
		return apperrors.NewInvalidTransitionError("matched items must pair a lost report with a found report")
	}
	a.Status = models.LostFoundMatched
	b.Status = models.LostFoundMatched
	a.MatchedWith = &b.ID
	b.MatchedWith = &a.ID
	return nil
}
