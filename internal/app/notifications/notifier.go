// Package notifications fans state changes out to connected websocket
// clients and, for the approval flow, to email. Delivery is best effort:
// a failed sink is logged and never surfaces to the request that caused
// the change.
package notifications

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/email"
	"github.com/campushub/campushub/internal/pkg/websocket"
)

// Event names pushed over the feed.
const (
	EventNewEvent          = "new-event"
	EventEventUpdated      = "event-updated"
	EventEventApproved     = "event-approved"
	EventEventRejected     = "event-rejected"
	EventEventRegistration = "event-registration"

	EventNewClub          = "new-club"
	EventClubUpdated      = "club-updated"
	EventClubApproved     = "club-approved"
	EventClubRejected     = "club-rejected"
	EventClubMemberJoined = "club-member-joined"
	EventClubMemberLeft   = "club-member-left"

	EventNewFeedback      = "new-feedback"
	EventFeedbackResponse = "feedback-response"
	EventFeedbackUpdated  = "feedback-updated"

	EventLostFoundUpdate   = "lost-found-update"
	EventLostFoundClaimed  = "lost-found-claimed"
	EventLostFoundResolved = "lost-found-resolved"

	EventNewAnnouncement     = "new-announcement"
	EventAnnouncementUpdated = "announcement-updated"
	EventAnnouncementDeleted = "announcement-deleted"
)

// Publisher is what services publish through. Implementations must not
// block the caller and must swallow delivery failures.
type Publisher interface {
	Publish(event string, payload interface{})
}

// Deleted is the payload for deletion events.
type Deleted struct {
	ResourceID int64 `json:"resourceId"`
}

// Owned is implemented by resources that belong to a user; the notifier
// uses it to resolve outcome-email recipients.
type Owned interface {
	OwnerID() int64
}

// RecipientDirectory resolves email addresses for notification recipients.
type RecipientDirectory interface {
	EmailByUserID(ctx context.Context, userID int64) (string, error)
	EmailsByRoles(ctx context.Context, roles ...models.Role) ([]string, error)
}

const mailTimeout = 10 * time.Second

// Notifier pushes every published event to the websocket hub and routes
// the approval-flow events to email.
type Notifier struct {
	hub       *websocket.Hub
	mailer    email.EmailService
	directory RecipientDirectory
	logger    zerolog.Logger
}

// NewNotifier creates a Notifier over the given sinks.
func NewNotifier(hub *websocket.Hub, mailer email.EmailService, directory RecipientDirectory, logger zerolog.Logger) *Notifier {
	return &Notifier{
		hub:       hub,
		mailer:    mailer,
		directory: directory,
		logger:    logger,
	}
}

// Publish implements Publisher. The hub enqueue is non-blocking; email
// runs on a detached goroutine so SMTP latency never holds a request.
func (n *Notifier) Publish(event string, payload interface{}) {
	n.hub.Broadcast(&websocket.Event{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now(),
	})

	go n.sendEmails(event, payload)
}

func (n *Notifier) sendEmails(event string, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error().Interface("panic", r).Str("event", event).Msg("Recovered from email fan-out panic")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	switch event {
	case EventNewEvent:
		// A pending event needs staff attention; auto-approved ones do not.
		e, ok := payload.(*models.Event)
		if !ok || e.IsApproved {
			return
		}
		n.mailStaff(ctx, event, "event", e.Title)

	case EventNewClub:
		c, ok := payload.(*models.Club)
		if !ok || c.IsApproved {
			return
		}
		n.mailStaff(ctx, event, "club", c.Name)

	case EventEventApproved, EventClubApproved:
		n.mailOwner(ctx, event, payload, true)

	case EventEventRejected, EventClubRejected:
		n.mailOwner(ctx, event, payload, false)

	case EventEventRegistration:
		e, ok := payload.(*models.Event)
		if !ok {
			return
		}
		addr, err := n.directory.EmailByUserID(ctx, e.OrganizerID)
		if err != nil {
			n.logger.Error().Err(err).Str("event", event).Msg("Failed to resolve organizer email")
			return
		}
		if err := n.mailer.SendRegistrationNotice(addr, e.Title); err != nil {
			n.logger.Error().Err(err).Str("event", event).Msg("Failed to send registration notice")
		}
	}
}

func (n *Notifier) mailStaff(ctx context.Context, event, resourceType, title string) {
	addrs, err := n.directory.EmailsByRoles(ctx, models.RoleAdmin, models.RoleFaculty)
	if err != nil {
		n.logger.Error().Err(err).Str("event", event).Msg("Failed to resolve staff emails")
		return
	}
	for _, addr := range addrs {
		if err := n.mailer.SendApprovalRequest(addr, resourceType, title); err != nil {
			n.logger.Error().Err(err).Str("event", event).Str("toEmail", addr).Msg("Failed to send approval request")
		}
	}
}

func (n *Notifier) mailOwner(ctx context.Context, event string, payload interface{}, approved bool) {
	owned, ok := payload.(Owned)
	if !ok {
		return
	}
	addr, err := n.directory.EmailByUserID(ctx, owned.OwnerID())
	if err != nil {
		n.logger.Error().Err(err).Str("event", event).Msg("Failed to resolve owner email")
		return
	}

	resourceType := "event"
	title := ""
	switch v := payload.(type) {
	case *models.Event:
		title = v.Title
	case *models.Club:
		resourceType = "club"
		title = v.Name
	}
	if err := n.mailer.SendApprovalOutcome(addr, resourceType, title, approved); err != nil {
		n.logger.Error().Err(err).Str("event", event).Msg("Failed to send outcome email")
	}
}
