package workflow

import (
	"time"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// ApplyResponse records the effect of a staff response on the feedback
// state machine: the first response moves open feedback to in-progress and
// assigns it to the responder. Students cannot respond; the submitter
// answering their own feedback is not a supported transition.
func ApplyResponse(f *models.Feedback, responder models.Actor, text string, now time.Time) (models.FeedbackResponse, error) {
	if responder.Role == models.RoleStudent {
		return models.FeedbackResponse{}, apperrors.ErrPermissionDenied
	}
	if f.Status == models.FeedbackOpen {
		f.Status = models.FeedbackInProgress
		if f.AssignedTo == nil {
			f.AssignedTo = &responder.ID
		}
	}
	resp := models.FeedbackResponse{
		FeedbackID:  f.ID,
		Text:        text,
		RespondedBy: responder.ID,
		RespondedAt: now,
	}
	f.Responses = append(f.Responses, resp)
	return resp, nil
}

// SetFeedbackStatus applies a direct status write by staff. Beyond the
// implicit open→in-progress edge this machine is intentionally loose:
// resolve, close and even reopen are plain field updates, so staff can
// recover abandoned threads.
func SetFeedbackStatus(f *models.Feedback, status models.FeedbackStatus) error {
	if !status.Valid() {
		return apperrors.ErrValidationFailed
	}
	f.Status = status
	return nil
}
