package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

func TestApplyResponse_FirstResponseAssigns(t *testing.T) {
	faculty := models.Actor{ID: 11, Role: models.RoleFaculty}
	now := time.Now()

	f := &models.Feedback{ID: 5, Status: models.FeedbackOpen, CreatedBy: 3}
	resp, err := ApplyResponse(f, faculty, "Looking into it", now)
	require.NoError(t, err)

	assert.Equal(t, models.FeedbackInProgress, f.Status)
	require.NotNil(t, f.AssignedTo)
	assert.Equal(t, faculty.ID, *f.AssignedTo)
	assert.Equal(t, "Looking into it", resp.Text)
	assert.Equal(t, faculty.ID, resp.RespondedBy)
}

func TestApplyResponse_SecondResponseKeepsAssignee(t *testing.T) {
	first := models.Actor{ID: 11, Role: models.RoleFaculty}
	second := models.Actor{ID: 12, Role: models.RoleAdmin}

	f := &models.Feedback{ID: 5, Status: models.FeedbackOpen}
	_, err := ApplyResponse(f, first, "on it", time.Now())
	require.NoError(t, err)
	_, err = ApplyResponse(f, second, "also looking", time.Now())
	require.NoError(t, err)

	assert.Equal(t, first.ID, *f.AssignedTo)
	assert.Len(t, f.Responses, 2)
}

func TestApplyResponse_StudentForbidden(t *testing.T) {
	student := models.Actor{ID: 3, Role: models.RoleStudent}

	f := &models.Feedback{ID: 5, Status: models.FeedbackOpen, CreatedBy: 3}
	_, err := ApplyResponse(f, student, "answering myself", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, models.FeedbackOpen, f.Status)
}

func TestSetFeedbackStatus(t *testing.T) {
	f := &models.Feedback{Status: models.FeedbackInProgress}
	require.NoError(t, SetFeedbackStatus(f, models.FeedbackResolved))
	assert.Equal(t, models.FeedbackResolved, f.Status)

	// the machine is intentionally loose: staff may reopen resolved feedback
	require.NoError(t, SetFeedbackStatus(f, models.FeedbackOpen))
	assert.Equal(t, models.FeedbackOpen, f.Status)

	assert.ErrorIs(t, SetFeedbackStatus(f, "escalated"), apperrors.ErrValidationFailed)
}
