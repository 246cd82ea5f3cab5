package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

func TestApproveEvent(t *testing.T) {
	admin := models.Actor{ID: 7, Role: models.RoleAdmin}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	e := &models.Event{ID: 1, OrganizerID: 3}
	require.NoError(t, ApproveEvent(e, admin, now))
	assert.True(t, e.IsApproved)
	assert.True(t, e.IsActive)
	require.NotNil(t, e.ApprovedBy)
	assert.Equal(t, admin.ID, *e.ApprovedBy)
	require.NotNil(t, e.ApprovedAt)
	assert.Equal(t, now, *e.ApprovedAt)
}

func TestApproveEvent_Twice(t *testing.T) {
	admin := models.Actor{ID: 7, Role: models.RoleAdmin}
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	e := &models.Event{ID: 1, OrganizerID: 3}
	require.NoError(t, ApproveEvent(e, admin, first))

	err := ApproveEvent(e, admin, later)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)
	// approval timestamp must not move on the failed second call
	assert.Equal(t, first, *e.ApprovedAt)
}

func TestRejectEvent_AfterApproval(t *testing.T) {
	admin := models.Actor{ID: 7, Role: models.RoleAdmin}
	e := &models.Event{ID: 1}
	require.NoError(t, ApproveEvent(e, admin, time.Now()))

	assert.ErrorIs(t, RejectEvent(e), apperrors.ErrAlreadyApproved)
}

func TestApproveClub_Twice(t *testing.T) {
	admin := models.Actor{ID: 9, Role: models.RoleAdmin}
	first := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	c := &models.Club{ID: 4, Name: "Robotics", AdvisorID: 2}
	require.NoError(t, ApproveClub(c, admin, first))
	assert.True(t, c.IsApproved)

	err := ApproveClub(c, admin, first.Add(time.Minute))
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApproved)
	assert.Equal(t, first, *c.ApprovedAt)
}

func TestAutoApproveSets(t *testing.T) {
	// events auto-approve for faculty and admin, clubs only for admin
	assert.True(t, EventAutoApproved(models.RoleAdmin))
	assert.True(t, EventAutoApproved(models.RoleFaculty))
	assert.False(t, EventAutoApproved(models.RoleStudent))

	assert.True(t, ClubAutoApproved(models.RoleAdmin))
	assert.False(t, ClubAutoApproved(models.RoleFaculty))
	assert.False(t, ClubAutoApproved(models.RoleStudent))
}
