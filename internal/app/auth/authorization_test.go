package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

func TestCanEdit(t *testing.T) {
	svc := NewAuthorizationService()

	owner := models.Actor{ID: 5, Role: models.RoleStudent}
	other := models.Actor{ID: 6, Role: models.RoleFaculty}
	admin := models.Actor{ID: 7, Role: models.RoleAdmin}
	anon := models.Actor{}

	assert.True(t, svc.CanEdit(owner, 5))
	assert.False(t, svc.CanEdit(other, 5), "faculty does not override ownership")
	assert.True(t, svc.CanEdit(admin, 5))
	assert.False(t, svc.CanEdit(anon, 0), "anonymous never matches an owner")
}

func TestCanApprove(t *testing.T) {
	svc := NewAuthorizationService()

	assert.False(t, svc.CanApprove(models.Actor{ID: 1, Role: models.RoleStudent}))
	assert.True(t, svc.CanApprove(models.Actor{ID: 2, Role: models.RoleFaculty}))
	assert.True(t, svc.CanApprove(models.Actor{ID: 3, Role: models.RoleAdmin}))
}

func TestCanManageMembers(t *testing.T) {
	svc := NewAuthorizationService()
	president := int64(9)

	assert.True(t, svc.CanManageMembers(models.Actor{ID: 4, Role: models.RoleFaculty}, 4, nil), "advisor")
	assert.True(t, svc.CanManageMembers(models.Actor{ID: 9, Role: models.RoleStudent}, 4, &president), "president")
	assert.True(t, svc.CanManageMembers(models.Actor{ID: 1, Role: models.RoleAdmin}, 4, nil), "admin")
	assert.False(t, svc.CanManageMembers(models.Actor{ID: 8, Role: models.RoleStudent}, 4, &president))
	assert.False(t, svc.CanManageMembers(models.Actor{}, 4, nil))
}

func TestValidateEdit(t *testing.T) {
	svc := NewAuthorizationService()

	assert.NoError(t, svc.ValidateEdit(models.Actor{ID: 5, Role: models.RoleStudent}, 5))

	err := svc.ValidateEdit(models.Actor{ID: 6, Role: models.RoleStudent}, 5)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestValidateApprover(t *testing.T) {
	svc := NewAuthorizationService()

	err := svc.ValidateApprover(models.Actor{ID: 1, Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.NoError(t, svc.ValidateApprover(models.Actor{ID: 2, Role: models.RoleAdmin}))
}
