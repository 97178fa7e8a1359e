package policy

import (
	"testing"

	"careclock-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestShiftGatesAreCareworkerOnly(t *testing.T) {
	assert.True(t, CanStartShift(models.RoleCareworker).Allowed)
	assert.False(t, CanStartShift(models.RoleManager).Allowed)
	assert.Equal(t, "Only careworkers can create shifts", CanStartShift(models.RoleManager).Reason)

	assert.True(t, CanEndShift(models.RoleCareworker).Allowed)
	assert.False(t, CanEndShift(models.RoleManager).Allowed)
}

func TestNoteEditRequiresOwnership(t *testing.T) {
	d := CanEditShiftNote(models.RoleCareworker, "u1", "u1")
	assert.True(t, d.Allowed)

	d = CanEditShiftNote(models.RoleCareworker, "u2", "u1")
	assert.False(t, d.Allowed)
	assert.Equal(t, "You can only update your own shifts", d.Reason)

	d = CanEditShiftNote(models.RoleManager, "u1", "u1")
	assert.False(t, d.Allowed)
}

func TestAggregateViewsAreManagerOnly(t *testing.T) {
	assert.True(t, CanViewAllShifts(models.RoleManager).Allowed)
	assert.False(t, CanViewAllShifts(models.RoleCareworker).Allowed)

	assert.True(t, CanViewAllUsers(models.RoleManager).Allowed)
	assert.False(t, CanViewAllUsers(models.RoleCareworker).Allowed)
}

func TestLocationModifyIsCreatorOrManager(t *testing.T) {
	assert.True(t, CanModifyLocation(models.RoleCareworker, "creator", "creator").Allowed)
	assert.True(t, CanModifyLocation(models.RoleManager, "someone-else", "creator").Allowed)

	d := CanModifyLocation(models.RoleCareworker, "someone-else", "creator")
	assert.False(t, d.Allowed)
	assert.Equal(t, "Permission denied", d.Reason)
}

func TestRoleChangeIsSelfService(t *testing.T) {
	assert.True(t, CanChangeOwnRole(models.RoleCareworker).Allowed)
	assert.True(t, CanChangeOwnRole(models.RoleManager).Allowed)
}
