package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan_RoleMatrix(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleAdmin, PermDeleteProject, true},
		{RoleAdmin, PermManageUsers, true},
		{RoleAdmin, PermCreateProject, false},
		{RolePM, PermCreateProject, true},
		{RolePM, PermDeleteProject, false},
		{RolePM, PermCreateActivity, true},
		{RoleDPD, PermAssignSubsystem, true},
		{RoleDPD, PermCreateActivity, false},
		{RoleDPD, PermUpdateOwnProgress, false},
		{RoleEngineer, PermAssignSubsystem, false},
		{RoleEngineer, PermCreateActivity, true},
		{RoleEngineer, PermManageUsers, false},
		{Role("GUEST"), PermReadAll, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.perm))
		})
	}
}

func TestCheckPermission_WrapsForbidden(t *testing.T) {
	err := CheckPermission(RoleEngineer, PermDeleteActivity)
	assert.True(t, errors.Is(err, ErrForbidden))

	var denied *PermissionDeniedError
	assert.True(t, errors.As(err, &denied))
	assert.Equal(t, RoleEngineer, denied.Role)

	assert.NoError(t, CheckPermission(RoleAdmin, PermDeleteActivity))
}

func TestEveryRoleCanRead(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, Can(r, PermReadAll), r)
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" pm ")
	assert.True(t, ok)
	assert.Equal(t, RolePM, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}
