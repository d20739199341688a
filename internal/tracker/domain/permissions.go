package domain

// Permission names an operation the presentation layer gates by role.
// The reducer never checks these; callers apply them before dispatching.
type Permission string

const (
	PermReadAll Permission = "all:read"

	PermCreateProject   Permission = "project:create"
	PermEditProject     Permission = "project:edit"
	PermDeleteProject   Permission = "project:delete"
	PermAssignSubsystem Permission = "project:assign_subsystem"

	PermCreateSubsystem Permission = "subsystem:create"
	PermEditSubsystem   Permission = "subsystem:edit"
	PermDeleteSubsystem Permission = "subsystem:delete"

	PermCreateActivity Permission = "activity:create"
	PermEditActivity   Permission = "activity:edit"
	PermDeleteActivity Permission = "activity:delete"

	PermUpdateOwnProgress Permission = "progress:update_own"

	PermManageUsers Permission = "user:manage"
)

var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermReadAll,
		PermDeleteProject,
		PermDeleteSubsystem,
		PermEditActivity,
		PermDeleteActivity,
		PermUpdateOwnProgress,
		PermManageUsers,
	},
	RolePM: {
		PermReadAll,
		PermCreateProject,
		PermEditProject,
		PermAssignSubsystem,
		PermCreateSubsystem,
		PermEditSubsystem,
		PermCreateActivity,
		PermEditActivity,
		PermUpdateOwnProgress,
	},
	RoleDPD: {
		PermReadAll,
		PermCreateProject,
		PermEditProject,
		PermAssignSubsystem,
		PermCreateSubsystem,
		PermEditSubsystem,
	},
	RoleEngineer: {
		PermReadAll,
		PermCreateActivity,
		PermEditActivity,
		PermUpdateOwnProgress,
	},
}

// Can reports whether role holds permission.
func Can(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}

// CheckPermission is Can returning ErrForbidden, for handler code paths.
func CheckPermission(role Role, perm Permission) error {
	if !Can(role, perm) {
		return &PermissionDeniedError{Role: role, Permission: perm}
	}
	return nil
}

// PermissionsFor returns a copy of the permissions granted to role.
func PermissionsFor(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// PermissionDeniedError wraps ErrForbidden with the failing check.
type PermissionDeniedError struct {
	Role       Role
	Permission Permission
}

func (e *PermissionDeniedError) Error() string {
	return "insufficient permissions: " + string(e.Role) + " lacks " + string(e.Permission)
}

func (e *PermissionDeniedError) Unwrap() error { return ErrForbidden }
