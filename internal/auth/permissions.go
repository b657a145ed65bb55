package auth

import "github.com/kunalaswar/HireFlow/internal/models"

// Operation names every permission-gated action in the system. Handlers ask
// Allowed(role, op) instead of comparing role strings inline, so the whole
// authorization surface lives in this table.
type Operation string

const (
	OpJobCreate   Operation = "jobs:create"
	OpJobRead     Operation = "jobs:read"
	OpJobUpdate   Operation = "jobs:update"
	OpJobDelete   Operation = "jobs:delete"
	OpAppRead     Operation = "applications:read"
	OpAppStatus   Operation = "applications:status"
	OpAppResume   Operation = "applications:resume"
	OpAdminView   Operation = "admin:view"
	OpHRManage    Operation = "admin:hr_manage"
	OpInviteSend  Operation = "admin:invite"
	OpUserProfile Operation = "users:profile"
)

var permissions = map[models.UserRole]map[Operation]bool{
	models.UserRoleHR: {
		OpJobCreate:   true,
		OpJobRead:     true,
		OpJobUpdate:   true,
		OpJobDelete:   true,
		OpAppRead:     true,
		OpAppStatus:   true,
		OpAppResume:   true,
		OpUserProfile: true,
	},
	// Admins read jobs but never edit them; job mutation stays with the
	// owning HR account.
	models.UserRoleAdmin: {
		OpJobRead:     true,
		OpAdminView:   true,
		OpHRManage:    true,
		OpInviteSend:  true,
		OpUserProfile: true,
	},
	models.UserRoleSuperuser: {
		OpJobRead:     true,
		OpAdminView:   true,
		OpHRManage:    true,
		OpInviteSend:  true,
		OpUserProfile: true,
	},
}

// Allowed reports whether the role may perform the operation.
func Allowed(role models.UserRole, op Operation) bool {
	ops, ok := permissions[role]
	if !ok {
		return false
	}
	return ops[op]
}

// IsAdmin reports whether the role carries admin oversight rights.
func IsAdmin(role models.UserRole) bool {
	return role == models.UserRoleAdmin || role == models.UserRoleSuperuser
}
