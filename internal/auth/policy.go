package auth

import "github.com/neupane-rajan/airline-reservation/internal/domain"

// CanAccess is the single ownership check used by every booking and
// passenger operation: staff and admins may act on any resource, a
// passenger only on resources they own. It runs before any mutation.
func CanAccess(role domain.UserRole, subjectID, ownerID int64) bool {
	if role == domain.RoleAdmin || role == domain.RoleStaff {
		return true
	}
	return subjectID == ownerID
}

// IsStaff reports whether the role carries staff-level rights.
func IsStaff(role domain.UserRole) bool {
	return role == domain.RoleStaff || role == domain.RoleAdmin
}

func IsAdmin(role domain.UserRole) bool {
	return role == domain.RoleAdmin
}
