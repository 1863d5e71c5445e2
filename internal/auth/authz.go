package auth

import "github.com/udhekryqi/udhekryqi-backend/internal/models"

// IsAdmin reports whether the role grants admin capability.
func IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// IsSelfOrAdmin reports whether a subject may act on the target user: either
// it is the same user, or the subject is an admin. Pure predicate, no store
// lookup.
func IsSelfOrAdmin(subjectID, targetUserID, role string) bool {
	return subjectID == targetUserID || IsAdmin(role)
}
