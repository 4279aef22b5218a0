// Package authz holds the single ownership/role predicate shared by
// every handler that mutates submission-scoped data.
package authz

import (
	"filmfest/models"
	"filmfest/pkg/auth"
)

// CanMutateSubmission reports whether the principal may modify the
// submission or its dependent rows (genre links, crew assignments).
// Admins always may; everyone else must be the creator.
func CanMutateSubmission(claims *auth.Claims, sub *models.Submission) bool {
	if claims == nil || sub == nil {
		return false
	}
	if claims.Role == models.RoleAdmin {
		return true
	}
	return sub.CreatorID.Hex() == claims.Subject
}

// OwnerCanEdit reports whether a non-admin owner is still allowed to
// edit: only while the submission has not been reviewed.
func OwnerCanEdit(claims *auth.Claims, sub *models.Submission) bool {
	if claims != nil && claims.Role == models.RoleAdmin {
		return true
	}
	return sub != nil && sub.Status == models.StatusSubmitted
}
