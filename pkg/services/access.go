package services

import (
	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/repositories"
)

// ProjectScope decides which projects a principal may see. Rules are
// checked in priority order; the first matching role wins:
//
//  1. superusers see everything
//  2. Managers see projects they created
//  3. Annotators see projects assigned to them
//  4. everyone else is forbidden
//
// The returned filter is composed with id lookups by the repositories, so
// single-resource reads outside the scope surface as not-found rather
// than leaking existence.
func ProjectScope(principal *models.Principal) (repositories.ProjectFilter, error) {
	switch {
	case principal.IsSuperuser:
		return repositories.ProjectFilter{All: true}, nil
	case principal.HasRole(models.RoleManager):
		id := principal.UserID
		return repositories.ProjectFilter{CreatedBy: &id}, nil
	case principal.HasRole(models.RoleAnnotator):
		id := principal.UserID
		return repositories.ProjectFilter{AssignedTo: &id}, nil
	default:
		return repositories.ProjectFilter{}, apperrors.ErrForbidden
	}
}

// CanCreateProject reports whether the principal may create projects.
// Only superusers and Managers can.
func CanCreateProject(principal *models.Principal) bool {
	return principal.IsSuperuser || principal.HasRole(models.RoleManager)
}
