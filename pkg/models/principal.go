// Package models contains domain types for wikibhasha-engine.
package models

// Role is a closed set of role names a user can hold.
type Role string

const (
	RoleManager   Role = "manager"
	RoleAnnotator Role = "annotator"
)

// ValidRoles contains all valid role values.
var ValidRoles = []Role{RoleManager, RoleAnnotator}

// ParseRole converts a stored role name into a Role.
// Unknown names return false so stale rows never grant access.
func ParseRole(s string) (Role, bool) {
	for _, r := range ValidRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Principal is the authenticated identity attached to a request.
// It is derived from token claims per request and never persisted.
type Principal struct {
	UserID      int64
	IsSuperuser bool
	Roles       []Role
}

// HasRole reports whether the principal holds the given role.
func (p *Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanCreateProjects reports whether the principal may create projects.
func (p *Principal) CanCreateProjects() bool {
	return p.IsSuperuser || p.HasRole(RoleManager)
}
