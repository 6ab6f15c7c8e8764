// Package auth provides JWT-based authentication for wikibhasha-engine.
// The engine is its own token issuer: it authenticates stored credentials
// and signs access/refresh tokens with an HS256 secret.
package auth

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
)

// Token type values carried in the typ claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims represents the JWT claims structure issued by this service.
// It embeds RegisteredClaims for standard JWT fields (sub, iss, exp, etc.)
// and adds the role information the access engine needs.
type Claims struct {
	jwt.RegisteredClaims
	TokenType   string   `json:"typ"`
	IsSuperuser bool     `json:"su,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

// Principal converts verified claims into the request-scoped principal.
// Unknown role names are dropped rather than rejected so tokens issued
// before a role was retired keep working for their remaining roles.
func (c *Claims) Principal() (*models.Principal, error) {
	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject in token: %w", err)
	}

	p := &models.Principal{
		UserID:      userID,
		IsSuperuser: c.IsSuperuser,
	}
	for _, name := range c.Roles {
		if role, ok := models.ParseRole(name); ok {
			p.Roles = append(p.Roles, role)
		}
	}
	return p, nil
}
