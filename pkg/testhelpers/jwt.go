// Package testhelpers provides utilities for testing wikibhasha-engine components.
package testhelpers

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/auth"
	"github.com/wikibhasha/wikibhasha-engine/pkg/config"
)

// TestJWTSecret signs tokens in tests. Never use outside tests.
const TestJWTSecret = "test-secret"

// TestAuthConfig returns an auth config wired to the test secret.
func TestAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       TestJWTSecret,
		Issuer:          "wikibhasha-engine",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

// GenerateTestJWT creates a signed access token for the given user.
// Use with handlers wired to an auth service built from TestAuthConfig.
func GenerateTestJWT(userID int64, isSuperuser bool, roles ...string) string {
	now := time.Now()
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    "wikibhasha-engine",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		TokenType:   auth.TokenTypeAccess,
		IsSuperuser: isSuperuser,
		Roles:       roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// GenerateTestJWTWithBearer returns the token with "Bearer " prefix for
// Authorization headers.
func GenerateTestJWTWithBearer(userID int64, isSuperuser bool, roles ...string) string {
	return "Bearer " + GenerateTestJWT(userID, isSuperuser, roles...)
}

// NopLogger is shorthand for the logger used across unit tests.
func NopLogger() *zap.Logger {
	return zap.NewNop()
}
