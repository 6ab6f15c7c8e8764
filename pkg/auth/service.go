package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/config"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/repositories"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Service defines the identity provider surface: credential
// authentication, token issuance and token verification.
type Service interface {
	// Login checks credentials and issues an access/refresh pair.
	// Returns ErrInvalidCredentials on any mismatch.
	Login(ctx context.Context, username, password string) (*TokenPair, error)

	// Refresh verifies a refresh token and issues a fresh access token.
	// The user is reloaded so revoked accounts and changed roles take
	// effect at refresh time.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// ValidateRequest extracts and verifies the access token on a request.
	ValidateRequest(r *http.Request) (*Claims, error)
}

// service implements Service with HS256-signed tokens.
type service struct {
	cfg      *config.AuthConfig
	userRepo repositories.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates an auth service.
func NewService(cfg *config.AuthConfig, userRepo repositories.UserRepository, logger *zap.Logger) Service {
	return &service{
		cfg:      cfg,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the password against the stored bcrypt hash.
func (s *service) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	access, err := s.issueToken(user, TokenTypeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issueToken(user, TokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh verifies the refresh token and mints a new access token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.verifyToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrInvalidToken
		}
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	return s.issueToken(user, TokenTypeAccess, s.cfg.AccessTokenTTL)
}

// ValidateRequest extracts the bearer token and verifies it as an access token.
func (s *service) ValidateRequest(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, apperrors.ErrInvalidToken
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	return s.verifyToken(token, TokenTypeAccess)
}

// issueToken signs a token of the given type for the user.
func (s *service) issueToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType:   tokenType,
		IsSuperuser: user.IsSuperuser,
		Roles:       roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// verifyToken parses and validates a token, enforcing the expected type.
func (s *service) verifyToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}

// Ensure service implements Service at compile time.
var _ Service = (*service)(nil)
