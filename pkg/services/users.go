package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/repositories"
)

// UserSummary is one entry in the user listing. CanCreateProjects lets
// the UI disable the create button for annotators.
type UserSummary struct {
	UserID            int64  `json:"user_id"`
	Name              string `json:"name"`
	CanCreateProjects bool   `json:"can_create_projects"`
}

// UserListing is the full user directory plus the calling user's id.
type UserListing struct {
	CurrentUser int64         `json:"current_user"`
	Users       []UserSummary `json:"users"`
}

// UserService defines the interface for user directory operations.
type UserService interface {
	// List returns all users. Any authenticated principal may call it.
	List(ctx context.Context, principal *models.Principal) (*UserListing, error)
}

// userService implements UserService.
type userService struct {
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service with dependencies.
func NewUserService(userRepo repositories.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List returns every user with their project-creation capability.
func (s *userService) List(ctx context.Context, principal *models.Principal) (*UserListing, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	listing := &UserListing{
		CurrentUser: principal.UserID,
		Users:       make([]UserSummary, 0, len(users)),
	}
	for _, user := range users {
		listing.Users = append(listing.Users, UserSummary{
			UserID:            user.ID,
			Name:              user.Username,
			CanCreateProjects: user.Principal().CanCreateProjects(),
		})
	}

	return listing, nil
}

// Ensure userService implements UserService at compile time.
var _ UserService = (*userService)(nil)
