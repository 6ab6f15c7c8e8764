package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/repositories"
	"github.com/wikibhasha/wikibhasha-engine/pkg/wiki"
)

// CreateProjectInput carries the fields a caller supplies when creating a
// project. Everything else (id, timestamps, owner) is derived.
type CreateProjectInput struct {
	ArticleTitle   string
	TargetLanguage string
	AssignedTo     *int64
}

// ProjectPatch is a partial project update. AssignedTo is only applied
// when SetAssignedTo is true, so an explicit null can unassign.
type ProjectPatch struct {
	AssignedTo    *int64
	SetAssignedTo bool
}

// ProjectService defines the interface for project operations.
// Every operation takes the principal explicitly; nothing about the
// caller is read from process-wide state.
type ProjectService interface {
	// List returns the projects visible to the principal.
	List(ctx context.Context, principal *models.Principal) ([]*models.Project, error)

	// Create validates the input, derives the project id, fetches the
	// article summary and persists the project with its sentence batch.
	Create(ctx context.Context, input CreateProjectInput, principal *models.Principal) (*models.Project, error)

	// Get returns one visible project, or ErrNotFound for absent and
	// out-of-scope ids alike.
	Get(ctx context.Context, projectID string, principal *models.Principal) (*models.Project, error)

	// Update applies a partial update to a visible project.
	Update(ctx context.Context, projectID string, patch ProjectPatch, principal *models.Principal) (*models.Project, error)
}

// projectService implements ProjectService.
type projectService struct {
	projectRepo repositories.ProjectRepository
	source      wiki.SummarySource
	logger      *zap.Logger
	now         func() time.Time
}

// NewProjectService creates a new project service with dependencies.
func NewProjectService(projectRepo repositories.ProjectRepository, source wiki.SummarySource, logger *zap.Logger) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		source:      source,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns the projects within the principal's scope.
func (s *projectService) List(ctx context.Context, principal *models.Principal) ([]*models.Project, error) {
	filter, err := ProjectScope(principal)
	if err != nil {
		return nil, err
	}
	return s.projectRepo.List(ctx, filter)
}

// Create builds and persists a new project together with its sentences.
// The summary is fetched before the transaction opens, so a source
// failure leaves no partial state behind.
func (s *projectService) Create(ctx context.Context, input CreateProjectInput, principal *models.Principal) (*models.Project, error) {
	if !CanCreateProject(principal) {
		return nil, apperrors.ErrForbidden
	}

	if err := models.ValidateNewProject(input.ArticleTitle, input.TargetLanguage); err != nil {
		return nil, err
	}

	language := strings.ToLower(input.TargetLanguage)
	project := &models.Project{
		ProjectID:      models.DeriveProjectID(input.ArticleTitle, language),
		ArticleTitle:   input.ArticleTitle,
		TargetLanguage: language,
		CreatedOn:      s.now(),
		CreatedBy:      principal.UserID,
		AssignedTo:     input.AssignedTo,
	}

	sentences, err := s.source.FetchSentences(ctx, project.ArticleTitle)
	if err != nil {
		s.logger.Warn("Summary fetch failed",
			zap.String("project_id", project.ProjectID),
			zap.String("article_title", project.ArticleTitle),
			zap.Error(err))
		return nil, err
	}

	if err := s.projectRepo.CreateWithSentences(ctx, project, sentences); err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ProjectID),
		zap.Int64("created_by", project.CreatedBy),
		zap.Int("sentences", len(sentences)))

	return project, nil
}

// Get returns a project visible to the principal.
func (s *projectService) Get(ctx context.Context, projectID string, principal *models.Principal) (*models.Project, error) {
	filter, err := ProjectScope(principal)
	if err != nil {
		return nil, err
	}
	return s.projectRepo.Get(ctx, projectID, filter)
}

// Update applies the patch within the principal's scope.
func (s *projectService) Update(ctx context.Context, projectID string, patch ProjectPatch, principal *models.Principal) (*models.Project, error) {
	filter, err := ProjectScope(principal)
	if err != nil {
		return nil, err
	}

	if !patch.SetAssignedTo {
		// Nothing to change; behave like a read.
		return s.projectRepo.Get(ctx, projectID, filter)
	}

	return s.projectRepo.UpdateAssignedTo(ctx, projectID, patch.AssignedTo, filter)
}

// Ensure projectService implements ProjectService at compile time.
var _ ProjectService = (*projectService)(nil)
