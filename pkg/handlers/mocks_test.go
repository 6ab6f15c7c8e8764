package handlers

import (
	"context"
	"net/http"

	"github.com/wikibhasha/wikibhasha-engine/pkg/auth"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/services"
	"github.com/wikibhasha/wikibhasha-engine/pkg/testhelpers"
)

// mockProjectService lets each test plug in the behavior it needs.
type mockProjectService struct {
	listFunc   func(ctx context.Context, principal *models.Principal) ([]*models.Project, error)
	createFunc func(ctx context.Context, input services.CreateProjectInput, principal *models.Principal) (*models.Project, error)
	getFunc    func(ctx context.Context, projectID string, principal *models.Principal) (*models.Project, error)
	updateFunc func(ctx context.Context, projectID string, patch services.ProjectPatch, principal *models.Principal) (*models.Project, error)
}

func (m *mockProjectService) List(ctx context.Context, principal *models.Principal) ([]*models.Project, error) {
	return m.listFunc(ctx, principal)
}

func (m *mockProjectService) Create(ctx context.Context, input services.CreateProjectInput, principal *models.Principal) (*models.Project, error) {
	return m.createFunc(ctx, input, principal)
}

func (m *mockProjectService) Get(ctx context.Context, projectID string, principal *models.Principal) (*models.Project, error) {
	return m.getFunc(ctx, projectID, principal)
}

func (m *mockProjectService) Update(ctx context.Context, projectID string, patch services.ProjectPatch, principal *models.Principal) (*models.Project, error) {
	return m.updateFunc(ctx, projectID, patch, principal)
}

// mockSentenceService lets each test plug in the behavior it needs.
type mockSentenceService struct {
	listByProjectFunc func(ctx context.Context, projectID string, principal *models.Principal) ([]*models.Sentence, error)
	createFunc        func(ctx context.Context, projectID, originalSentence string, principal *models.Principal) (*models.Sentence, error)
	getFunc           func(ctx context.Context, sentenceID int64, principal *models.Principal) (*models.Sentence, error)
	updateFunc        func(ctx context.Context, sentenceID int64, patch services.SentencePatch, principal *models.Principal) (*models.Sentence, error)
}

func (m *mockSentenceService) ListByProject(ctx context.Context, projectID string, principal *models.Principal) ([]*models.Sentence, error) {
	return m.listByProjectFunc(ctx, projectID, principal)
}

func (m *mockSentenceService) Create(ctx context.Context, projectID, originalSentence string, principal *models.Principal) (*models.Sentence, error) {
	return m.createFunc(ctx, projectID, originalSentence, principal)
}

func (m *mockSentenceService) Get(ctx context.Context, sentenceID int64, principal *models.Principal) (*models.Sentence, error) {
	return m.getFunc(ctx, sentenceID, principal)
}

func (m *mockSentenceService) Update(ctx context.Context, sentenceID int64, patch services.SentencePatch, principal *models.Principal) (*models.Sentence, error) {
	return m.updateFunc(ctx, sentenceID, patch, principal)
}

// mockUserService lets each test plug in the behavior it needs.
type mockUserService struct {
	listFunc func(ctx context.Context, principal *models.Principal) (*services.UserListing, error)
}

func (m *mockUserService) List(ctx context.Context, principal *models.Principal) (*services.UserListing, error) {
	return m.listFunc(ctx, principal)
}

var (
	_ services.ProjectService  = (*mockProjectService)(nil)
	_ services.SentenceService = (*mockSentenceService)(nil)
	_ services.UserService     = (*mockUserService)(nil)
)

// testMiddleware builds a real auth middleware that verifies tokens
// signed with the test secret. Token verification never touches the
// user repository, so nil is safe here.
func testMiddleware() *auth.Middleware {
	svc := auth.NewService(testhelpers.TestAuthConfig(), nil, testhelpers.NopLogger())
	return auth.NewMiddleware(svc, testhelpers.NopLogger())
}

// newProjectsMux wires a ProjectsHandler behind the auth middleware.
func newProjectsMux(svc services.ProjectService) *http.ServeMux {
	mux := http.NewServeMux()
	NewProjectsHandler(svc, testhelpers.NopLogger()).RegisterRoutes(mux, testMiddleware())
	return mux
}

// newSentencesMux wires a SentencesHandler behind the auth middleware.
func newSentencesMux(svc services.SentenceService) *http.ServeMux {
	mux := http.NewServeMux()
	NewSentencesHandler(svc, testhelpers.NopLogger()).RegisterRoutes(mux, testMiddleware())
	return mux
}

// newUsersMux wires a UsersHandler behind the auth middleware.
func newUsersMux(svc services.UserService) *http.ServeMux {
	mux := http.NewServeMux()
	NewUsersHandler(svc, testhelpers.NopLogger()).RegisterRoutes(mux, testMiddleware())
	return mux
}
