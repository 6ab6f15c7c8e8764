package services

import (
	"context"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/repositories"
)

// mockProjectRepository is a configurable mock for testing services.
// Get and UpdateAssignedTo honor the filter against the stored projects
// so scope composition can be asserted end to end.
type mockProjectRepository struct {
	projects  map[string]*models.Project
	createErr error
	listErr   error

	// Capture inputs for verification
	capturedProject   *models.Project
	capturedSentences []string
	capturedFilter    repositories.ProjectFilter
}

func newMockProjectRepository(projects ...*models.Project) *mockProjectRepository {
	m := &mockProjectRepository{projects: make(map[string]*models.Project)}
	for _, p := range projects {
		m.projects[p.ProjectID] = p
	}
	return m
}

func (m *mockProjectRepository) matches(p *models.Project, filter repositories.ProjectFilter) bool {
	switch {
	case filter.All:
		return true
	case filter.CreatedBy != nil:
		return p.CreatedBy == *filter.CreatedBy
	case filter.AssignedTo != nil:
		return p.AssignedTo != nil && *p.AssignedTo == *filter.AssignedTo
	default:
		return false
	}
}

func (m *mockProjectRepository) CreateWithSentences(ctx context.Context, project *models.Project, sentences []string) error {
	m.capturedProject = project
	m.capturedSentences = sentences
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.projects[project.ProjectID]; exists {
		return apperrors.ErrConflict
	}
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepository) List(ctx context.Context, filter repositories.ProjectFilter) ([]*models.Project, error) {
	m.capturedFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.Project
	for _, p := range m.projects {
		if m.matches(p, filter) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProjectRepository) Get(ctx context.Context, projectID string, filter repositories.ProjectFilter) (*models.Project, error) {
	m.capturedFilter = filter
	p, ok := m.projects[projectID]
	if !ok || !m.matches(p, filter) {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

func (m *mockProjectRepository) UpdateAssignedTo(ctx context.Context, projectID string, assignedTo *int64, filter repositories.ProjectFilter) (*models.Project, error) {
	p, err := m.Get(ctx, projectID, filter)
	if err != nil {
		return nil, err
	}
	p.AssignedTo = assignedTo
	return p, nil
}

// mockSentenceRepository is a configurable mock for testing SentenceService.
type mockSentenceRepository struct {
	sentences map[int64]*models.Sentence
	nextID    int64
	createErr error
}

func newMockSentenceRepository(sentences ...*models.Sentence) *mockSentenceRepository {
	m := &mockSentenceRepository{sentences: make(map[int64]*models.Sentence), nextID: 1}
	for _, s := range sentences {
		m.sentences[s.SentenceID] = s
		if s.SentenceID >= m.nextID {
			m.nextID = s.SentenceID + 1
		}
	}
	return m
}

func (m *mockSentenceRepository) Create(ctx context.Context, sentence *models.Sentence) error {
	if m.createErr != nil {
		return m.createErr
	}
	sentence.SentenceID = m.nextID
	m.nextID++
	m.sentences[sentence.SentenceID] = sentence
	return nil
}

func (m *mockSentenceRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Sentence, error) {
	var result []*models.Sentence
	for id := int64(1); id < m.nextID; id++ {
		if s, ok := m.sentences[id]; ok && s.ProjectID == projectID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockSentenceRepository) Get(ctx context.Context, sentenceID int64) (*models.Sentence, error) {
	s, ok := m.sentences[sentenceID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s, nil
}

func (m *mockSentenceRepository) UpdateTranslation(ctx context.Context, sentenceID int64, translated string) (*models.Sentence, error) {
	s, ok := m.sentences[sentenceID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	s.TranslatedSentence = translated
	return s, nil
}

// mockUserRepository is a configurable mock for testing UserService.
type mockUserRepository struct {
	users   []*models.User
	listErr error
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.users, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error { return nil }

// mockSummarySource returns canned sentences.
type mockSummarySource struct {
	sentences []string
	err       error

	capturedTitle string
}

func (m *mockSummarySource) FetchSentences(ctx context.Context, articleTitle string) ([]string, error) {
	m.capturedTitle = articleTitle
	if m.err != nil {
		return nil, m.err
	}
	return m.sentences, nil
}

// Compile-time interface checks for the mocks.
var (
	_ repositories.ProjectRepository  = (*mockProjectRepository)(nil)
	_ repositories.SentenceRepository = (*mockSentenceRepository)(nil)
	_ repositories.UserRepository     = (*mockUserRepository)(nil)
)
