package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/repositories"
)

// SentencePatch is a partial sentence update.
type SentencePatch struct {
	TranslatedSentence    *string
	SetTranslatedSentence bool
}

// SentenceService defines the interface for sentence operations.
type SentenceService interface {
	// ListByProject returns a project's sentences if the project is
	// visible to the principal; ErrNotFound otherwise.
	ListByProject(ctx context.Context, projectID string, principal *models.Principal) ([]*models.Sentence, error)

	// Create adds a sentence to a visible project. Beyond reaching the
	// project, no further access check applies.
	Create(ctx context.Context, projectID, originalSentence string, principal *models.Principal) (*models.Sentence, error)

	// Get returns one sentence. A sentence that never existed reports
	// ErrNotFound; one whose owning project is outside the principal's
	// scope reports ErrForbidden.
	Get(ctx context.Context, sentenceID int64, principal *models.Principal) (*models.Sentence, error)

	// Update applies a partial update under the same visibility rule as Get.
	Update(ctx context.Context, sentenceID int64, patch SentencePatch, principal *models.Principal) (*models.Sentence, error)
}

// sentenceService implements SentenceService.
type sentenceService struct {
	sentenceRepo repositories.SentenceRepository
	projectRepo  repositories.ProjectRepository
	logger       *zap.Logger
}

// NewSentenceService creates a new sentence service with dependencies.
func NewSentenceService(sentenceRepo repositories.SentenceRepository, projectRepo repositories.ProjectRepository, logger *zap.Logger) SentenceService {
	return &sentenceService{
		sentenceRepo: sentenceRepo,
		projectRepo:  projectRepo,
		logger:       logger,
	}
}

// requireVisibleProject resolves the project through the principal's scope.
func (s *sentenceService) requireVisibleProject(ctx context.Context, projectID string, principal *models.Principal) error {
	filter, err := ProjectScope(principal)
	if err != nil {
		return err
	}
	if _, err := s.projectRepo.Get(ctx, projectID, filter); err != nil {
		return err
	}
	return nil
}

// ListByProject returns the sentences of a visible project.
func (s *sentenceService) ListByProject(ctx context.Context, projectID string, principal *models.Principal) ([]*models.Sentence, error) {
	if err := s.requireVisibleProject(ctx, projectID, principal); err != nil {
		return nil, err
	}
	return s.sentenceRepo.ListByProject(ctx, projectID)
}

// Create adds a sentence to a visible project.
func (s *sentenceService) Create(ctx context.Context, projectID, originalSentence string, principal *models.Principal) (*models.Sentence, error) {
	if err := s.requireVisibleProject(ctx, projectID, principal); err != nil {
		return nil, err
	}

	original := strings.TrimSpace(originalSentence)
	if original == "" {
		return nil, apperrors.NewValidationError("original_sentence", "original sentence is required")
	}

	sentence := &models.Sentence{
		ProjectID:          projectID,
		OriginalSentence:   original,
		TranslatedSentence: "",
	}
	if err := s.sentenceRepo.Create(ctx, sentence); err != nil {
		return nil, err
	}

	return sentence, nil
}

// resolve loads the sentence and checks its owning project's visibility.
// An existing sentence whose project is out of scope reports forbidden,
// distinguishing it from sentences that never existed. Project reads keep
// the opposite convention; see ProjectScope.
func (s *sentenceService) resolve(ctx context.Context, sentenceID int64, principal *models.Principal) (*models.Sentence, error) {
	sentence, err := s.sentenceRepo.Get(ctx, sentenceID)
	if err != nil {
		return nil, err
	}

	filter, err := ProjectScope(principal)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.Get(ctx, sentence.ProjectID, filter); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}

	return sentence, nil
}

// Get returns one sentence under the visibility rule.
func (s *sentenceService) Get(ctx context.Context, sentenceID int64, principal *models.Principal) (*models.Sentence, error) {
	return s.resolve(ctx, sentenceID, principal)
}

// Update sets the translated text of a visible sentence.
func (s *sentenceService) Update(ctx context.Context, sentenceID int64, patch SentencePatch, principal *models.Principal) (*models.Sentence, error) {
	sentence, err := s.resolve(ctx, sentenceID, principal)
	if err != nil {
		return nil, err
	}

	if !patch.SetTranslatedSentence {
		return sentence, nil
	}

	translated := ""
	if patch.TranslatedSentence != nil {
		translated = *patch.TranslatedSentence
	}

	return s.sentenceRepo.UpdateTranslation(ctx, sentenceID, translated)
}

// Ensure sentenceService implements SentenceService at compile time.
var _ SentenceService = (*sentenceService)(nil)
