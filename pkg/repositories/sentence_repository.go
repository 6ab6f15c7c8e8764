package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/database"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
)

// SentenceRepository defines the interface for sentence data access.
type SentenceRepository interface {
	// Create inserts a single sentence and assigns its id.
	Create(ctx context.Context, sentence *models.Sentence) error

	// ListByProject retrieves a project's sentences in insertion order.
	ListByProject(ctx context.Context, projectID string) ([]*models.Sentence, error)

	// Get retrieves one sentence by id, unscoped. The caller resolves the
	// owning project against the principal's visibility afterwards.
	Get(ctx context.Context, sentenceID int64) (*models.Sentence, error)

	// UpdateTranslation sets the translated text and returns the row.
	UpdateTranslation(ctx context.Context, sentenceID int64, translated string) (*models.Sentence, error)
}

// sentenceRepository implements SentenceRepository using PostgreSQL.
type sentenceRepository struct {
	db *database.DB
}

// NewSentenceRepository creates a new sentence repository.
func NewSentenceRepository(db *database.DB) SentenceRepository {
	return &sentenceRepository{db: db}
}

// Create inserts a single sentence.
func (r *sentenceRepository) Create(ctx context.Context, sentence *models.Sentence) error {
	query := `
		INSERT INTO sentences (project_id, original_sentence, translated_sentence)
		VALUES ($1, $2, $3)
		RETURNING sentence_id, created_on`

	err := r.db.QueryRow(ctx, query,
		sentence.ProjectID,
		sentence.OriginalSentence,
		sentence.TranslatedSentence,
	).Scan(&sentence.SentenceID, &sentence.CreatedOn)
	if err != nil {
		// Foreign key violation means the project vanished under us.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to create sentence: %w", err)
	}

	return nil
}

// ListByProject retrieves a project's sentences in insertion order.
func (r *sentenceRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Sentence, error) {
	query := `
		SELECT sentence_id, project_id, original_sentence, translated_sentence, created_on
		FROM sentences
		WHERE project_id = $1
		ORDER BY sentence_id`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sentences: %w", err)
	}
	defer rows.Close()

	var sentences []*models.Sentence
	for rows.Next() {
		var s models.Sentence
		if err := rows.Scan(&s.SentenceID, &s.ProjectID, &s.OriginalSentence, &s.TranslatedSentence, &s.CreatedOn); err != nil {
			return nil, fmt.Errorf("failed to scan sentence: %w", err)
		}
		sentences = append(sentences, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sentences: %w", err)
	}

	return sentences, nil
}

// Get retrieves a sentence by id.
func (r *sentenceRepository) Get(ctx context.Context, sentenceID int64) (*models.Sentence, error) {
	query := `
		SELECT sentence_id, project_id, original_sentence, translated_sentence, created_on
		FROM sentences
		WHERE sentence_id = $1`

	var s models.Sentence
	err := r.db.QueryRow(ctx, query, sentenceID).Scan(
		&s.SentenceID, &s.ProjectID, &s.OriginalSentence, &s.TranslatedSentence, &s.CreatedOn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sentence: %w", err)
	}

	return &s, nil
}

// UpdateTranslation sets the translated text on a sentence.
func (r *sentenceRepository) UpdateTranslation(ctx context.Context, sentenceID int64, translated string) (*models.Sentence, error) {
	query := `
		UPDATE sentences
		SET translated_sentence = $2
		WHERE sentence_id = $1
		RETURNING sentence_id, project_id, original_sentence, translated_sentence, created_on`

	var s models.Sentence
	err := r.db.QueryRow(ctx, query, sentenceID, translated).Scan(
		&s.SentenceID, &s.ProjectID, &s.OriginalSentence, &s.TranslatedSentence, &s.CreatedOn,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update sentence: %w", err)
	}

	return &s, nil
}

// Ensure sentenceRepository implements SentenceRepository at compile time.
var _ SentenceRepository = (*sentenceRepository)(nil)
