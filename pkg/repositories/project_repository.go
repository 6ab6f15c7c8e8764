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

// ProjectFilter narrows project queries to the rows a principal may see.
// Exactly one of All, CreatedBy, AssignedTo is set by the access engine.
type ProjectFilter struct {
	All        bool
	CreatedBy  *int64
	AssignedTo *int64
}

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	// CreateWithSentences inserts a project and its sentence batch in a
	// single transaction. Returns ErrConflict if the project id exists.
	CreateWithSentences(ctx context.Context, project *models.Project, sentences []string) error

	// List retrieves projects visible under the filter, newest first.
	List(ctx context.Context, filter ProjectFilter) ([]*models.Project, error)

	// Get retrieves one project, composing the id lookup with the filter.
	// Out-of-scope ids report ErrNotFound, identical to absent ids.
	Get(ctx context.Context, projectID string, filter ProjectFilter) (*models.Project, error)

	// UpdateAssignedTo sets the assignee on a project within the filter.
	UpdateAssignedTo(ctx context.Context, projectID string, assignedTo *int64, filter ProjectFilter) (*models.Project, error)
}

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *database.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// scopeClause renders the filter as a WHERE fragment. Arguments are
// appended to args and numbered after the existing ones.
func (f ProjectFilter) scopeClause(args []any) (string, []any) {
	switch {
	case f.All:
		return "TRUE", args
	case f.CreatedBy != nil:
		args = append(args, *f.CreatedBy)
		return fmt.Sprintf("created_by = $%d", len(args)), args
	case f.AssignedTo != nil:
		args = append(args, *f.AssignedTo)
		return fmt.Sprintf("assigned_to = $%d", len(args)), args
	default:
		// An empty filter matches nothing rather than everything.
		return "FALSE", args
	}
}

// CreateWithSentences inserts the project row and one sentence row per
// string, all-or-nothing.
func (r *projectRepository) CreateWithSentences(ctx context.Context, project *models.Project, sentences []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	query := `
		INSERT INTO projects (project_id, article_title, target_language, created_on, created_by, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.Exec(ctx, query,
		project.ProjectID,
		project.ArticleTitle,
		project.TargetLanguage,
		project.CreatedOn,
		project.CreatedBy,
		project.AssignedTo,
	)
	if err != nil {
		// Unique constraint violation (PostgreSQL error code 23505)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	for _, original := range sentences {
		_, err = tx.Exec(ctx,
			`INSERT INTO sentences (project_id, original_sentence, translated_sentence)
			 VALUES ($1, $2, '')`,
			project.ProjectID, original)
		if err != nil {
			return fmt.Errorf("failed to create sentence: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// List retrieves all projects visible under the filter.
func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]*models.Project, error) {
	clause, args := filter.scopeClause(nil)

	query := fmt.Sprintf(`
		SELECT project_id, article_title, target_language, created_on, created_by, assigned_to
		FROM projects
		WHERE %s
		ORDER BY created_on DESC`, clause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ProjectID, &p.ArticleTitle, &p.TargetLanguage, &p.CreatedOn, &p.CreatedBy, &p.AssignedTo); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	return projects, nil
}

// Get retrieves a project by ID within the filter.
func (r *projectRepository) Get(ctx context.Context, projectID string, filter ProjectFilter) (*models.Project, error) {
	args := []any{projectID}
	clause, args := filter.scopeClause(args)

	query := fmt.Sprintf(`
		SELECT project_id, article_title, target_language, created_on, created_by, assigned_to
		FROM projects
		WHERE project_id = $1 AND %s`, clause)

	var p models.Project
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ProjectID, &p.ArticleTitle, &p.TargetLanguage, &p.CreatedOn, &p.CreatedBy, &p.AssignedTo,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &p, nil
}

// UpdateAssignedTo sets the assignee and returns the updated row.
func (r *projectRepository) UpdateAssignedTo(ctx context.Context, projectID string, assignedTo *int64, filter ProjectFilter) (*models.Project, error) {
	args := []any{projectID, assignedTo}
	clause, args := filter.scopeClause(args)

	query := fmt.Sprintf(`
		UPDATE projects
		SET assigned_to = $2
		WHERE project_id = $1 AND %s
		RETURNING project_id, article_title, target_language, created_on, created_by, assigned_to`, clause)

	var p models.Project
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ProjectID, &p.ArticleTitle, &p.TargetLanguage, &p.CreatedOn, &p.CreatedBy, &p.AssignedTo,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &p, nil
}

// Ensure projectRepository implements ProjectRepository at compile time.
var _ ProjectRepository = (*projectRepository)(nil)
