package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/auth"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/services"
)

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	ArticleTitle   string `json:"article_title"`
	TargetLanguage string `json:"target_language"`
	AssignedTo     *int64 `json:"assigned_to"`
}

// projectPatchFields are the only keys accepted by PATCH; everything else
// on a project is immutable after creation.
var projectPatchFields = map[string]bool{
	"assigned_to": true,
}

// ProjectsHandler handles project-related HTTP requests.
type ProjectsHandler struct {
	projectService services.ProjectService
	logger         *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projectService services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes registers the projects handler's routes on the given mux.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/projects", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /api/projects", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/projects/{projectID}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PATCH /api/projects/{projectID}", authMiddleware.RequireAuth(h.Update))
}

// List handles GET /api/projects
// Returns the projects visible to the caller's role.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	projects, err := h.projectService.List(r.Context(), principal)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			if err := ErrorResponse(w, http.StatusForbidden, "forbidden", "Not enough permission"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to list projects",
			zap.Int64("user_id", principal.UserID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list projects"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if projects == nil {
		projects = []*models.Project{}
	}
	if err := WriteJSON(w, http.StatusOK, projects); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/projects
// Creates a project and populates its sentences from the article summary.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	input := services.CreateProjectInput{
		ArticleTitle:   req.ArticleTitle,
		TargetLanguage: req.TargetLanguage,
		AssignedTo:     req.AssignedTo,
	}

	project, err := h.projectService.Create(r.Context(), input, principal)
	if err != nil {
		var validationErr *apperrors.ValidationError
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			if err := ErrorResponse(w, http.StatusForbidden, "forbidden", "Not enough permission"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		case errors.As(err, &validationErr):
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", validationErr.Message); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		case errors.Is(err, apperrors.ErrConflict):
			if err := ErrorResponse(w, http.StatusConflict, "conflict", "A project for this article and language already exists"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		case errors.Is(err, apperrors.ErrSourceUnavailable):
			if err := ErrorResponse(w, http.StatusBadGateway, "source_unavailable", "Failed to fetch the article summary"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		default:
			h.logger.Error("Failed to create project",
				zap.Int64("user_id", principal.UserID),
				zap.Error(err))
			if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to create project"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
		}
		return
	}

	if err := WriteJSON(w, http.StatusCreated, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/projects/{projectID}
// Out-of-scope ids report 404 to avoid leaking project existence.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	projectID := r.PathValue("projectID")

	project, err := h.projectService.Get(r.Context(), projectID, principal)
	if err != nil {
		h.writeLookupError(w, err, projectID, principal.UserID, "Failed to get project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/projects/{projectID}
// Only assigned_to may change; all other fields are immutable.
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	projectID := r.PathValue("projectID")

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	for key := range fields {
		if !projectPatchFields[key] {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", key+" is not an updatable field"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
	}

	var patch services.ProjectPatch
	if raw, present := fields["assigned_to"]; present {
		var assignedTo *int64
		if err := json.Unmarshal(raw, &assignedTo); err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", "assigned_to must be a user id or null"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		patch.AssignedTo = assignedTo
		patch.SetAssignedTo = true
	}

	project, err := h.projectService.Update(r.Context(), projectID, patch, principal)
	if err != nil {
		h.writeLookupError(w, err, projectID, principal.UserID, "Failed to update project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeLookupError maps single-project lookup failures to responses.
func (h *ProjectsHandler) writeLookupError(w http.ResponseWriter, err error, projectID string, userID int64, logMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		if err := ErrorResponse(w, http.StatusForbidden, "forbidden", "Not enough permission"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	case errors.Is(err, apperrors.ErrNotFound):
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Project not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	default:
		h.logger.Error(logMsg,
			zap.String("project_id", projectID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", logMsg); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
