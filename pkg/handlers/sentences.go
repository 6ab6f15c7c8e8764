package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/apperrors"
	"github.com/wikibhasha/wikibhasha-engine/pkg/auth"
	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
	"github.com/wikibhasha/wikibhasha-engine/pkg/services"
)

// CreateSentenceRequest is the request body for adding a sentence.
type CreateSentenceRequest struct {
	OriginalSentence string `json:"original_sentence"`
}

// UpdateSentenceRequest is the request body for updating a sentence.
type UpdateSentenceRequest struct {
	TranslatedSentence *string `json:"translated_sentence"`
}

// SentencesHandler handles sentence-related HTTP requests.
type SentencesHandler struct {
	sentenceService services.SentenceService
	logger          *zap.Logger
}

// NewSentencesHandler creates a new sentences handler.
func NewSentencesHandler(sentenceService services.SentenceService, logger *zap.Logger) *SentencesHandler {
	return &SentencesHandler{
		sentenceService: sentenceService,
		logger:          logger,
	}
}

// RegisterRoutes registers the sentences handler's routes on the given mux.
func (h *SentencesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/projects/{projectID}/sentences", authMiddleware.RequireAuth(h.ListByProject))
	mux.HandleFunc("POST /api/projects/{projectID}/sentences", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /api/sentences/{sentenceID}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PATCH /api/sentences/{sentenceID}", authMiddleware.RequireAuth(h.Update))
}

// ListByProject handles GET /api/projects/{projectID}/sentences
// The project must be visible to the caller; sentences themselves carry
// no further access check.
func (h *SentencesHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	projectID := r.PathValue("projectID")

	sentences, err := h.sentenceService.ListByProject(r.Context(), projectID, principal)
	if err != nil {
		h.writeSentenceError(w, err, principal.UserID, "Failed to list sentences")
		return
	}

	if sentences == nil {
		sentences = []*models.Sentence{}
	}
	if err := WriteJSON(w, http.StatusOK, sentences); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/projects/{projectID}/sentences
// Adds a sentence to a visible project.
func (h *SentencesHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	projectID := r.PathValue("projectID")

	var req CreateSentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sentence, err := h.sentenceService.Create(r.Context(), projectID, req.OriginalSentence, principal)
	if err != nil {
		h.writeSentenceError(w, err, principal.UserID, "Failed to create sentence")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, sentence); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/sentences/{sentenceID}
// A sentence that exists but belongs to an out-of-scope project reports
// 403, unlike project lookups which report 404.
func (h *SentencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sentenceID, valid := h.parseSentenceID(w, r)
	if !valid {
		return
	}

	sentence, err := h.sentenceService.Get(r.Context(), sentenceID, principal)
	if err != nil {
		h.writeSentenceError(w, err, principal.UserID, "Failed to get sentence")
		return
	}

	if err := WriteJSON(w, http.StatusOK, sentence); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PATCH /api/sentences/{sentenceID}
// Sets the translated text.
func (h *SentencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	sentenceID, valid := h.parseSentenceID(w, r)
	if !valid {
		return
	}

	var req UpdateSentenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	patch := services.SentencePatch{
		TranslatedSentence:    req.TranslatedSentence,
		SetTranslatedSentence: req.TranslatedSentence != nil,
	}

	sentence, err := h.sentenceService.Update(r.Context(), sentenceID, patch, principal)
	if err != nil {
		h.writeSentenceError(w, err, principal.UserID, "Failed to update sentence")
		return
	}

	if err := WriteJSON(w, http.StatusOK, sentence); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// parseSentenceID reads the path parameter, writing a 400 on failure.
func (h *SentencesHandler) parseSentenceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	sentenceID, err := strconv.ParseInt(r.PathValue("sentenceID"), 10, 64)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_sentence_id", "Invalid sentence ID format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return 0, false
	}
	return sentenceID, true
}

// writeSentenceError maps sentence operation failures to responses.
func (h *SentencesHandler) writeSentenceError(w http.ResponseWriter, err error, userID int64, logMsg string) {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		if err := ErrorResponse(w, http.StatusForbidden, "forbidden", "Not enough permission"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	case errors.Is(err, apperrors.ErrNotFound):
		if err := ErrorResponse(w, http.StatusNotFound, "not_found", "Not found"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	case errors.As(err, &validationErr):
		if err := ErrorResponse(w, http.StatusBadRequest, "validation_error", validationErr.Message); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	default:
		h.logger.Error(logMsg,
			zap.Int64("user_id", userID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", logMsg); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
