package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wikibhasha/wikibhasha-engine/pkg/auth"
	"github.com/wikibhasha/wikibhasha-engine/pkg/services"
)

// UsersHandler handles the user directory endpoint.
type UsersHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(userService services.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the users handler's routes on the given mux.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/users", authMiddleware.RequireAuth(h.List))
}

// List handles GET /api/users
// Returns every user with their ability to create projects, plus the
// calling user's id. Any authenticated principal may call this.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.GetPrincipal(r.Context())
	if !ok {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Missing authentication"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	listing, err := h.userService.List(r.Context(), principal)
	if err != nil {
		h.logger.Error("Failed to list users",
			zap.Int64("user_id", principal.UserID),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list users"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, listing); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
