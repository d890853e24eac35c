package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/resultsapp/backend/internal/models"
	"github.com/resultsapp/backend/internal/services"
	"go.uber.org/zap"
)

// AuthService defines methods for credential verification and token issuance
type AuthService interface {
	// Login verifies the credentials and issues a signed access token.
	//
	// Returns services.ErrInvalidCredentials for unknown emails and wrong passwords alike.
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles token issuance
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// loginResponse carries the issued access token
type loginResponse struct {
	Token string `json:"token"`
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Post("/login_check", h.Login)
}

// Login handles POST /api/v1/login
// @Summary Obtain an access token
// @Description Verify email and password and return a signed JWT access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials (username carries the email)"
// @Success 200 {object} loginResponse "Access token"
// @Failure 401 {object} models.ErrorPayload "Unknown email or wrong password"
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
			return
		}
		h.Logger.Error("failed to log user in", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(loginResponse{Token: token}); err != nil {
		h.Logger.Error("failed to encode login response", zap.Error(err))
	}
}
