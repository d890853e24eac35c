package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/resultsapp/backend/internal/auth"
	"github.com/resultsapp/backend/internal/models"
	"github.com/resultsapp/backend/internal/services"
	"go.uber.org/zap"
)

// UserService defines methods for user business logic
type UserService interface {
	// Create creates a new user with a hashed password.
	//
	// Returns services.ErrEmailTaken when the email is already in use.
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	// Update applies a partial update to a user under a strong optimistic lock.
	//
	// Returns services.ErrUserNotFound, services.ErrPreconditionFailed,
	// services.ErrEmailTaken or services.ErrRoleNotAllowed.
	Update(ctx context.Context, userID int, req *models.UpdateUserRequest, ifMatch string, callerIsAdmin bool) (*models.User, error)
	// Delete removes a user.
	//
	// Returns services.ErrUserNotFound when no such user exists.
	Delete(ctx context.Context, userID int) error
}

// UserHandler handles the user resource endpoints
type UserHandler struct {
	BaseHandler
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all user handler routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Put("/{userID:[0-9]+}", h.Update)
		r.Delete("/{userID:[0-9]+}", h.Delete)
	})
}

// Create handles POST /api/v1/users
// @Summary Create a user
// @Description Create a new user account. Admin only. The password is stored as a bcrypt hash and never serialized.
// @Tags users
// @Accept json
// @Produce json,xml
// @Security ApiKeyAuth
// @Param user body models.CreateUserRequest true "User data"
// @Success 201 {object} models.UserPayload "Created user"
// @Failure 400 {object} models.ErrorPayload "Email already in use"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 403 {object} models.ErrorPayload "Caller is not an admin"
// @Failure 422 {object} models.ErrorPayload "Missing email or password"
// @Router /api/v1/users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	if !ident.IsAdmin() {
		h.RespondError(w, r, http.StatusForbidden, "Forbidden: you don't have permission to access")
		return
	}

	var req models.CreateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Email == "" || req.Password == "" {
		h.RespondError(w, r, http.StatusUnprocessableEntity, "")
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			h.RespondError(w, r, http.StatusBadRequest, "")
			return
		}
		h.Logger.Error("failed to create user", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	location := fmt.Sprintf("%s://%s/api/v1/users/%d", requestScheme(r), r.Host, user.ID)
	w.Header().Set("Location", location)
	h.RespondMarshalled(w, r, http.StatusCreated, func(format string) ([]byte, error) {
		return models.MarshalUser(user, format)
	})
}

// Update handles PUT /api/v1/users/{userID}
// @Summary Update a user
// @Description Partially update a user under a strong optimistic lock: If-Match must carry the user's current ETag. Only the user themselves or an admin may update, and only admins may grant the admin role.
// @Tags users
// @Accept json
// @Produce json,xml
// @Security ApiKeyAuth
// @Param userID path int true "User ID"
// @Param If-Match header string true "Current user ETag"
// @Param user body models.UpdateUserRequest true "Fields to update"
// @Success 209 {object} models.UserPayload "Updated user"
// @Failure 400 {object} models.ErrorPayload "Email already in use"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 403 {object} models.ErrorPayload "Not the target user, or granting admin without the admin role"
// @Failure 404 {object} models.ErrorPayload "User not found"
// @Failure 412 {object} models.ErrorPayload "If-Match absent or stale"
// @Router /api/v1/users/{userID} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	userID, _ := strconv.Atoi(chi.URLParam(r, "userID"))
	if !ident.CanAccess(userID) {
		h.RespondError(w, r, http.StatusForbidden, "Forbidden: you don't have permission to access")
		return
	}

	var req models.UpdateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	user, err := h.service.Update(r.Context(), userID, &req, ifMatchValue(r), ident.IsAdmin())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			h.RespondError(w, r, http.StatusNotFound, "")
		case errors.Is(err, services.ErrPreconditionFailed):
			h.RespondError(w, r, http.StatusPreconditionFailed, "PRECONDITION FAILED: one or more conditions given evaluated to false")
		case errors.Is(err, services.ErrEmailTaken):
			h.RespondError(w, r, http.StatusBadRequest, "")
		case errors.Is(err, services.ErrRoleNotAllowed):
			h.RespondError(w, r, http.StatusForbidden, "Forbidden: you don't have permission to access")
		default:
			h.Logger.Error("failed to update user", zap.Error(err))
			h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.RespondMarshalled(w, r, StatusContentReturned, func(format string) ([]byte, error) {
		return models.MarshalUser(user, format)
	})
}

// Delete handles DELETE /api/v1/users/{userID}
// @Summary Delete a user
// @Description Delete a user account. Admin only. The user's results are not deleted.
// @Tags users
// @Produce json,xml
// @Security ApiKeyAuth
// @Param userID path int true "User ID"
// @Success 204 "Deleted"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 403 {object} models.ErrorPayload "Caller is not an admin"
// @Failure 404 {object} models.ErrorPayload "User not found"
// @Router /api/v1/users/{userID} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	if !ident.IsAdmin() {
		h.RespondError(w, r, http.StatusForbidden, "Forbidden: you don't have permission to access")
		return
	}

	userID, _ := strconv.Atoi(chi.URLParam(r, "userID"))
	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.RespondError(w, r, http.StatusNotFound, "")
			return
		}
		h.Logger.Error("failed to delete user", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
