package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/resultsapp/backend/internal/auth"
	"github.com/resultsapp/backend/internal/models"
	"github.com/resultsapp/backend/internal/services"
	"go.uber.org/zap"
)

// ResultService defines methods for result business logic
type ResultService interface {
	// Create persists a new measurement for an existing user.
	//
	// Returns services.ErrUserNotFound when the referenced user does not exist.
	Create(ctx context.Context, userID int, value float64, t time.Time) (*models.Result, error)
	// GetByID retrieves a result together with its owning user.
	//
	// Returns services.ErrResultNotFound when no such result exists.
	GetByID(ctx context.Context, resultID int) (*models.Result, error)
	// List retrieves results ordered ascending by sort. Admin callers see every
	// result, other callers only their own.
	List(ctx context.Context, callerID int, callerIsAdmin bool, sort string) ([]models.Result, error)
	// Update applies a partial update to an already loaded result.
	Update(ctx context.Context, result *models.Result, req *models.UpdateResultRequest) error
	// Delete removes a result.
	//
	// Returns services.ErrResultNotFound when no such result exists.
	Delete(ctx context.Context, resultID int) error
	// DeleteAllForUser removes every result owned by a user.
	//
	// Returns services.ErrNoResults when the user owns none.
	DeleteAllForUser(ctx context.Context, userID int) error
}

// ResultHandler handles the result resource endpoints
type ResultHandler struct {
	BaseHandler
	service ResultService
}

// NewResultHandler creates a new result handler
func NewResultHandler(service ResultService, logger *zap.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all result handler routes
func (h *ResultHandler) RegisterRoutes(r chi.Router) {
	r.Route("/results", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Options("/", h.Options)
		r.Get("/{resultID:[0-9]+}", h.Get)
		r.Put("/{resultID:[0-9]+}", h.Update)
		r.Delete("/{resultID:[0-9]+}", h.Delete)
		r.Options("/{resultID:[0-9]+}", h.Options)
		r.Delete("/user/{userID:[0-9]+}", h.DeleteAllForUser)
	})
}

// Create handles POST /api/v1/results
// @Summary Create a result
// @Description Create a new measurement for a user. Non-admin callers may only create results for themselves.
// @Tags results
// @Accept json
// @Produce json,xml
// @Security ApiKeyAuth
// @Param result body models.CreateResultRequest true "Result data"
// @Success 201 {object} models.ResultPayload "Created result"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 403 {object} models.ErrorPayload "Creating results for another user"
// @Failure 404 {object} models.ErrorPayload "Referenced user not found"
// @Failure 422 {object} models.ErrorPayload "Missing result, time or userId"
// @Router /api/v1/results [post]
func (h *ResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	// A malformed body is treated as an empty one; the field checks below
	// produce the contract's status codes
	var req models.CreateResultRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if !ident.IsAdmin() && (req.UserID == nil || *req.UserID != ident.UserID) {
		h.RespondError(w, r, http.StatusForbidden, "You don't have permission to create results for other users.")
		return
	}

	if req.Result == nil || req.Time == nil || req.UserID == nil {
		h.RespondError(w, r, http.StatusUnprocessableEntity, "Unprocessable Entity: Missing data.")
		return
	}

	t, err := models.ParseTime(*req.Time)
	if err != nil {
		h.RespondError(w, r, http.StatusUnprocessableEntity, "Unprocessable Entity: Missing data.")
		return
	}

	result, err := h.service.Create(r.Context(), *req.UserID, *req.Result, t)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			h.RespondError(w, r, http.StatusNotFound, "Not Found: User not found.")
			return
		}
		h.Logger.Error("failed to create result", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondMarshalled(w, r, http.StatusCreated, func(format string) ([]byte, error) {
		return models.MarshalResult(result, format)
	})
}

// Get handles GET /api/v1/results/{resultID}
// @Summary Get a result
// @Description Get a single result by ID. Only the owner or an admin may read it. Supports conditional requests via If-Match.
// @Tags results
// @Produce json,xml
// @Security ApiKeyAuth
// @Param resultID path int true "Result ID"
// @Success 200 {object} models.ResultPayload "Result"
// @Success 304 "Not modified"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 403 {object} models.ErrorPayload "Not the owner"
// @Failure 404 {object} models.ErrorPayload "Result not found"
// @Router /api/v1/results/{resultID} [get]
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	resultID, _ := strconv.Atoi(chi.URLParam(r, "resultID"))
	result, err := h.service.GetByID(r.Context(), resultID)
	if err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			h.RespondError(w, r, http.StatusNotFound, "")
			return
		}
		h.Logger.Error("failed to get result", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !ident.CanAccess(result.User.ID) {
		h.RespondError(w, r, http.StatusForbidden, "Forbidden: You don't have permission to access.")
		return
	}

	etag := result.ETag()
	if ifMatchSatisfied(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Cache-Control", "private")
	w.Header().Set("ETag", etag)
	h.RespondMarshalled(w, r, http.StatusOK, func(format string) ([]byte, error) {
		return models.MarshalResultWrapped(result, format)
	})
}

// List handles GET /api/v1/results
// @Summary List results
// @Description List results sorted ascending by id, result or time. Admins see every result, other callers only their own. Supports conditional requests via If-Match.
// @Tags results
// @Produce json,xml
// @Security ApiKeyAuth
// @Param sort query string false "Sort key: id, result or time (default id)"
// @Success 200 {object} models.ResultPayload "Results collection"
// @Success 304 "Not modified"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 404 {object} models.ErrorPayload "No results visible to the caller"
// @Router /api/v1/results [get]
func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	sort := r.URL.Query().Get("sort")
	if sort == "" {
		sort = "id"
	}

	results, err := h.service.List(r.Context(), ident.UserID, ident.IsAdmin(), sort)
	if err != nil {
		h.Logger.Error("failed to list results", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if len(results) == 0 {
		h.RespondError(w, r, http.StatusNotFound, "")
		return
	}

	etag := models.ResultsETag(results)
	if ifMatchSatisfied(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Cache-Control", "private")
	w.Header().Set("ETag", etag)
	h.RespondMarshalled(w, r, http.StatusOK, func(format string) ([]byte, error) {
		return models.MarshalResults(results, format)
	})
}

// Update handles PUT /api/v1/results/{resultID}
// @Summary Update a result
// @Description Partially update a result; absent fields are left unchanged. Only the owner or an admin may update it.
// @Tags results
// @Accept json
// @Produce json,xml
// @Security ApiKeyAuth
// @Param resultID path int true "Result ID"
// @Param result body models.UpdateResultRequest true "Fields to update"
// @Success 200 {object} models.ResultPayload "Updated result"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 403 {object} models.ErrorPayload "Not the owner"
// @Failure 404 {object} models.ErrorPayload "Result not found"
// @Router /api/v1/results/{resultID} [put]
func (h *ResultHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	resultID, _ := strconv.Atoi(chi.URLParam(r, "resultID"))
	result, err := h.service.GetByID(r.Context(), resultID)
	if err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			h.RespondError(w, r, http.StatusNotFound, "Not Found: Result not found.")
			return
		}
		h.Logger.Error("failed to get result", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !ident.CanAccess(result.User.ID) {
		h.RespondError(w, r, http.StatusForbidden, "Forbidden: You don't have permission to access.")
		return
	}

	var req models.UpdateResultRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.service.Update(r.Context(), result, &req); err != nil {
		h.Logger.Error("failed to update result", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondMarshalled(w, r, http.StatusOK, func(format string) ([]byte, error) {
		return models.MarshalResult(result, format)
	})
}

// Delete handles DELETE /api/v1/results/{resultID}
// @Summary Delete a result
// @Description Delete a result by ID. Only the owner or an admin may delete it.
// @Tags results
// @Produce json,xml
// @Security ApiKeyAuth
// @Param resultID path int true "Result ID"
// @Success 204 "Deleted"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 403 {object} models.ErrorPayload "Not the owner"
// @Failure 404 {object} models.ErrorPayload "Result not found"
// @Router /api/v1/results/{resultID} [delete]
func (h *ResultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	resultID, _ := strconv.Atoi(chi.URLParam(r, "resultID"))
	result, err := h.service.GetByID(r.Context(), resultID)
	if err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			h.RespondError(w, r, http.StatusNotFound, "Not Found: Result not found.")
			return
		}
		h.Logger.Error("failed to get result", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !ident.CanAccess(result.User.ID) {
		h.RespondError(w, r, http.StatusForbidden, "Forbidden: You don't have permission to access.")
		return
	}

	if err := h.service.Delete(r.Context(), resultID); err != nil && !errors.Is(err, services.ErrResultNotFound) {
		h.Logger.Error("failed to delete result", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllForUser handles DELETE /api/v1/results/user/{userID}
// @Summary Delete all results of a user
// @Description Delete every result owned by the given user in one transaction. Only that user or an admin may do this.
// @Tags results
// @Produce json,xml
// @Security ApiKeyAuth
// @Param userID path int true "User ID"
// @Success 204 "Deleted"
// @Failure 401 {object} models.ErrorPayload "Authentication required"
// @Failure 403 {object} models.ErrorPayload "Not the target user"
// @Failure 404 {object} models.ErrorPayload "User owns no results"
// @Router /api/v1/results/user/{userID} [delete]
func (h *ResultHandler) DeleteAllForUser(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		h.RespondError(w, r, http.StatusUnauthorized, "Unauthorized: Invalid credentials.")
		return
	}

	userID, _ := strconv.Atoi(chi.URLParam(r, "userID"))
	if !ident.CanAccess(userID) {
		h.RespondError(w, r, http.StatusForbidden, "Forbidden: You don't have permission to delete results for this user.")
		return
	}

	if err := h.service.DeleteAllForUser(r.Context(), userID); err != nil {
		if errors.Is(err, services.ErrNoResults) {
			h.RespondError(w, r, http.StatusNotFound, "Not Found: No results found for this user.")
			return
		}
		h.Logger.Error("failed to delete results for user", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Options handles OPTIONS /api/v1/results and /api/v1/results/{resultID}
// @Summary Result capability discovery
// @Description Return the supported HTTP methods in the Allow header. No authentication required.
// @Tags results
// @Success 204 "Allow header present"
// @Router /api/v1/results [options]
func (h *ResultHandler) Options(w http.ResponseWriter, r *http.Request) {
	allow := "GET,POST,OPTIONS"
	if chi.URLParam(r, "resultID") != "" {
		allow = "GET,PUT,DELETE,OPTIONS"
	}

	w.Header().Set("Allow", allow)
	w.Header().Set("Cache-Control", "public, immutable")
	w.WriteHeader(http.StatusNoContent)
}
