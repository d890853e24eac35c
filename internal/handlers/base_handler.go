// Package handlers contains the HTTP layer
package handlers

import (
	"net/http"
	"strings"

	"github.com/resultsapp/backend/internal/middlewares"
	"github.com/resultsapp/backend/internal/models"
	"go.uber.org/zap"
)

// StatusContentReturned is the success status of user updates (209 Content Returned)
const StatusContentReturned = 209

// BaseHandler provides common handler functionality
type BaseHandler struct {
	Logger *zap.Logger
}

// Respond sends a pre-serialized body with the negotiated content type
func (h *BaseHandler) Respond(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	format := middlewares.GetFormat(r.Context())
	w.Header().Set("Content-Type", models.ContentType(format))
	w.WriteHeader(status)

	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			h.Logger.Error("failed to write response body", zap.Error(err))
		}
	}
}

// RespondError sends a format-negotiated error envelope.
// An empty message serializes as null.
func (h *BaseHandler) RespondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	format := middlewares.GetFormat(r.Context())

	var messagePtr *string
	if message != "" {
		messagePtr = &message
	}

	body, err := models.MarshalError(status, messagePtr, format)
	if err != nil {
		h.Logger.Error("failed to marshal error envelope", zap.Error(err))
		w.WriteHeader(status)
		return
	}

	h.Respond(w, r, status, body)
}

// RespondMarshalled serializes the value with the given marshal function and
// sends it, falling back to a 500 envelope on serialization failure
func (h *BaseHandler) RespondMarshalled(w http.ResponseWriter, r *http.Request, status int, marshal func(format string) ([]byte, error)) {
	format := middlewares.GetFormat(r.Context())

	body, err := marshal(format)
	if err != nil {
		h.Logger.Error("failed to marshal response", zap.Error(err))
		h.RespondError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.Respond(w, r, status, body)
}

// ifMatchSatisfied reports whether the request's If-Match header matches the
// given ETag, either literally or via the "*" wildcard
func ifMatchSatisfied(r *http.Request, etag string) bool {
	header := r.Header.Get("If-Match")
	if header == "" {
		return false
	}

	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.Trim(strings.TrimSpace(candidate), `"`)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// ifMatchValue returns the single literal If-Match value, with quotes stripped
func ifMatchValue(r *http.Request) string {
	return strings.Trim(strings.TrimSpace(r.Header.Get("If-Match")), `"`)
}

// requestScheme resolves the external scheme of the request, honoring proxies
func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
