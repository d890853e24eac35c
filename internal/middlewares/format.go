package middlewares

import (
	"context"
	"net/http"
	"strings"
)

const formatKey contextKey = "format"

// Supported response formats
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// FormatMiddleware negotiates the response format for each request.
// A trailing ".json" or ".xml" path suffix wins and is stripped from the
// routed path, otherwise the Accept header is consulted, defaulting to JSON.
func FormatMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := ""

		switch {
		case strings.HasSuffix(r.URL.Path, "."+FormatJSON):
			format = FormatJSON
			r.URL.Path = strings.TrimSuffix(r.URL.Path, "."+FormatJSON)
		case strings.HasSuffix(r.URL.Path, "."+FormatXML):
			format = FormatXML
			r.URL.Path = strings.TrimSuffix(r.URL.Path, "."+FormatXML)
		}

		if format == "" {
			format = formatFromAccept(r.Header.Get("Accept"))
		}

		ctx := context.WithValue(r.Context(), formatKey, format)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetFormat retrieves the negotiated format from context, defaulting to JSON
func GetFormat(ctx context.Context) string {
	if format, ok := ctx.Value(formatKey).(string); ok && format != "" {
		return format
	}
	return FormatJSON
}

// formatFromAccept maps an Accept header to a supported format
func formatFromAccept(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.IndexByte(mediaType, ';'); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		switch mediaType {
		case "application/json", "text/json":
			return FormatJSON
		case "application/xml", "text/xml":
			return FormatXML
		}
	}
	return FormatJSON
}
