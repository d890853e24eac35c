package auth

import (
	"net/http"
	"strings"
)

// IdentityMiddleware extracts the caller identity from the request credentials.
// Requests without a token and requests with an invalid token both proceed
// without an identity; handlers respond 401 when one is required.
func IdentityMiddleware(tokenGenerator *TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header or cookie
			var token string

			// Try Authorization header first
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			// If not in header, try cookie
			if token == "" {
				cookie, err := r.Cookie("access_token")
				if err == nil {
					token = cookie.Value
				}
			}

			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, roles, err := tokenGenerator.ValidateToken(token)
			if err != nil {
				// Invalid credentials are treated the same as absent ones
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), &Identity{UserID: userID, Roles: roles})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
