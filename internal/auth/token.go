// Package auth provides JWT token handling and per-request identity
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenGenerator handles JWT token generation and validation
type TokenGenerator struct {
	secret      string
	tokenExpiry time.Duration
}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator(secret string, tokenExpiry time.Duration) *TokenGenerator {
	return &TokenGenerator{
		secret:      secret,
		tokenExpiry: tokenExpiry,
	}
}

// GenerateToken creates an access token carrying the user ID and roles
func (tg *TokenGenerator) GenerateToken(userID int, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"roles":   roles,
		"exp":     time.Now().Add(tg.tokenExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tg.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a token and returns the userID and roles
func (tg *TokenGenerator) ValidateToken(tokenString string) (int, []string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tg.secret), nil
	})

	if err != nil {
		return 0, nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return 0, nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, nil, fmt.Errorf("invalid token claims")
	}

	// JWT claims decode numbers as float64
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, nil, fmt.Errorf("user_id not found in token")
	}

	rawRoles, ok := claims["roles"].([]any)
	if !ok {
		return 0, nil, fmt.Errorf("roles not found in token")
	}
	roles := make([]string, 0, len(rawRoles))
	for _, raw := range rawRoles {
		role, ok := raw.(string)
		if !ok {
			return 0, nil, fmt.Errorf("invalid role claim")
		}
		roles = append(roles, role)
	}

	return int(userIDFloat), roles, nil
}
