package services

import (
	"context"

	"github.com/resultsapp/backend/internal/auth"
	"github.com/resultsapp/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUserRepository is the subset of user data access the auth service needs
type AuthUserRepository interface {
	// Method GetByEmail retrieves a user by email.
	//
	// If no user exists with such email, "nil" will be returned together with a nil error.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// authService implements credential verification and token issuance
type authService struct {
	userRepo AuthUserRepository
	tokenGen *auth.TokenGenerator
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo AuthUserRepository, tokenGen *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo: userRepo,
		tokenGen: tokenGen,
		logger:   logger,
	}
}

// Login verifies the credentials and issues a signed access token.
// Unknown emails and wrong passwords both return ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenGen.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return "", err
	}

	s.logger.Info("user logged in", zap.Int("user_id", user.ID))
	return token, nil
}
