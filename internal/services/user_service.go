package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/resultsapp/backend/internal/auth"
	"github.com/resultsapp/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is filled in on success.
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by ID.
	//
	// If no user exists with such ID, "nil" will be returned together with a nil error.
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists, ignoring the
	// user identified by "excludeID" (0 excludes nobody).
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error)
	// Method Update persists the mutable user attributes.
	//
	// If some error occurs during the update, the error will be returned.
	Update(ctx context.Context, user *models.User) error
	// Method Delete removes a user by ID and returns the number of deleted rows.
	//
	// If some error occurs during deletion, the error will be returned.
	Delete(ctx context.Context, userID int) (int64, error)
}

// userService implements the user business rules
type userService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// hashPassword hashes a plaintext password for storage
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// normalizeRoles ensures every user carries the base role exactly once
func normalizeRoles(roles []string) []string {
	normalized := []string{auth.RoleUser}
	for _, role := range roles {
		if role != auth.RoleUser && !slices.Contains(normalized, role) {
			normalized = append(normalized, role)
		}
	}
	return normalized
}

// Create creates a new user with a hashed password.
// Returns ErrEmailTaken when the email is already in use.
func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Roles:        normalizeRoles(req.Roles),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int("user_id", user.ID))
	return user, nil
}

// GetByID retrieves a user.
// Returns ErrUserNotFound when no such user exists.
func (s *userService) GetByID(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies a partial update to a user under a strong optimistic lock.
//
// "ifMatch" must equal the user's current ETag or ErrPreconditionFailed is
// returned. Email changes check uniqueness (ErrEmailTaken). Password changes
// re-hash. Granting the admin role requires "callerIsAdmin" (ErrRoleNotAllowed).
func (s *userService) Update(ctx context.Context, userID int, req *models.UpdateUserRequest, ifMatch string, callerIsAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if ifMatch == "" || ifMatch != user.ETag() {
		return nil, ErrPreconditionFailed
	}

	if req.Email != nil {
		exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email, userID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		passwordHash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	if req.Roles != nil {
		if slices.Contains(req.Roles, auth.RoleAdmin) && !callerIsAdmin {
			return nil, ErrRoleNotAllowed
		}
		user.Roles = normalizeRoles(req.Roles)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.Int("user_id", user.ID))
	return user, nil
}

// Delete removes a user.
// Returns ErrUserNotFound when no such user exists.
func (s *userService) Delete(ctx context.Context, userID int) error {
	affected, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	s.logger.Info("user deleted", zap.Int("user_id", userID))
	return nil
}
