// Package repositories contains the database access layer
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/resultsapp/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository implements the user data access methods
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rolesToColumn serializes a role set for storage
func rolesToColumn(roles []string) string {
	return strings.Join(roles, ",")
}

// rolesFromColumn deserializes a stored role set
func rolesFromColumn(column string) []string {
	if column == "" {
		return []string{}
	}
	return strings.Split(column, ",")
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, roles)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, rolesToColumn(user.Roles))
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID.
// Returns nil without error when no such user exists.
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, roles
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	var roles string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&roles,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	user.Roles = rolesFromColumn(roles)
	return user, nil
}

// GetByEmail retrieves a user by email.
// Returns nil without error when no such user exists.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, roles
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	user := &models.User{}
	var roles string
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&roles,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	user.Roles = rolesFromColumn(roles)
	return user, nil
}

// ExistsByEmail checks if a user exists with the given email, excluding
// excludeID (0 excludes nobody)
func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE email = ? AND id != ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check email existence", zap.Error(err), zap.String("email", email))
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// Update persists the mutable user attributes
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = ?, password_hash = ?, roles = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash, rolesToColumn(user.Roles), user.ID)
	if err != nil {
		r.logger.Error("failed to update user", zap.Error(err), zap.Int("user_id", user.ID))
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Delete removes a user by ID.
// Returns the number of deleted rows.
func (r *userRepository) Delete(ctx context.Context, userID int) (int64, error) {
	query := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to delete user", zap.Error(err), zap.Int("user_id", userID))
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected, nil
}
