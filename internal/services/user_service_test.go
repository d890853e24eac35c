package services

import (
	"context"
	"errors"
	"testing"

	"github.com/resultsapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a function-backed UserRepository for service tests
type mockUserRepository struct {
	createFn        func(ctx context.Context, user *models.User) error
	getByIDFn       func(ctx context.Context, userID int) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	existsByEmailFn func(ctx context.Context, email string, excludeID int) (bool, error)
	updateFn        func(ctx context.Context, user *models.User) error
	deleteFn        func(ctx context.Context, userID int) (int64, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	return m.getByIDFn(ctx, userID)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int) (bool, error) {
	return m.existsByEmailFn(ctx, email, excludeID)
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.updateFn(ctx, user)
}

func (m *mockUserRepository) Delete(ctx context.Context, userID int) (int64, error) {
	return m.deleteFn(ctx, userID)
}

func TestNormalizeRoles(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		expected []string
	}{
		{name: "nil gets the base role", roles: nil, expected: []string{"ROLE_USER"}},
		{name: "base role kept once", roles: []string{"ROLE_USER", "ROLE_USER"}, expected: []string{"ROLE_USER"}},
		{name: "admin appended after base", roles: []string{"ROLE_ADMIN"}, expected: []string{"ROLE_USER", "ROLE_ADMIN"}},
		{name: "duplicates collapsed", roles: []string{"ROLE_ADMIN", "ROLE_ADMIN", "ROLE_USER"}, expected: []string{"ROLE_USER", "ROLE_ADMIN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeRoles(tt.roles))
		})
	}
}

func TestUserService_Create(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		repo := &mockUserRepository{
			existsByEmailFn: func(ctx context.Context, email string, excludeID int) (bool, error) {
				assert.Equal(t, "new@example.com", email)
				assert.Equal(t, 0, excludeID)
				return false, nil
			},
			createFn: func(ctx context.Context, user *models.User) error {
				user.ID = 1
				return nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		user, err := service.Create(context.Background(), &models.CreateUserRequest{
			Email:    "new@example.com",
			Password: "secret",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, []string{"ROLE_USER"}, user.Roles)
		assert.NotEqual(t, "secret", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
	})

	t.Run("rejects taken email", func(t *testing.T) {
		repo := &mockUserRepository{
			existsByEmailFn: func(ctx context.Context, email string, excludeID int) (bool, error) {
				return true, nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		_, err := service.Create(context.Background(), &models.CreateUserRequest{
			Email:    "taken@example.com",
			Password: "secret",
		})

		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("propagates repository error", func(t *testing.T) {
		repo := &mockUserRepository{
			existsByEmailFn: func(ctx context.Context, email string, excludeID int) (bool, error) {
				return false, errors.New("database error")
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		_, err := service.Create(context.Background(), &models.CreateUserRequest{
			Email:    "new@example.com",
			Password: "secret",
		})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUserService_GetByID(t *testing.T) {
	t.Run("returns the user", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return &models.User{ID: userID, Email: "a@example.com", Roles: []string{"ROLE_USER"}}, nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		user, err := service.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
	})

	t.Run("maps missing user to ErrUserNotFound", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return nil, nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		_, err := service.GetByID(context.Background(), 99)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_Update(t *testing.T) {
	stored := func() *models.User {
		return &models.User{
			ID:           5,
			Email:        "old@example.com",
			PasswordHash: "$2a$10$storedhashstoredhashstoredhashstoredhashstoredhashstor",
			Roles:        []string{"ROLE_USER"},
		}
	}
	currentETag := stored().ETag()
	strPtr := func(s string) *string { return &s }

	t.Run("missing user", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return nil, nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		_, err := service.Update(context.Background(), 99, &models.UpdateUserRequest{}, "anything", false)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("missing precondition", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return stored(), nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		_, err := service.Update(context.Background(), 5, &models.UpdateUserRequest{}, "", false)

		assert.ErrorIs(t, err, ErrPreconditionFailed)
	})

	t.Run("stale precondition", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return stored(), nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		_, err := service.Update(context.Background(), 5, &models.UpdateUserRequest{}, "deadbeef", false)

		assert.ErrorIs(t, err, ErrPreconditionFailed)
	})

	t.Run("updates email when free", func(t *testing.T) {
		var updated *models.User
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return stored(), nil
			},
			existsByEmailFn: func(ctx context.Context, email string, excludeID int) (bool, error) {
				assert.Equal(t, "new@example.com", email)
				assert.Equal(t, 5, excludeID)
				return false, nil
			},
			updateFn: func(ctx context.Context, user *models.User) error {
				updated = user
				return nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		user, err := service.Update(context.Background(), 5, &models.UpdateUserRequest{
			Email: strPtr("new@example.com"),
		}, currentETag, false)

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "new@example.com", user.Email)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return stored(), nil
			},
			existsByEmailFn: func(ctx context.Context, email string, excludeID int) (bool, error) {
				return true, nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		_, err := service.Update(context.Background(), 5, &models.UpdateUserRequest{
			Email: strPtr("taken@example.com"),
		}, currentETag, false)

		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rehashes a new password", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return stored(), nil
			},
			updateFn: func(ctx context.Context, user *models.User) error {
				return nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		user, err := service.Update(context.Background(), 5, &models.UpdateUserRequest{
			Password: strPtr("newsecret"),
		}, currentETag, false)

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newsecret")))
	})

	t.Run("non-admin cannot grant admin role", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return stored(), nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		_, err := service.Update(context.Background(), 5, &models.UpdateUserRequest{
			Roles: []string{"ROLE_ADMIN"},
		}, currentETag, false)

		assert.ErrorIs(t, err, ErrRoleNotAllowed)
	})

	t.Run("admin grants admin role", func(t *testing.T) {
		repo := &mockUserRepository{
			getByIDFn: func(ctx context.Context, userID int) (*models.User, error) {
				return stored(), nil
			},
			updateFn: func(ctx context.Context, user *models.User) error {
				return nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		user, err := service.Update(context.Background(), 5, &models.UpdateUserRequest{
			Roles: []string{"ROLE_ADMIN"},
		}, currentETag, true)

		require.NoError(t, err)
		assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, user.Roles)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deletes existing user", func(t *testing.T) {
		repo := &mockUserRepository{
			deleteFn: func(ctx context.Context, userID int) (int64, error) {
				return 1, nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		assert.NoError(t, service.Delete(context.Background(), 1))
	})

	t.Run("maps missing user to ErrUserNotFound", func(t *testing.T) {
		repo := &mockUserRepository{
			deleteFn: func(ctx context.Context, userID int) (int64, error) {
				return 0, nil
			},
		}
		service := NewUserService(repo, zaptest.NewLogger(t))

		assert.ErrorIs(t, service.Delete(context.Background(), 99), ErrUserNotFound)
	})
}
