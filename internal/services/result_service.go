package services

import (
	"context"
	"time"

	"github.com/resultsapp/backend/internal/models"
	"go.uber.org/zap"
)

// ResultRepository is the interface that wraps methods for Result table data access
type ResultRepository interface {
	// Method Create inserts a new result into the database.
	//
	// "result" parameter must reference an existing user; its ID is filled in on success.
	// If some error occurs during result creation, the error will be returned.
	Create(ctx context.Context, result *models.Result) error
	// Method GetByID retrieves a result together with its owning user.
	//
	// If no result exists with such ID, "nil" will be returned together with a nil error.
	// If some error occurs during data retrieval, the error will be returned together with "nil" value.
	GetByID(ctx context.Context, resultID int) (*models.Result, error)
	// Method GetAll retrieves every result ordered ascending by the given sort key.
	GetAll(ctx context.Context, sort string) ([]models.Result, error)
	// Method GetAllByUserID retrieves a user's results ordered ascending by the given sort key.
	GetAllByUserID(ctx context.Context, userID int, sort string) ([]models.Result, error)
	// Method Update persists the mutable result attributes.
	Update(ctx context.Context, result *models.Result) error
	// Method Delete removes a result by ID and returns the number of deleted rows.
	Delete(ctx context.Context, resultID int) (int64, error)
	// Method DeleteAllByUserID removes every result owned by a user in one
	// transaction and returns the number of deleted rows.
	DeleteAllByUserID(ctx context.Context, userID int) (int64, error)
}

// ResultUserRepository is the subset of user data access the result service needs
type ResultUserRepository interface {
	// Method GetByID retrieves a user by ID.
	//
	// If no user exists with such ID, "nil" will be returned together with a nil error.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// resultService implements the result business rules
type resultService struct {
	resultRepo ResultRepository
	userRepo   ResultUserRepository
	logger     *zap.Logger
}

// NewResultService creates a new result service
func NewResultService(resultRepo ResultRepository, userRepo ResultUserRepository, logger *zap.Logger) *resultService {
	return &resultService{
		resultRepo: resultRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Create persists a new measurement for an existing user.
// Returns ErrUserNotFound when the referenced user does not exist.
func (s *resultService) Create(ctx context.Context, userID int, value float64, t time.Time) (*models.Result, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	result := &models.Result{
		User:   *user,
		Result: value,
		Time:   t,
	}

	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}

	s.logger.Info("result created", zap.Int("result_id", result.ID), zap.Int("user_id", userID))
	return result, nil
}

// GetByID retrieves a result.
// Returns ErrResultNotFound when no such result exists.
func (s *resultService) GetByID(ctx context.Context, resultID int) (*models.Result, error) {
	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	return result, nil
}

// List retrieves results ordered ascending by sort ("id", "result" or "time";
// anything else falls back to "id"). Admin callers see every result, other
// callers only their own.
func (s *resultService) List(ctx context.Context, callerID int, callerIsAdmin bool, sort string) ([]models.Result, error) {
	if callerIsAdmin {
		return s.resultRepo.GetAll(ctx, sort)
	}
	return s.resultRepo.GetAllByUserID(ctx, callerID, sort)
}

// Update applies a partial update to an already loaded result.
// Absent fields keep their current values.
func (s *resultService) Update(ctx context.Context, result *models.Result, req *models.UpdateResultRequest) error {
	if req.Result != nil {
		result.Result = *req.Result
	}
	if req.Time != nil {
		t, err := models.ParseTime(*req.Time)
		if err != nil {
			return err
		}
		result.Time = t
	}

	if err := s.resultRepo.Update(ctx, result); err != nil {
		return err
	}

	s.logger.Info("result updated", zap.Int("result_id", result.ID))
	return nil
}

// Delete removes a result.
// Returns ErrResultNotFound when no such result exists.
func (s *resultService) Delete(ctx context.Context, resultID int) error {
	affected, err := s.resultRepo.Delete(ctx, resultID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrResultNotFound
	}

	s.logger.Info("result deleted", zap.Int("result_id", resultID))
	return nil
}

// DeleteAllForUser removes every result owned by a user.
// Returns ErrNoResults when the user owns none.
func (s *resultService) DeleteAllForUser(ctx context.Context, userID int) error {
	affected, err := s.resultRepo.DeleteAllByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoResults
	}

	s.logger.Info("results deleted for user", zap.Int("user_id", userID), zap.Int64("count", affected))
	return nil
}
