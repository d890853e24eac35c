package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/resultsapp/backend/internal/models"
	"go.uber.org/zap"
)

// sortColumns whitelists the sortable result columns.
// Anything else falls back to the primary key.
var sortColumns = map[string]string{
	"id":     "r.id",
	"result": "r.result",
	"time":   "r.time",
}

// resultRepository implements the result data access methods
type resultRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sql.DB, logger *zap.Logger) *resultRepository {
	return &resultRepository{
		db:     db,
		logger: logger,
	}
}

// orderBy resolves a sort key against the whitelist
func orderBy(sort string) string {
	if column, ok := sortColumns[sort]; ok {
		return column
	}
	return sortColumns["id"]
}

const resultColumns = `
	r.id, r.result, r.time,
	u.id, u.email, u.password_hash, u.roles
`

// scanResult scans one joined result row
func scanResult(scanner interface{ Scan(...any) error }) (*models.Result, error) {
	result := &models.Result{}
	var roles string
	err := scanner.Scan(
		&result.ID,
		&result.Result,
		&result.Time,
		&result.User.ID,
		&result.User.Email,
		&result.User.PasswordHash,
		&roles,
	)
	if err != nil {
		return nil, err
	}
	result.User.Roles = rolesFromColumn(roles)
	return result, nil
}

// Create inserts a new result into the database
func (r *resultRepository) Create(ctx context.Context, result *models.Result) error {
	query := `
		INSERT INTO results (user_id, result, time)
		VALUES (?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query, result.User.ID, result.Result, result.Time)
	if err != nil {
		r.logger.Error("failed to create result", zap.Error(err))
		return fmt.Errorf("failed to create result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	result.ID = int(id)
	return nil
}

// GetByID retrieves a result with its owning user.
// Returns nil without error when no such result exists.
func (r *resultRepository) GetByID(ctx context.Context, resultID int) (*models.Result, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = ?
	`

	result, err := scanResult(r.db.QueryRowContext(ctx, query, resultID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("failed to get result by id", zap.Error(err), zap.Int("result_id", resultID))
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	return result, nil
}

// GetAll retrieves every result ordered ascending by the given sort key
func (r *resultRepository) GetAll(ctx context.Context, sort string) ([]models.Result, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results r
		JOIN users u ON u.id = r.user_id
		ORDER BY ` + orderBy(sort) + ` ASC
	`

	return r.queryResults(ctx, query)
}

// GetAllByUserID retrieves a user's results ordered ascending by the given sort key
func (r *resultRepository) GetAllByUserID(ctx context.Context, userID int, sort string) ([]models.Result, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = ?
		ORDER BY ` + orderBy(sort) + ` ASC
	`

	return r.queryResults(ctx, query, userID)
}

// queryResults runs a multi-row result query and scans all rows
func (r *resultRepository) queryResults(ctx context.Context, query string, args ...any) ([]models.Result, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query results", zap.Error(err))
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := []models.Result{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return results, nil
}

// Update persists the mutable result attributes
func (r *resultRepository) Update(ctx context.Context, result *models.Result) error {
	query := `
		UPDATE results
		SET result = ?, time = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, result.Result, result.Time, result.ID)
	if err != nil {
		r.logger.Error("failed to update result", zap.Error(err), zap.Int("result_id", result.ID))
		return fmt.Errorf("failed to update result: %w", err)
	}

	return nil
}

// Delete removes a result by ID.
// Returns the number of deleted rows.
func (r *resultRepository) Delete(ctx context.Context, resultID int) (int64, error) {
	query := `DELETE FROM results WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, resultID)
	if err != nil {
		r.logger.Error("failed to delete result", zap.Error(err), zap.Int("result_id", resultID))
		return 0, fmt.Errorf("failed to delete result: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected, nil
}

// DeleteAllByUserID removes every result owned by a user within one
// transaction and returns the number of deleted rows
func (r *resultRepository) DeleteAllByUserID(ctx context.Context, userID int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM results WHERE user_id = ?`, userID)
	if err != nil {
		r.logger.Error("failed to delete results for user", zap.Error(err), zap.Int("user_id", userID))
		return 0, fmt.Errorf("failed to delete results for user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return affected, nil
}
