package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tablero-dev/tablero/internal/models"
)

// UserRepo handles all user-related database operations.
type UserRepo struct {
	db *sql.DB
}

// CreateUser inserts a new user with the given API token.
func (r *UserRepo) CreateUser(ctx context.Context, user *models.User, apiToken string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, image, api_token) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, ptrToNullString(user.Image), apiToken,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user '%s': %w", user.Email, err)
	}
	return nil
}

// GetUserByID retrieves a user by its ID
func (r *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, image, created_at FROM users WHERE id = ?`, id))
}

// GetUserByToken retrieves the user owning the given API token.
func (r *UserRepo) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, image, created_at FROM users WHERE api_token = ?`, token))
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, image, created_at FROM users WHERE email = ?`, email))
}

func (r *UserRepo) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var image sql.NullString
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &image, &user.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Image = nullStringToPtr(image)
	return user, nil
}
