package database

import (
	"context"

	"github.com/tablero-dev/tablero/internal/models"
)

// UserReader defines read operations for users.
type UserReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByToken(ctx context.Context, token string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	CreateUser(ctx context.Context, user *models.User, apiToken string) error
}

// UserRepository combines all user-related operations.
type UserRepository interface {
	UserReader
	UserWriter
}
