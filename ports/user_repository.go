package ports

import (
	"context"

	"gohoras/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create stores a new user; a duplicate username is a conflict
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Update persists username, password hash and profile photo changes
	Update(ctx context.Context, user *models.User) error

	// List returns all users
	List(ctx context.Context) ([]*models.User, error)
}
