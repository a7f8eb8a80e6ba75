package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gohoras/internal/errors"
	"gohoras/models"
	"gohoras/ports"
)

const uniqueViolation = "23505"

// UserRepositoryImpl implements UserRepository for PostgreSQL
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create stores a new user; duplicate usernames surface as a conflict
func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, profile_photo, created_at)
		VALUES (:id, :username, :password_hash, :role, :profile_photo, NOW())
	`, user)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errors.Conflict("username is already taken")
		}
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by their ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, username, password_hash, role, profile_photo, created_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Wrap(err, "failed to load user")
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, username, password_hash, role, profile_photo, created_at
		FROM users
		WHERE username = $1
	`, username)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Wrap(err, "failed to load user")
	}
	return &user, nil
}

// Update persists username, password hash and profile photo changes
func (r *UserRepositoryImpl) Update(ctx context.Context, user *models.User) error {
	_, err := r.db.NamedExecContext(ctx, `
		UPDATE users
		SET username = :username, password_hash = :password_hash, profile_photo = :profile_photo
		WHERE id = :id
	`, user)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errors.Conflict("username is already taken")
		}
		return errors.Wrap(err, "failed to update user")
	}
	return nil
}

// List returns all users, newest first
func (r *UserRepositoryImpl) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT id, username, password_hash, role, profile_photo, created_at
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return users, nil
}
