package ports

import (
	"context"

	"gohoras/models"

	"github.com/google/uuid"
)

// ContestRepository defines the interface for contest data operations.
// Lookups resolve the member roster with display identities.
type ContestRepository interface {
	// Create stores a new contest
	Create(ctx context.Context, contest *models.Contest) error

	// GetByID retrieves a contest with its resolved members
	GetByID(ctx context.Context, contestID uuid.UUID) (*models.Contest, error)

	// ListActive returns all active contests with resolved members
	ListActive(ctx context.Context) ([]*models.Contest, error)

	// ListForMember returns active contests the user belongs to
	ListForMember(ctx context.Context, userID uuid.UUID) ([]*models.Contest, error)

	// Update persists contest field changes (not membership)
	Update(ctx context.Context, contest *models.Contest) error

	// Delete removes a contest
	Delete(ctx context.Context, contestID uuid.UUID) error

	// AddMember adds a user to the roster; duplicates are a conflict
	AddMember(ctx context.Context, contestID, userID uuid.UUID) error

	// RemoveMember drops a user from the roster. Existing time entries
	// of the removed member are left untouched.
	RemoveMember(ctx context.Context, contestID, userID uuid.UUID) error
}
