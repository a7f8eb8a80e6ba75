package ports

import (
	"context"
	"time"

	"gohoras/models"

	"github.com/google/uuid"
)

// TimeEntryRepository defines the interface for time entry data operations
type TimeEntryRepository interface {
	// Create stores a new open entry. The storage layer enforces at most
	// one open entry per (user, contest); a second one is a conflict.
	Create(ctx context.Context, entry *models.TimeEntry) error

	// GetByID retrieves an entry by its ID
	GetByID(ctx context.Context, entryID uuid.UUID) (*models.TimeEntry, error)

	// Close persists the one-time open-to-closed transition. Returns a
	// conflict if the entry was already closed.
	Close(ctx context.Context, entry *models.TimeEntry) error

	// GetOpen returns the open entry for (user, contest), or nil
	GetOpen(ctx context.Context, userID, contestID uuid.UUID) (*models.TimeEntry, error)

	// ListByContest returns all entries for a contest with resolved
	// users, newest date first
	ListByContest(ctx context.Context, contestID uuid.UUID) ([]*models.TimeEntry, error)

	// ListByContestAndUser returns one user's entries for a contest,
	// newest date first
	ListByContestAndUser(ctx context.Context, contestID, userID uuid.UUID) ([]*models.TimeEntry, error)

	// ListClosedByContest returns the closed entries for a contest with
	// resolved users, the statistics engine's input
	ListClosedByContest(ctx context.Context, contestID uuid.UUID) ([]*models.TimeEntry, error)

	// ListByContestAndDay returns entries whose date falls on the given
	// calendar day, ordered by entry time ascending
	ListByContestAndDay(ctx context.Context, contestID uuid.UUID, day time.Time) ([]*models.TimeEntry, error)
}
