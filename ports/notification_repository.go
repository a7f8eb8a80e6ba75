package ports

import (
	"context"

	"gohoras/models"

	"github.com/google/uuid"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	// Create stores a new notification
	Create(ctx context.Context, n *models.Notification) error

	// GetByID retrieves a notification by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)

	// ListForUser returns a user's notifications with resolved contest
	// names, newest first
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)

	// MarkRead marks a single notification as read
	MarkRead(ctx context.Context, id uuid.UUID) error

	// MarkAllRead marks all of a user's unread notifications as read
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// CountUnread returns the number of unread notifications for a user
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}
