package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gohoras/internal/errors"
	"gohoras/models"
	"gohoras/ports"
)

// NotificationRepositoryImpl implements NotificationRepository for PostgreSQL
type NotificationRepositoryImpl struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new PostgreSQL notification repository
func NewNotificationRepository(db *sqlx.DB) ports.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// Create stores a new notification
func (r *NotificationRepositoryImpl) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO notifications (id, user_id, contest_id, message, type, read, created_at)
		VALUES (:id, :user_id, :contest_id, :message, :type, :read, NOW())
	`, n)
	if err != nil {
		return errors.Wrap(err, "failed to create notification")
	}
	return nil
}

// GetByID retrieves a notification by its ID
func (r *NotificationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	var n models.Notification
	err := r.db.GetContext(ctx, &n, `
		SELECT id, user_id, contest_id, message, type, read, created_at
		FROM notifications
		WHERE id = $1
	`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("notification")
		}
		return nil, errors.Wrap(err, "failed to load notification")
	}
	return &n, nil
}

// ListForUser returns a user's notifications with resolved contest names,
// newest first
func (r *NotificationRepositoryImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT n.id, n.user_id, n.contest_id, n.message, n.type, n.read, n.created_at,
		       c.name AS contest_name
		FROM notifications n
		LEFT JOIN contests c ON c.id = n.contest_id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}
	return notifications, nil
}

// MarkRead marks a single notification as read
func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("notification")
	}
	return nil
}

// MarkAllRead marks all of a user's unread notifications as read
func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET read = true WHERE user_id = $1 AND read = false
	`, userID)
	if err != nil {
		return errors.Wrap(err, "failed to mark notifications read")
	}
	return nil
}

// CountUnread returns the number of unread notifications for a user
func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false
	`, userID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}
	return count, nil
}
