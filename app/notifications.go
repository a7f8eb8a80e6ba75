package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gohoras/internal/errors"
	"gohoras/models"
	"gohoras/ports"
)

// NotificationService creates notifications for single users and fans out
// bulk sends concurrently.
type NotificationService struct {
	users         ports.UserRepository
	notifications ports.NotificationRepository
}

// NewNotificationService creates a notification service
func NewNotificationService(users ports.UserRepository, notifications ports.NotificationRepository) *NotificationService {
	return &NotificationService{users: users, notifications: notifications}
}

// Send creates one notification. The target user must exist; an unknown
// type falls back to info.
func (s *NotificationService) Send(ctx context.Context, userID uuid.UUID, contestID *uuid.UUID, message string, kind models.NotificationType) (*models.Notification, error) {
	if message == "" {
		return nil, errors.ValidationError("message is required")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if !models.ValidNotificationType(kind) {
		kind = models.NotificationInfo
	}

	n := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		ContestID: contestID,
		Message:   message,
		Type:      kind,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// SendBulk delivers the same message to many users concurrently. Unknown
// recipients are skipped rather than failing the whole batch; the created
// notifications come back in recipient order.
func (s *NotificationService) SendBulk(ctx context.Context, userIDs []uuid.UUID, contestID *uuid.UUID, message string, kind models.NotificationType) ([]*models.Notification, error) {
	if len(userIDs) == 0 {
		return nil, errors.ValidationError("at least one recipient is required")
	}
	if message == "" {
		return nil, errors.ValidationError("message is required")
	}

	created := make([]*models.Notification, len(userIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, userID := range userIDs {
		i, userID := i, userID
		g.Go(func() error {
			n, err := s.Send(gctx, userID, contestID, message, kind)
			if err != nil {
				if errors.GetCode(err) == errors.CodeNotFound {
					return nil
				}
				return err
			}
			mu.Lock()
			created[i] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*models.Notification, 0, len(created))
	for _, n := range created {
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkRead marks a notification as read; only the recipient may do so
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*models.Notification, error) {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, errors.Forbidden("notification belongs to a different user")
	}
	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		return nil, err
	}
	n.Read = true
	return n, nil
}
