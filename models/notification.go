package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes a notification for display
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationDanger  NotificationType = "danger"
)

// ValidNotificationType reports whether t is one of the known types
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationInfo, NotificationWarning, NotificationSuccess, NotificationDanger:
		return true
	}
	return false
}

// Notification is a message delivered to a single user, optionally tied to
// a contest
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"userId" db:"user_id"`
	ContestID *uuid.UUID       `json:"contestId" db:"contest_id"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`

	// ContestName is resolved via a left join for list responses
	ContestName *string `json:"contestName,omitempty" db:"contest_name"`
}
