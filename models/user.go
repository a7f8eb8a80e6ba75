package models

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which administrative operations a user may perform
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered team member
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	ProfilePhoto string    `json:"profilePhoto" db:"profile_photo"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Member is the resolved identity attached to contests, entries and stats
type Member struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	ProfilePhoto string    `json:"profilePhoto" db:"profile_photo"`
}
