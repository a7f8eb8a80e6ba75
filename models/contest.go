package models

import (
	"time"

	"github.com/google/uuid"

	"gohoras/internal/errors"
)

// Contest is a time-boxed team goal with an hour target and a member roster
type Contest struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	TotalHours  float64   `json:"totalHours" db:"total_hours"`
	Active      bool      `json:"active" db:"active"`
	CreatedBy   uuid.UUID `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Members is resolved from the membership table, ordered by join time
	Members []Member `json:"members" db:"-"`
}

// Validate checks the contest invariants: a name, a non-inverted date
// range and a positive hour target.
func (c *Contest) Validate() error {
	if c.Name == "" {
		return errors.ValidationError("contest name is required")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return errors.ValidationError("start and end dates are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return errors.ValidationError("end date must not be before start date")
	}
	if c.TotalHours <= 0 {
		return errors.ValidationError("total hours must be positive")
	}
	return nil
}

// HasMember reports whether the given user is currently on the roster
func (c *Contest) HasMember(userID uuid.UUID) bool {
	for _, m := range c.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
