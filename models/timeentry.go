package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"gohoras/internal/errors"
)

// Activity is a unit of work reported at clock-out. It has no lifecycle of
// its own; it lives and dies with its owning entry.
type Activity struct {
	Description string `json:"description"`
	Photo       string `json:"photo"`
}

// ActivityList stores activities as a JSONB column on the entry row
type ActivityList []Activity

// Value implements driver.Valuer for JSONB storage
func (a ActivityList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB storage
func (a *ActivityList) Scan(src interface{}) error {
	if src == nil {
		*a = ActivityList{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ActivityList", src)
	}
	return json.Unmarshal(b, a)
}

// TimeEntry is one clock-in/clock-out session for a user within a contest.
// An entry with no exit time is open; setting the exit time closes it and
// the entry is never mutated again.
type TimeEntry struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	UserID        uuid.UUID    `json:"userId" db:"user_id"`
	ContestID     uuid.UUID    `json:"contestId" db:"contest_id"`
	EntryTime     time.Time    `json:"entryTime" db:"entry_time"`
	EntryPhoto    string       `json:"entryPhoto" db:"entry_photo"`
	ExitTime      *time.Time   `json:"exitTime" db:"exit_time"`
	ExitPhoto     string       `json:"exitPhoto" db:"exit_photo"`
	Activities    ActivityList `json:"activities" db:"activities"`
	ActivityCount int          `json:"activityCount" db:"activity_count"`
	HoursWorked   float64      `json:"hoursWorked" db:"hours_worked"`
	Date          time.Time    `json:"date" db:"entry_date"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`

	// User is the resolved identity when listings join against users
	User *Member `json:"user,omitempty" db:"-"`
}

// Open reports whether the session has not been clocked out yet
func (e *TimeEntry) Open() bool {
	return e.ExitTime == nil
}

// Close transitions the entry from open to closed, attaching the reported
// activities and deriving the worked hours. Closing an already closed entry
// or closing before the entry time is rejected.
func (e *TimeEntry) Close(exitTime time.Time, activities []Activity) error {
	if !e.Open() {
		return errors.Conflict("entry is already closed")
	}
	hours, err := HoursBetween(e.EntryTime, exitTime)
	if err != nil {
		return err
	}
	e.ExitTime = &exitTime
	e.Activities = activities
	e.ActivityCount = len(activities)
	e.HoursWorked = hours
	return nil
}

// HoursBetween returns the elapsed hours between entry and exit rounded to
// two decimal places. An exit before the entry is a validation error.
func HoursBetween(entry, exit time.Time) (float64, error) {
	if exit.Before(entry) {
		return 0, errors.ValidationError("exit time must not be before entry time")
	}
	return round2(exit.Sub(entry).Hours()), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
