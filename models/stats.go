package models

import (
	"time"

	"github.com/google/uuid"
)

// ContestSummary is the slice of the contest echoed back with statistics
type ContestSummary struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TotalHours float64   `json:"totalHours"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

// MemberStats holds one member's aggregate progress within a contest.
// Percentage may exceed 100 when a member overshoots the target; it is
// clamped only at render time, never here.
type MemberStats struct {
	User         Member  `json:"user"`
	TotalHours   float64 `json:"totalHours"`
	Percentage   float64 `json:"percentage"`
	Consistency  float64 `json:"consistency"`
	EntriesCount int     `json:"entriesCount"`
}

// ContestStats is the full statistics payload for a contest: the summary,
// per-member stats sorted by total hours descending, and the weekly hour
// pace a member should average to hit the target on schedule.
type ContestStats struct {
	Contest             ContestSummary `json:"contest"`
	Stats               []MemberStats  `json:"stats"`
	WeeklyExpectedHours float64        `json:"weeklyExpectedHours"`
}
