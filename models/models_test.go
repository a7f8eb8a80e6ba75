package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestContest_Validate(t *testing.T) {
	valid := Contest{
		Name:       "Summer Build",
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		TotalHours: 120,
	}

	tests := []struct {
		name        string
		mutate      func(c *Contest)
		expectError bool
	}{
		{
			name:        "Valid contest",
			mutate:      func(c *Contest) {},
			expectError: false,
		},
		{
			name:        "Valid - single day contest",
			mutate:      func(c *Contest) { c.EndDate = c.StartDate },
			expectError: false,
		},
		{
			name:        "Invalid - missing name",
			mutate:      func(c *Contest) { c.Name = "" },
			expectError: true,
		},
		{
			name:        "Invalid - end before start",
			mutate:      func(c *Contest) { c.EndDate = c.StartDate.AddDate(0, 0, -1) },
			expectError: true,
		},
		{
			name:        "Invalid - zero dates",
			mutate:      func(c *Contest) { c.StartDate, c.EndDate = time.Time{}, time.Time{} },
			expectError: true,
		},
		{
			name:        "Invalid - zero hour target",
			mutate:      func(c *Contest) { c.TotalHours = 0 },
			expectError: true,
		},
		{
			name:        "Invalid - negative hour target",
			mutate:      func(c *Contest) { c.TotalHours = -5 },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contest := valid
			tt.mutate(&contest)
			err := contest.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestContest_HasMember(t *testing.T) {
	memberID := uuid.New()
	contest := Contest{Members: []Member{{ID: memberID, Username: "ana"}}}

	if !contest.HasMember(memberID) {
		t.Error("Expected roster member to be found")
	}
	if contest.HasMember(uuid.New()) {
		t.Error("Expected unknown user to not be on the roster")
	}
}

func TestTimeEntry_Close(t *testing.T) {
	entryTime := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	entry := TimeEntry{ID: uuid.New(), EntryTime: entryTime}

	exitTime := entryTime.Add(8 * time.Hour)
	activities := []Activity{{Description: "CAD work"}, {Description: "Wiring"}}
	if err := entry.Close(exitTime, activities); err != nil {
		t.Fatalf("Expected close to succeed, got: %v", err)
	}

	if entry.Open() {
		t.Error("Expected entry to be closed")
	}
	if entry.HoursWorked != 8.0 {
		t.Errorf("Expected 8.00 hours worked, got %.2f", entry.HoursWorked)
	}
	if entry.ActivityCount != 2 {
		t.Errorf("Expected activity count 2, got %d", entry.ActivityCount)
	}

	// second close must be rejected and leave the entry untouched
	if err := entry.Close(exitTime.Add(time.Hour), nil); err == nil {
		t.Error("Expected closing a closed entry to fail")
	}
	if entry.HoursWorked != 8.0 {
		t.Errorf("Expected hours to stay 8.00, got %.2f", entry.HoursWorked)
	}
}

func TestTimeEntry_CloseBeforeEntryRejected(t *testing.T) {
	entryTime := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	entry := TimeEntry{ID: uuid.New(), EntryTime: entryTime}

	if err := entry.Close(entryTime.Add(-time.Minute), nil); err == nil {
		t.Error("Expected exit before entry to be rejected")
	}
	if !entry.Open() {
		t.Error("Expected entry to stay open after rejected close")
	}
}

func TestHoursBetween_Rounding(t *testing.T) {
	entry := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{8 * time.Hour, 8.0},
		{90 * time.Minute, 1.5},
		{20 * time.Minute, 0.33},
		{0, 0},
	}
	for _, tt := range tests {
		got, err := HoursBetween(entry, entry.Add(tt.elapsed))
		if err != nil {
			t.Fatalf("HoursBetween(%v) returned error: %v", tt.elapsed, err)
		}
		if got != tt.want {
			t.Errorf("HoursBetween(%v) = %.2f, want %.2f", tt.elapsed, got, tt.want)
		}
	}
}

func TestActivityList_RoundTrip(t *testing.T) {
	list := ActivityList{{Description: "Assembly", Photo: "/uploads/a.jpg"}}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned ActivityList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(scanned) != 1 || scanned[0].Description != "Assembly" || scanned[0].Photo != "/uploads/a.jpg" {
		t.Errorf("Round trip mangled the list: %+v", scanned)
	}
}

func TestActivityList_NilValueIsEmptyArray(t *testing.T) {
	var list ActivityList
	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if value != "[]" {
		t.Errorf("Expected nil list to serialize as [], got %v", value)
	}

	var scanned ActivityList
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if scanned == nil || len(scanned) != 0 {
		t.Errorf("Expected empty list from NULL, got %+v", scanned)
	}
}

func TestValidNotificationType(t *testing.T) {
	for _, kind := range []NotificationType{NotificationInfo, NotificationWarning, NotificationSuccess, NotificationDanger} {
		if !ValidNotificationType(kind) {
			t.Errorf("Expected %q to be valid", kind)
		}
	}
	if ValidNotificationType("urgent") {
		t.Error("Expected unknown type to be invalid")
	}
}
