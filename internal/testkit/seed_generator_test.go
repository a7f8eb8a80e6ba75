package testkit

import (
	"testing"
	"time"

	"gohoras/models"
)

func smallConfig() SeedConfig {
	return SeedConfig{
		MemberCount:      3,
		Weeks:            2,
		TargetHours:      40,
		MeanSessionHours: 3.0,
		SessionStdDev:    1.0,
		AttendanceRate:   0.8,
		StartDate:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Seed:             42,
	}
}

func TestSeedGenerator_Basic(t *testing.T) {
	fixture, err := NewSeedGenerator(smallConfig()).Generate()
	if err != nil {
		t.Fatalf("Failed to generate fixture: %v", err)
	}

	// admin plus members
	if len(fixture.Users) != 4 {
		t.Errorf("Expected 4 users, got %d", len(fixture.Users))
	}
	if fixture.Users[0].Role != models.RoleAdmin {
		t.Error("Expected first user to be the admin")
	}
	if len(fixture.Contest.Members) != 3 {
		t.Errorf("Expected 3 roster members, got %d", len(fixture.Contest.Members))
	}
	if len(fixture.Entries) == 0 {
		t.Error("Expected entries to be generated")
	}

	for i, entry := range fixture.Entries {
		if entry.ExitTime == nil {
			t.Errorf("Entry %d is open; seed entries must be closed", i)
		}
		if entry.HoursWorked < 0.25 || entry.HoursWorked > 10 {
			t.Errorf("Entry %d has out of range hours %.2f", i, entry.HoursWorked)
		}
		if entry.ContestID != fixture.Contest.ID {
			t.Errorf("Entry %d belongs to the wrong contest", i)
		}
		if entry.Date.Weekday() == time.Saturday || entry.Date.Weekday() == time.Sunday {
			t.Errorf("Entry %d falls on a weekend", i)
		}
	}
}

func TestSeedGenerator_Reproducible(t *testing.T) {
	first, err := NewSeedGenerator(smallConfig()).Generate()
	if err != nil {
		t.Fatalf("Failed to generate fixture: %v", err)
	}
	second, err := NewSeedGenerator(smallConfig()).Generate()
	if err != nil {
		t.Fatalf("Failed to generate fixture: %v", err)
	}

	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("Same seed produced %d then %d entries", len(first.Entries), len(second.Entries))
	}
	for i := range first.Entries {
		if first.Entries[i].HoursWorked != second.Entries[i].HoursWorked {
			t.Errorf("Entry %d hours differ between runs: %.2f vs %.2f",
				i, first.Entries[i].HoursWorked, second.Entries[i].HoursWorked)
		}
	}
}

func TestSeedGenerator_RejectsEmptyRoster(t *testing.T) {
	config := smallConfig()
	config.MemberCount = 0
	if _, err := NewSeedGenerator(config).Generate(); err == nil {
		t.Error("Expected error for zero members")
	}
}
