package app

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"gohoras/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testContest(members ...models.Member) *models.Contest {
	return &models.Contest{
		ID:         uuid.New(),
		Name:       "Q1 Push",
		StartDate:  date(2024, time.January, 1),
		EndDate:    date(2024, time.March, 31),
		TotalHours: 100,
		Active:     true,
		Members:    members,
	}
}

func closedEntry(userID uuid.UUID, day time.Time, hours float64) *models.TimeEntry {
	exit := day.Add(time.Duration(hours * float64(time.Hour)))
	return &models.TimeEntry{
		ID:          uuid.New(),
		UserID:      userID,
		EntryTime:   day,
		ExitTime:    &exit,
		HoursWorked: hours,
		Date:        day,
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{"monday maps to itself", date(2024, time.January, 1), "2024-01-01"},
		{"wednesday maps back to monday", date(2024, time.January, 3), "2024-01-01"},
		{"saturday maps back to monday", date(2024, time.January, 6), "2024-01-01"},
		{"sunday wraps to previous monday", date(2024, time.January, 7), "2024-01-01"},
		{"next monday starts a new week", date(2024, time.January, 8), "2024-01-08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.day); got != tt.want {
				t.Errorf("WeekStart(%s) = %s, want %s", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestComputeStats_MemberWithoutEntries(t *testing.T) {
	member := models.Member{ID: uuid.New(), Username: "idle"}
	result, err := ComputeStats(testContest(member), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Stats) != 1 {
		t.Fatalf("expected 1 member stat, got %d", len(result.Stats))
	}
	s := result.Stats[0]
	if s.TotalHours != 0 || s.Percentage != 0 || s.Consistency != 100 || s.EntriesCount != 0 {
		t.Errorf("idle member stats = %+v, want zeros with consistency 100", s)
	}
}

func TestComputeStats_SingleWeekIsPerfectlyConsistent(t *testing.T) {
	member := models.Member{ID: uuid.New(), Username: "ana"}
	entries := []*models.TimeEntry{
		closedEntry(member.ID, date(2024, time.January, 2), 3),
		closedEntry(member.ID, date(2024, time.January, 4), 9),
	}

	result, err := ComputeStats(testContest(member), entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := result.Stats[0]
	if s.Consistency != 100 {
		t.Errorf("single-week consistency = %v, want 100", s.Consistency)
	}
	if s.TotalHours != 12 {
		t.Errorf("totalHours = %v, want 12", s.TotalHours)
	}
	if s.EntriesCount != 2 {
		t.Errorf("entriesCount = %d, want 2", s.EntriesCount)
	}
}

func TestComputeStats_ZeroVarianceWeeks(t *testing.T) {
	member := models.Member{ID: uuid.New(), Username: "steady"}
	entries := []*models.TimeEntry{
		closedEntry(member.ID, date(2024, time.January, 2), 10),
		closedEntry(member.ID, date(2024, time.January, 9), 10),
		closedEntry(member.ID, date(2024, time.January, 16), 10),
	}

	result, err := ComputeStats(testContest(member), entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Stats[0].Consistency; got != 100 {
		t.Errorf("consistency for [10 10 10] = %v, want 100", got)
	}
}

func TestComputeStats_MaximallyUnevenWeeks(t *testing.T) {
	// weekly totals [0, 20]: mean 10, population stddev 10, cv 100
	member := models.Member{ID: uuid.New(), Username: "bursty"}
	entries := []*models.TimeEntry{
		closedEntry(member.ID, date(2024, time.January, 2), 0),
		closedEntry(member.ID, date(2024, time.January, 9), 20),
	}

	result, err := ComputeStats(testContest(member), entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Stats[0].Consistency; got != 0 {
		t.Errorf("consistency for [0 20] = %v, want 0", got)
	}
}

func TestComputeStats_WeeklyExpectedHours(t *testing.T) {
	member := models.Member{ID: uuid.New(), Username: "ana"}
	contest := testContest(member)
	contest.StartDate = date(2024, time.January, 1)
	contest.EndDate = date(2024, time.January, 15)
	contest.TotalHours = 20

	result, err := ComputeStats(contest, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.WeeklyExpectedHours != 10 {
		t.Errorf("weeklyExpectedHours = %v, want 10", result.WeeklyExpectedHours)
	}
}

func TestComputeStats_SameDayContestCountsAsOneWeek(t *testing.T) {
	member := models.Member{ID: uuid.New(), Username: "ana"}
	contest := testContest(member)
	contest.StartDate = date(2024, time.June, 1)
	contest.EndDate = date(2024, time.June, 1)
	contest.TotalHours = 8

	result, err := ComputeStats(contest, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.WeeklyExpectedHours != 8 {
		t.Errorf("weeklyExpectedHours for same-day contest = %v, want 8", result.WeeklyExpectedHours)
	}
}

func TestComputeStats_RemovedMemberEntriesDropped(t *testing.T) {
	current := models.Member{ID: uuid.New(), Username: "current"}
	former := uuid.New()
	entries := []*models.TimeEntry{
		closedEntry(current.ID, date(2024, time.January, 2), 4),
		closedEntry(former, date(2024, time.January, 2), 40),
	}

	result, err := ComputeStats(testContest(current), entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Stats) != 1 {
		t.Fatalf("expected only current members in stats, got %d rows", len(result.Stats))
	}
	if result.Stats[0].TotalHours != 4 {
		t.Errorf("totalHours = %v, want 4 (former member's 40 hours dropped)", result.Stats[0].TotalHours)
	}
}

func TestComputeStats_OpenEntriesExcluded(t *testing.T) {
	member := models.Member{ID: uuid.New(), Username: "ana"}
	open := &models.TimeEntry{
		ID:        uuid.New(),
		UserID:    member.ID,
		EntryTime: date(2024, time.January, 2),
		Date:      date(2024, time.January, 2),
	}

	result, err := ComputeStats(testContest(member), []*models.TimeEntry{open})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats[0].EntriesCount != 0 {
		t.Errorf("open entry must not be aggregated, entriesCount = %d", result.Stats[0].EntriesCount)
	}
}

func TestComputeStats_SortedByTotalHoursDescending(t *testing.T) {
	a := models.Member{ID: uuid.New(), Username: "a"}
	b := models.Member{ID: uuid.New(), Username: "b"}
	c := models.Member{ID: uuid.New(), Username: "c"}
	entries := []*models.TimeEntry{
		closedEntry(a.ID, date(2024, time.January, 2), 5),
		closedEntry(b.ID, date(2024, time.January, 2), 15),
		closedEntry(c.ID, date(2024, time.January, 2), 10),
	}

	result, err := ComputeStats(testContest(a, b, c), entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []string{result.Stats[0].User.Username, result.Stats[1].User.Username, result.Stats[2].User.Username}
	want := []string{"b", "c", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sort order = %v, want %v", got, want)
	}
}

func TestComputeStats_PercentageNotClamped(t *testing.T) {
	member := models.Member{ID: uuid.New(), Username: "overachiever"}
	contest := testContest(member)
	contest.TotalHours = 10

	result, err := ComputeStats(contest, []*models.TimeEntry{
		closedEntry(member.ID, date(2024, time.January, 2), 25),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats[0].Percentage != 250 {
		t.Errorf("percentage = %v, want 250 (no clamping)", result.Stats[0].Percentage)
	}
}

func TestComputeStats_Pure(t *testing.T) {
	a := models.Member{ID: uuid.New(), Username: "a"}
	b := models.Member{ID: uuid.New(), Username: "b"}
	contest := testContest(a, b)
	entries := []*models.TimeEntry{
		closedEntry(a.ID, date(2024, time.January, 2), 3.33),
		closedEntry(a.ID, date(2024, time.January, 9), 6.67),
		closedEntry(b.ID, date(2024, time.January, 14), 8),
	}

	first, err := ComputeStats(contest, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeStats(contest, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("ComputeStats is not idempotent over identical inputs")
	}
}

func TestComputeStats_InvalidDateRange(t *testing.T) {
	contest := testContest(models.Member{ID: uuid.New()})
	contest.StartDate = date(2024, time.February, 1)
	contest.EndDate = date(2024, time.January, 1)

	if _, err := ComputeStats(contest, nil); err == nil {
		t.Error("expected error for inverted date range")
	}
}

func TestComputeStats_Rounding(t *testing.T) {
	member := models.Member{ID: uuid.New(), Username: "ana"}
	contest := testContest(member)
	contest.TotalHours = 3

	result, err := ComputeStats(contest, []*models.TimeEntry{
		closedEntry(member.ID, date(2024, time.January, 2), 1.333333),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := result.Stats[0]
	if s.TotalHours != 1.33 {
		t.Errorf("totalHours = %v, want 1.33", s.TotalHours)
	}
	if s.Percentage != 44.44 {
		t.Errorf("percentage = %v, want 44.44", s.Percentage)
	}
}
