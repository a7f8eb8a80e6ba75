package app

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"gohoras/internal/errors"
	"gohoras/models"
	"gohoras/ports"
)

// StatsService computes per-member progress statistics for a contest from a
// point-in-time snapshot of its closed entries. It performs no mutation.
type StatsService struct {
	contests ports.ContestRepository
	entries  ports.TimeEntryRepository
}

// NewStatsService creates a stats service
func NewStatsService(contests ports.ContestRepository, entries ports.TimeEntryRepository) *StatsService {
	return &StatsService{contests: contests, entries: entries}
}

// ContestStats loads the contest and its closed entries and computes the
// statistics payload.
func (s *StatsService) ContestStats(ctx context.Context, contestID uuid.UUID) (*models.ContestStats, error) {
	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	closed, err := s.entries.ListClosedByContest(ctx, contestID)
	if err != nil {
		return nil, err
	}
	return ComputeStats(contest, closed)
}

// memberAccumulator collects one member's raw aggregates before scoring
type memberAccumulator struct {
	user        models.Member
	totalHours  float64
	entriesSeen int
	weeklyHours map[string]float64
}

// ComputeStats turns a contest and its closed entries into per-member totals,
// percentage of the hour target and a consistency score. Entries owned by
// users no longer on the roster are dropped. The function is pure: identical
// inputs yield identical output.
func ComputeStats(contest *models.Contest, closedEntries []*models.TimeEntry) (*models.ContestStats, error) {
	if contest.EndDate.Before(contest.StartDate) {
		return nil, errors.InternalError("contest date range is invalid")
	}
	if contest.TotalHours <= 0 {
		return nil, errors.InternalError("contest hour target must be positive")
	}

	byMember := make(map[uuid.UUID]*memberAccumulator, len(contest.Members))
	order := make([]uuid.UUID, 0, len(contest.Members))
	for _, m := range contest.Members {
		byMember[m.ID] = &memberAccumulator{
			user:        m,
			weeklyHours: make(map[string]float64),
		}
		order = append(order, m.ID)
	}

	for _, entry := range closedEntries {
		if entry.Open() {
			continue
		}
		acc, ok := byMember[entry.UserID]
		if !ok {
			// historical entry of a removed member
			continue
		}
		acc.totalHours += entry.HoursWorked
		acc.entriesSeen++
		acc.weeklyHours[WeekStart(entry.Date)] += entry.HoursWorked
	}

	totalWeeks := contestWeeks(contest.StartDate, contest.EndDate)
	weeklyExpected := contest.TotalHours / float64(totalWeeks)

	memberStats := make([]models.MemberStats, 0, len(order))
	for _, id := range order {
		acc := byMember[id]
		weekly := make([]float64, 0, len(acc.weeklyHours))
		for _, hours := range acc.weeklyHours {
			weekly = append(weekly, hours)
		}
		memberStats = append(memberStats, models.MemberStats{
			User:         acc.user,
			TotalHours:   round2(acc.totalHours),
			Percentage:   round2(acc.totalHours / contest.TotalHours * 100),
			Consistency:  round2(consistencyScore(weekly)),
			EntriesCount: acc.entriesSeen,
		})
	}

	sort.SliceStable(memberStats, func(i, j int) bool {
		return memberStats[i].TotalHours > memberStats[j].TotalHours
	})

	return &models.ContestStats{
		Contest: models.ContestSummary{
			ID:         contest.ID,
			Name:       contest.Name,
			TotalHours: contest.TotalHours,
			StartDate:  contest.StartDate,
			EndDate:    contest.EndDate,
		},
		Stats:               memberStats,
		WeeklyExpectedHours: round2(weeklyExpected),
	}, nil
}

// WeekStart returns the Monday on or before the given date as a date-only
// string. A Sunday belongs to the week that started six days earlier.
func WeekStart(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1)).Format("2006-01-02")
}

// contestWeeks counts the contest span in whole weeks, rounded up and
// floored at one so same-day contests cannot divide by zero.
func contestWeeks(start, end time.Time) int {
	weeks := int(math.Ceil(end.Sub(start).Hours() / (24 * 7)))
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

// consistencyScore rates how evenly hours are spread across the weeks that
// have entries: 100 minus the coefficient of variation of the weekly totals,
// floored at zero. It measures evenness, not pace against the target. With
// fewer than two weeks of data there is nothing to penalize.
func consistencyScore(weeklyTotals []float64) float64 {
	if len(weeklyTotals) < 2 {
		return 100
	}

	mean, err := stats.Mean(weeklyTotals)
	if err != nil {
		return 100
	}

	// StandardDeviation is the population form
	stdDev, err := stats.StandardDeviation(weeklyTotals)
	if err != nil {
		return 100
	}

	cv := 0.0
	if mean > 0 {
		cv = stdDev / mean * 100
	}
	return math.Max(0, 100-cv)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
