package testkit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"gohoras/models"
)

// SeedConfig configures the synthetic contest generator
type SeedConfig struct {
	MemberCount      int       `json:"member_count"`
	Weeks            int       `json:"weeks"`
	TargetHours      float64   `json:"target_hours"`
	MeanSessionHours float64   `json:"mean_session_hours"`
	SessionStdDev    float64   `json:"session_std_dev"`
	AttendanceRate   float64   `json:"attendance_rate"`
	StartDate        time.Time `json:"start_date"`
	Seed             uint64    `json:"seed"`
}

// DefaultSeedConfig returns sensible defaults for demo data generation
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		MemberCount:      8,
		Weeks:            6,
		TargetHours:      100,
		MeanSessionHours: 3.0,
		SessionStdDev:    1.0,
		AttendanceRate:   0.6,
		StartDate:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Seed:             42,
	}
}

// Fixture is a complete synthetic contest: accounts, the contest with its
// roster, and closed time entries spanning the configured weeks.
type Fixture struct {
	Users   []*models.User
	Contest *models.Contest
	Entries []*models.TimeEntry
}

// SeedGenerator produces reproducible demo data. Session lengths follow a
// normal distribution and daily attendance a Bernoulli draw, so member
// consistency scores spread out the way real rosters do.
type SeedGenerator struct {
	config     SeedConfig
	sessionLen distuv.Normal
	attends    distuv.Bernoulli
}

// NewSeedGenerator creates a generator from the given config
func NewSeedGenerator(config SeedConfig) *SeedGenerator {
	src := rand.NewSource(config.Seed)
	return &SeedGenerator{
		config:     config,
		sessionLen: distuv.Normal{Mu: config.MeanSessionHours, Sigma: config.SessionStdDev, Src: src},
		attends:    distuv.Bernoulli{P: config.AttendanceRate, Src: src},
	}
}

// Generate builds the full fixture
func (g *SeedGenerator) Generate() (*Fixture, error) {
	if g.config.MemberCount <= 0 || g.config.Weeks <= 0 {
		return nil, fmt.Errorf("member count and weeks must be positive")
	}

	adminID := uuid.New()
	users := []*models.User{{
		ID:       adminID,
		Username: "admin",
		Role:     models.RoleAdmin,
	}}
	for i := 0; i < g.config.MemberCount; i++ {
		users = append(users, &models.User{
			ID:       uuid.New(),
			Username: fmt.Sprintf("member%02d", i+1),
			Role:     models.RoleUser,
		})
	}

	start := g.config.StartDate
	end := start.AddDate(0, 0, g.config.Weeks*7-1)
	contest := &models.Contest{
		ID:          uuid.New(),
		Name:        "Demo Contest",
		Description: "Synthetic contest seeded for local development.",
		StartDate:   start,
		EndDate:     end,
		TotalHours:  g.config.TargetHours,
		Active:      true,
		CreatedBy:   adminID,
	}
	for _, u := range users[1:] {
		contest.Members = append(contest.Members, models.Member{ID: u.ID, Username: u.Username})
	}

	var entries []*models.TimeEntry
	for _, u := range users[1:] {
		entries = append(entries, g.memberEntries(u.ID, contest)...)
	}
	return &Fixture{Users: users, Contest: contest, Entries: entries}, nil
}

// memberEntries walks every weekday of the contest and draws whether the
// member showed up, and for how long
func (g *SeedGenerator) memberEntries(userID uuid.UUID, contest *models.Contest) []*models.TimeEntry {
	var entries []*models.TimeEntry
	for day := contest.StartDate; !day.After(contest.EndDate); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if g.attends.Rand() == 0 {
			continue
		}

		hours := roundQuarter(g.sessionLen.Rand())
		if hours < 0.25 {
			hours = 0.25
		}
		if hours > 10 {
			hours = 10
		}

		entryTime := time.Date(day.Year(), day.Month(), day.Day(), 16, 0, 0, 0, time.UTC)
		exitTime := entryTime.Add(time.Duration(hours * float64(time.Hour)))
		entries = append(entries, &models.TimeEntry{
			ID:          uuid.New(),
			UserID:      userID,
			ContestID:   contest.ID,
			Date:        day,
			EntryTime:   entryTime,
			ExitTime:    &exitTime,
			HoursWorked: hours,
			Activities: models.ActivityList{{
				Description: "Seeded work session",
			}},
			ActivityCount: 1,
		})
	}
	return entries
}

// roundQuarter snaps hours to 15 minute increments, matching how people
// actually log time
func roundQuarter(hours float64) float64 {
	return float64(int(hours*4+0.5)) / 4
}
