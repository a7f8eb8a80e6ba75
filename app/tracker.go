package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gohoras/internal/errors"
	"gohoras/models"
	"gohoras/ports"
)

// TrackerService drives the clock-in/clock-out session lifecycle. A session
// is open from clock-in until the single clock-out transition closes it;
// the storage layer guarantees at most one open session per (user, contest).
type TrackerService struct {
	contests ports.ContestRepository
	entries  ports.TimeEntryRepository

	// now is swappable for tests
	now func() time.Time
}

// NewTrackerService creates a tracker service
func NewTrackerService(contests ports.ContestRepository, entries ports.TimeEntryRepository) *TrackerService {
	return &TrackerService{
		contests: contests,
		entries:  entries,
		now:      time.Now,
	}
}

// ClockOutRequest carries the clock-out payload. ActivityCount drives how
// many activities get created; descriptions and photos are optional per
// index and fall back to an ordinal placeholder and an empty reference.
type ClockOutRequest struct {
	ActivityCount int
	Descriptions  []string
	PhotoPaths    []string
	ExitPhoto     string
}

// ClockIn opens a new session for the user in the contest. The caller must
// be a current member, and the database rejects a second open session for
// the same (user, contest) pair.
func (s *TrackerService) ClockIn(ctx context.Context, userID, contestID uuid.UUID, entryPhoto string) (*models.TimeEntry, error) {
	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if !contest.HasMember(userID) {
		return nil, errors.Forbidden("you are not a member of this contest")
	}

	now := s.now()
	entry := &models.TimeEntry{
		ID:         uuid.New(),
		UserID:     userID,
		ContestID:  contestID,
		EntryTime:  now,
		EntryPhoto: entryPhoto,
		Activities: models.ActivityList{},
		Date:       now,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ClockOut closes an open session, attaching the reported activities and
// deriving the worked hours. Only the owning user may close it, and only
// once.
func (s *TrackerService) ClockOut(ctx context.Context, userID, entryID uuid.UUID, req ClockOutRequest) (*models.TimeEntry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, errors.Forbidden("entry belongs to a different user")
	}
	if !entry.Open() {
		return nil, errors.Conflict("entry already has an exit recorded")
	}
	if req.ActivityCount < 0 {
		return nil, errors.ValidationError("activity count must not be negative")
	}

	activities := make([]models.Activity, req.ActivityCount)
	for i := range activities {
		desc := ""
		if i < len(req.Descriptions) {
			desc = req.Descriptions[i]
		}
		if desc == "" {
			desc = fmt.Sprintf("Activity %d", i+1)
		}
		photo := ""
		if i < len(req.PhotoPaths) {
			photo = req.PhotoPaths[i]
		}
		activities[i] = models.Activity{Description: desc, Photo: photo}
	}

	if err := entry.Close(s.now(), activities); err != nil {
		return nil, err
	}
	if req.ExitPhoto != "" {
		entry.ExitPhoto = req.ExitPhoto
	}

	if err := s.entries.Close(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// OpenEntry returns the user's open session for a contest, or nil when the
// user is clocked out.
func (s *TrackerService) OpenEntry(ctx context.Context, userID, contestID uuid.UUID) (*models.TimeEntry, error) {
	return s.entries.GetOpen(ctx, userID, contestID)
}

// ContestEntries returns all entries for a contest. Only members and admins
// may see the full list.
func (s *TrackerService) ContestEntries(ctx context.Context, user *models.User, contestID uuid.UUID) ([]*models.TimeEntry, error) {
	contest, err := s.contests.GetByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if !contest.HasMember(user.ID) && !user.IsAdmin() {
		return nil, errors.Forbidden("you are not a member of this contest")
	}
	return s.entries.ListByContest(ctx, contestID)
}

// MyEntries returns the user's own entries for a contest
func (s *TrackerService) MyEntries(ctx context.Context, userID, contestID uuid.UUID) ([]*models.TimeEntry, error) {
	return s.entries.ListByContestAndUser(ctx, contestID, userID)
}

// DailyAttendance returns every entry, open or closed, whose date falls on
// the given calendar day, ordered by entry time ascending.
func (s *TrackerService) DailyAttendance(ctx context.Context, contestID uuid.UUID, day time.Time) ([]*models.TimeEntry, error) {
	return s.entries.ListByContestAndDay(ctx, contestID, day)
}
