package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gohoras/internal/errors"
	"gohoras/models"
	"gohoras/ports"
)

// entryRow joins a time entry with its resolved user identity
type entryRow struct {
	models.TimeEntry
	Username     *string `db:"username"`
	ProfilePhoto *string `db:"profile_photo"`
}

func (row *entryRow) toEntry() *models.TimeEntry {
	entry := row.TimeEntry
	if row.Username != nil {
		photo := ""
		if row.ProfilePhoto != nil {
			photo = *row.ProfilePhoto
		}
		entry.User = &models.Member{ID: entry.UserID, Username: *row.Username, ProfilePhoto: photo}
	}
	return &entry
}

const entryColumns = `
	e.id, e.user_id, e.contest_id, e.entry_time, e.entry_photo, e.exit_time,
	e.exit_photo, e.activities, e.activity_count, e.hours_worked, e.entry_date,
	e.created_at, u.username, u.profile_photo`

// TimeEntryRepositoryImpl implements TimeEntryRepository for PostgreSQL
type TimeEntryRepositoryImpl struct {
	db *sqlx.DB
}

// NewTimeEntryRepository creates a new PostgreSQL time entry repository
func NewTimeEntryRepository(db *sqlx.DB) ports.TimeEntryRepository {
	return &TimeEntryRepositoryImpl{db: db}
}

// Create stores a new open entry. The partial unique index on
// (user_id, contest_id) WHERE exit_time IS NULL makes the open-session
// check-and-create atomic: a concurrent second clock-in loses the race and
// surfaces here as a conflict.
func (r *TimeEntryRepositoryImpl) Create(ctx context.Context, entry *models.TimeEntry) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO time_entries (id, user_id, contest_id, entry_time, entry_photo, exit_time,
		                          exit_photo, activities, activity_count, hours_worked, entry_date, created_at)
		VALUES (:id, :user_id, :contest_id, :entry_time, :entry_photo, :exit_time,
		        :exit_photo, :activities, :activity_count, :hours_worked, :entry_date, NOW())
	`, entry)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errors.Conflict("an open entry already exists, clock out first")
		}
		return errors.Wrap(err, "failed to create time entry")
	}
	return nil
}

// GetByID retrieves an entry by its ID
func (r *TimeEntryRepositoryImpl) GetByID(ctx context.Context, entryID uuid.UUID) (*models.TimeEntry, error) {
	var row entryRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+entryColumns+`
		FROM time_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.id = $1
	`, entryID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("time entry")
		}
		return nil, errors.Wrap(err, "failed to load time entry")
	}
	return row.toEntry(), nil
}

// Close persists the one-time open-to-closed transition. The exit_time
// guard in the WHERE clause makes a double clock-out a no-op that is
// reported as a conflict.
func (r *TimeEntryRepositoryImpl) Close(ctx context.Context, entry *models.TimeEntry) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE time_entries
		SET exit_time = :exit_time, exit_photo = :exit_photo, activities = :activities,
		    activity_count = :activity_count, hours_worked = :hours_worked
		WHERE id = :id AND exit_time IS NULL
	`, entry)
	if err != nil {
		return errors.Wrap(err, "failed to close time entry")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Conflict("entry already has an exit recorded")
	}
	return nil
}

// GetOpen returns the open entry for (user, contest), or nil
func (r *TimeEntryRepositoryImpl) GetOpen(ctx context.Context, userID, contestID uuid.UUID) (*models.TimeEntry, error) {
	var row entryRow
	err := r.db.GetContext(ctx, &row, `
		SELECT `+entryColumns+`
		FROM time_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1 AND e.contest_id = $2 AND e.exit_time IS NULL
	`, userID, contestID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to load open entry")
	}
	return row.toEntry(), nil
}

// ListByContest returns all entries for a contest, newest date first
func (r *TimeEntryRepositoryImpl) ListByContest(ctx context.Context, contestID uuid.UUID) ([]*models.TimeEntry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM time_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.contest_id = $1
		ORDER BY e.entry_date DESC, e.entry_time DESC
	`, contestID)
}

// ListByContestAndUser returns one user's entries, newest date first
func (r *TimeEntryRepositoryImpl) ListByContestAndUser(ctx context.Context, contestID, userID uuid.UUID) ([]*models.TimeEntry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM time_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.contest_id = $1 AND e.user_id = $2
		ORDER BY e.entry_date DESC, e.entry_time DESC
	`, contestID, userID)
}

// ListClosedByContest returns the closed entries that feed the statistics
// engine. Entries of removed members are included here; the engine drops
// them against the current roster.
func (r *TimeEntryRepositoryImpl) ListClosedByContest(ctx context.Context, contestID uuid.UUID) ([]*models.TimeEntry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM time_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.contest_id = $1 AND e.exit_time IS NOT NULL
		ORDER BY e.entry_time
	`, contestID)
}

// ListByContestAndDay returns the calendar-day attendance slice, entry
// time ascending
func (r *TimeEntryRepositoryImpl) ListByContestAndDay(ctx context.Context, contestID uuid.UUID, day time.Time) ([]*models.TimeEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM time_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.contest_id = $1 AND e.entry_date >= $2 AND e.entry_date < $3
		ORDER BY e.entry_time
	`, contestID, start, end)
}

func (r *TimeEntryRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]*models.TimeEntry, error) {
	var rows []entryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list time entries")
	}
	entries := make([]*models.TimeEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].toEntry())
	}
	return entries, nil
}
