package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gohoras/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createUsersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create users table")
	}

	if err := r.createContestsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create contests table")
	}

	if err := r.createContestMembersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create contest_members table")
	}

	if err := r.createTimeEntriesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create time_entries table")
	}

	if err := r.createNotificationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create notifications table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createUsersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(50) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			profile_photo TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createContestsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS contests (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			start_date TIMESTAMP WITH TIME ZONE NOT NULL,
			end_date TIMESTAMP WITH TIME ZONE NOT NULL,
			total_hours DECIMAL(10,2) NOT NULL DEFAULT 100,
			active BOOLEAN NOT NULL DEFAULT true,
			created_by UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CONSTRAINT valid_date_range CHECK (end_date >= start_date),
			CONSTRAINT positive_target CHECK (total_hours > 0)
		)
	`)
	return err
}

func (r *MigrationRunner) createContestMembersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS contest_members (
			contest_id UUID NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			added_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			PRIMARY KEY (contest_id, user_id)
		)
	`)
	return err
}

func (r *MigrationRunner) createTimeEntriesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS time_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id),
			contest_id UUID NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
			entry_time TIMESTAMP WITH TIME ZONE NOT NULL,
			entry_photo TEXT NOT NULL DEFAULT '',
			exit_time TIMESTAMP WITH TIME ZONE,
			exit_photo TEXT NOT NULL DEFAULT '',
			activities JSONB NOT NULL DEFAULT '[]',
			activity_count INTEGER NOT NULL DEFAULT 0,
			hours_worked DECIMAL(10,2) NOT NULL DEFAULT 0,
			entry_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			CONSTRAINT exit_after_entry CHECK (exit_time IS NULL OR exit_time >= entry_time)
		)
	`)
	return err
}

func (r *MigrationRunner) createNotificationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			contest_id UUID REFERENCES contests(id) ON DELETE SET NULL,
			message TEXT NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'info',
			read BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		// One open session per (user, contest): clock-in's check-and-create
		// is atomic because the second insert trips this index
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_one_open ON time_entries(user_id, contest_id) WHERE exit_time IS NULL",

		"CREATE INDEX IF NOT EXISTS idx_entries_contest ON time_entries(contest_id)",
		"CREATE INDEX IF NOT EXISTS idx_entries_contest_user ON time_entries(contest_id, user_id)",
		"CREATE INDEX IF NOT EXISTS idx_entries_contest_date ON time_entries(contest_id, entry_date)",
		"CREATE INDEX IF NOT EXISTS idx_entries_contest_closed ON time_entries(contest_id) WHERE exit_time IS NOT NULL",

		"CREATE INDEX IF NOT EXISTS idx_members_user ON contest_members(user_id)",

		"CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_notifications_unread ON notifications(user_id) WHERE read = false",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			return err
		}
	}

	return nil
}
