package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gohoras/internal/errors"
	"gohoras/models"
	"gohoras/ports"
)

// ContestRepositoryImpl implements ContestRepository for PostgreSQL
type ContestRepositoryImpl struct {
	db *sqlx.DB
}

// NewContestRepository creates a new PostgreSQL contest repository
func NewContestRepository(db *sqlx.DB) ports.ContestRepository {
	return &ContestRepositoryImpl{db: db}
}

// Create stores a new contest
func (r *ContestRepositoryImpl) Create(ctx context.Context, contest *models.Contest) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO contests (id, name, description, start_date, end_date, total_hours, active, created_by, created_at)
		VALUES (:id, :name, :description, :start_date, :end_date, :total_hours, :active, :created_by, NOW())
	`, contest)
	if err != nil {
		return errors.Wrap(err, "failed to create contest")
	}
	return nil
}

// GetByID retrieves a contest with its resolved members
func (r *ContestRepositoryImpl) GetByID(ctx context.Context, contestID uuid.UUID) (*models.Contest, error) {
	var contest models.Contest
	err := r.db.GetContext(ctx, &contest, `
		SELECT id, name, description, start_date, end_date, total_hours, active, created_by, created_at
		FROM contests
		WHERE id = $1
	`, contestID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("contest")
		}
		return nil, errors.Wrap(err, "failed to load contest")
	}

	members, err := r.membersFor(ctx, contestID)
	if err != nil {
		return nil, err
	}
	contest.Members = members
	return &contest, nil
}

// ListActive returns all active contests with resolved members
func (r *ContestRepositoryImpl) ListActive(ctx context.Context) ([]*models.Contest, error) {
	var contests []*models.Contest
	err := r.db.SelectContext(ctx, &contests, `
		SELECT id, name, description, start_date, end_date, total_hours, active, created_by, created_at
		FROM contests
		WHERE active = true
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contests")
	}
	return r.attachMembers(ctx, contests)
}

// ListForMember returns active contests the user belongs to
func (r *ContestRepositoryImpl) ListForMember(ctx context.Context, userID uuid.UUID) ([]*models.Contest, error) {
	var contests []*models.Contest
	err := r.db.SelectContext(ctx, &contests, `
		SELECT c.id, c.name, c.description, c.start_date, c.end_date, c.total_hours, c.active, c.created_by, c.created_at
		FROM contests c
		JOIN contest_members cm ON cm.contest_id = c.id
		WHERE c.active = true AND cm.user_id = $1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list member contests")
	}
	return r.attachMembers(ctx, contests)
}

// Update persists contest field changes (not membership)
func (r *ContestRepositoryImpl) Update(ctx context.Context, contest *models.Contest) error {
	res, err := r.db.NamedExecContext(ctx, `
		UPDATE contests
		SET name = :name, description = :description, start_date = :start_date,
		    end_date = :end_date, total_hours = :total_hours, active = :active
		WHERE id = :id
	`, contest)
	if err != nil {
		return errors.Wrap(err, "failed to update contest")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("contest")
	}
	return nil
}

// Delete removes a contest and, via cascades, its membership rows
func (r *ContestRepositoryImpl) Delete(ctx context.Context, contestID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contests WHERE id = $1`, contestID)
	if err != nil {
		return errors.Wrap(err, "failed to delete contest")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("contest")
	}
	return nil
}

// AddMember adds a user to the roster; the composite primary key turns a
// duplicate add into a conflict
func (r *ContestRepositoryImpl) AddMember(ctx context.Context, contestID, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contest_members (contest_id, user_id, added_at)
		VALUES ($1, $2, NOW())
	`, contestID, userID)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errors.Conflict("user is already a member of this contest")
		}
		return errors.Wrap(err, "failed to add member")
	}
	return nil
}

// RemoveMember drops a user from the roster, leaving their entries intact
func (r *ContestRepositoryImpl) RemoveMember(ctx context.Context, contestID, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM contest_members WHERE contest_id = $1 AND user_id = $2
	`, contestID, userID)
	if err != nil {
		return errors.Wrap(err, "failed to remove member")
	}
	return nil
}

func (r *ContestRepositoryImpl) membersFor(ctx context.Context, contestID uuid.UUID) ([]models.Member, error) {
	members := []models.Member{}
	err := r.db.SelectContext(ctx, &members, `
		SELECT u.id, u.username, u.profile_photo
		FROM contest_members cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.contest_id = $1
		ORDER BY cm.added_at
	`, contestID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load contest members")
	}
	return members, nil
}

func (r *ContestRepositoryImpl) attachMembers(ctx context.Context, contests []*models.Contest) ([]*models.Contest, error) {
	for _, c := range contests {
		members, err := r.membersFor(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Members = members
	}
	return contests, nil
}
