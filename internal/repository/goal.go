package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lifetrackhq/lifetrack/internal/model"
)

const (
	GoalSortRecent   = "recent"
	GoalSortProgress = "progress"
	GoalSortPriority = "priority"
	GoalSortTitle    = "title"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID string) (*model.Goal, error)
	Goals(sortBy string) ([]*model.Goal, error)
	ActiveGoals() ([]*model.Goal, error)
	CountActive() (int, error)
	ChildGoals(parentID string) ([]*model.Goal, error)
	CountChildren(parentID string) (int, error)
	CountCompletedChildren(parentID string) (int, error)
	Update(goal *model.Goal) error
	DeleteByIDs(goalIDs []string) error
}

type goalRepository struct {
	db sqlx.Ext
}

// NewGoalRepository builds a repository over a *sqlx.DB or, for operations
// that must be atomic with other writes, a *sqlx.Tx.
func NewGoalRepository(db sqlx.Ext) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, parent_id, level, title, description, goal_type, category,
	                             start_date, end_date, progress_type, target_value, current_value,
	                             unit, priority, status, abandon_reason, is_multi_level, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.ParentID,
		goal.Level,
		goal.Title,
		goal.Description,
		goal.GoalType,
		goal.Category,
		goal.StartDate,
		goal.EndDate,
		goal.ProgressType,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		goal.Priority,
		goal.Status,
		goal.AbandonReason,
		goal.IsMultiLevel,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := sqlx.Get(r.db, goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(sortBy string) ([]*model.Goal, error) {
	var goals []*model.Goal

	// Validate and build ORDER BY clause
	var orderBy string
	switch sortBy {
	case GoalSortProgress:
		orderBy = "ORDER BY current_value DESC, updated_at DESC"
	case GoalSortPriority:
		orderBy = "ORDER BY priority ASC, updated_at DESC"
	case GoalSortTitle:
		orderBy = "ORDER BY LOWER(title) ASC"
	default: // GoalSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	query := `SELECT * FROM goals ` + orderBy

	err := sqlx.Select(r.db, &goals, query)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) ActiveGoals() ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE status = $1 ORDER BY priority ASC, updated_at DESC`

	err := sqlx.Select(r.db, &goals, query, model.GoalStatusActive)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountActive() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE status = $1`
	err := sqlx.Get(r.db, &count, query, model.GoalStatusActive)
	return count, err
}

func (r *goalRepository) ChildGoals(parentID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE parent_id = $1 ORDER BY created_at ASC`

	err := sqlx.Select(r.db, &goals, query, parentID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountChildren(parentID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE parent_id = $1`
	err := sqlx.Get(r.db, &count, query, parentID)
	return count, err
}

func (r *goalRepository) CountCompletedChildren(parentID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE parent_id = $1 AND status = $2`
	err := sqlx.Get(r.db, &count, query, parentID, model.GoalStatusCompleted)
	return count, err
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, status = $3, current_value = $4,
	              abandon_reason = $5, is_multi_level = $6, updated_at = $7
	          WHERE id = $8`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.Status,
		goal.CurrentValue,
		goal.AbandonReason,
		goal.IsMultiLevel,
		time.Now(),
		goal.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) DeleteByIDs(goalIDs []string) error {
	if len(goalIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM goals WHERE id IN (?)`, goalIDs)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(r.db.Rebind(query), args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
