package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/lifetrackhq/lifetrack/internal/model"
)

type GoalRecordRepository interface {
	Create(record *model.GoalRecord) error
	ByGoalID(goalID string) ([]*model.GoalRecord, error)
	ByGoalIDs(goalIDs []string) ([]*model.GoalRecord, error)
	DeleteByGoalIDs(goalIDs []string) error
}

type goalRecordRepository struct {
	db sqlx.Ext
}

func NewGoalRecordRepository(db sqlx.Ext) GoalRecordRepository {
	return &goalRecordRepository{db: db}
}

func (r *goalRecordRepository) Create(record *model.GoalRecord) error {
	query := `INSERT INTO goal_records (id, goal_id, record_type, title, content,
	                                    progress_value, previous_value, record_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		record.ID,
		record.GoalID,
		record.RecordType,
		record.Title,
		record.Content,
		record.ProgressValue,
		record.PreviousValue,
		record.RecordDate,
		record.CreatedAt,
	)

	return err
}

// ByGoalID returns records oldest first, in insertion order within a day.
func (r *goalRecordRepository) ByGoalID(goalID string) ([]*model.GoalRecord, error) {
	var records []*model.GoalRecord
	query := `SELECT * FROM goal_records WHERE goal_id = $1 ORDER BY created_at ASC, rowid ASC`

	err := sqlx.Select(r.db, &records, query, goalID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *goalRecordRepository) ByGoalIDs(goalIDs []string) ([]*model.GoalRecord, error) {
	var records []*model.GoalRecord
	if len(goalIDs) == 0 {
		return records, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM goal_records WHERE goal_id IN (?) ORDER BY created_at ASC`, goalIDs)
	if err != nil {
		return nil, err
	}

	err = sqlx.Select(r.db, &records, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *goalRecordRepository) DeleteByGoalIDs(goalIDs []string) error {
	if len(goalIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM goal_records WHERE goal_id IN (?)`, goalIDs)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(r.db.Rebind(query), args...)
	return err
}
