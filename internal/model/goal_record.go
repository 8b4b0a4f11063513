package model

import (
	"time"
)

type RecordType string

const (
	RecordTypeStart    RecordType = "start"
	RecordTypeProgress RecordType = "progress"
	RecordTypeComplete RecordType = "complete"
	RecordTypeAbandon  RecordType = "abandon"
)

// GoalRecord is an append-only log entry for one event against a goal.
// Records are never updated; they are deleted only when their goal is deleted.
// ProgressValue is the delta applied and is set only for progress records.
// PreviousValue is the goal's current_value immediately before the record.
type GoalRecord struct {
	ID            string     `json:"id" db:"id"`
	GoalID        string     `json:"goal_id" db:"goal_id"`
	RecordType    RecordType `json:"record_type" db:"record_type"`
	Title         string     `json:"title" db:"title"`
	Content       string     `json:"content" db:"content"`
	ProgressValue *float64   `json:"progress_value" db:"progress_value"`
	PreviousValue float64    `json:"previous_value" db:"previous_value"`
	RecordDate    Day        `json:"record_date" db:"record_date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
