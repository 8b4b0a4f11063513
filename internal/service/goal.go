package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lifetrackhq/lifetrack/internal/db"
	"github.com/lifetrackhq/lifetrack/internal/model"
	"github.com/lifetrackhq/lifetrack/internal/repository"
	"github.com/lifetrackhq/lifetrack/internal/validation"
)

var (
	// ErrValidation wraps all bad-input failures. Nothing is written when it
	// is returned.
	ErrValidation = errors.New("invalid goal input")

	// ErrGoalNotActive is returned for any attempted transition out of a
	// terminal state (completed or abandoned).
	ErrGoalNotActive = errors.New("goal is not active")
)

// GoalService owns goal entities, their parent/child relationships, progress
// computation and the status state machine. Every mutating operation runs as
// one transaction: the goal row update and the appended record either both
// commit or neither does.
type GoalService struct {
	db      *sqlx.DB
	repo    repository.GoalRepository
	records repository.GoalRecordRepository
}

func NewGoalService(database *sqlx.DB) *GoalService {
	return &GoalService{
		db:      database,
		repo:    repository.NewGoalRepository(database),
		records: repository.NewGoalRecordRepository(database),
	}
}

type CreateGoalParams struct {
	Title        string
	Description  string
	GoalType     model.GoalType
	Category     model.Category
	StartDate    model.Day
	EndDate      *model.Day
	ProgressType model.ProgressType
	TargetValue  *float64
	Unit         string
	Priority     int
	ParentID     *string
}

func (p *CreateGoalParams) validate() error {
	err := validation.ValidateTitle(p.Title)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if !p.GoalType.Valid() {
		return fmt.Errorf("%w: unknown goal type %q", ErrValidation, p.GoalType)
	}

	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, p.Category)
	}

	if !p.ProgressType.Valid() {
		return fmt.Errorf("%w: unknown progress type %q", ErrValidation, p.ProgressType)
	}

	if p.ProgressType == model.ProgressNumeric && (p.TargetValue == nil || *p.TargetValue <= 0) {
		return fmt.Errorf("%w: numeric goals require a positive target value", ErrValidation)
	}

	if p.Priority != 0 {
		err = validation.ValidatePriority(p.Priority)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrValidation, err)
		}
	}

	return nil
}

// Create creates an active goal and appends its start record. With ParentID
// set the goal becomes a sub-goal: it inherits goal type, category, unit and
// end date from the parent and sits one level below it.
func (s *GoalService) Create(params CreateGoalParams) (*model.Goal, error) {
	err := params.validate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	goal := &model.Goal{
		ID:           uuid.New().String(),
		ParentID:     params.ParentID,
		Title:        params.Title,
		Description:  params.Description,
		GoalType:     params.GoalType,
		Category:     params.Category,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		ProgressType: params.ProgressType,
		TargetValue:  params.TargetValue,
		CurrentValue: 0,
		Unit:         params.Unit,
		Priority:     params.Priority,
		Status:       model.GoalStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if goal.StartDate == 0 {
		goal.StartDate = model.Today()
	}
	if goal.Priority == 0 {
		goal.Priority = model.PriorityMedium
	}

	err = db.Transact(s.db, func(tx *sqlx.Tx) error {
		goals := repository.NewGoalRepository(tx)
		records := repository.NewGoalRecordRepository(tx)

		if params.ParentID != nil {
			parent, err := goals.ByID(*params.ParentID)
			if err != nil {
				return err
			}

			goal.Level = parent.Level + 1
			goal.GoalType = parent.GoalType
			goal.Category = parent.Category
			goal.Unit = parent.Unit
			goal.EndDate = parent.EndDate

			if !parent.IsMultiLevel {
				parent.IsMultiLevel = true
				err = goals.Update(parent)
				if err != nil {
					return err
				}
			}
		}

		err := goals.Create(goal)
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		return records.Create(newGoalRecord(goal, model.RecordTypeStart, goal.Title, goal.Description, nil, 0))
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// RecordProgress applies a progress delta (negative deltas are corrections)
// and appends a progress record. Percentage goals floor at 0; numeric goals
// keep negative values as-is. Reaching the target value completes the goal in
// the same transaction, appending a second, complete record.
func (s *GoalService) RecordProgress(goalID string, delta float64, title, content string) (*model.Goal, error) {
	var goal *model.Goal

	err := db.Transact(s.db, func(tx *sqlx.Tx) error {
		goals := repository.NewGoalRepository(tx)
		records := repository.NewGoalRecordRepository(tx)

		var err error
		goal, err = goals.ByID(goalID)
		if err != nil {
			return err
		}

		if goal.IsTerminal() {
			return ErrGoalNotActive
		}

		previous := goal.CurrentValue
		newValue := previous + delta
		if goal.ProgressType == model.ProgressPercentage && newValue < 0 {
			newValue = 0
		}

		goal.CurrentValue = newValue
		err = goals.Update(goal)
		if err != nil {
			return err
		}

		err = records.Create(newGoalRecord(goal, model.RecordTypeProgress, title, content, &delta, previous))
		if err != nil {
			return err
		}

		if goal.TargetValue != nil && newValue >= *goal.TargetValue {
			return completeGoal(goals, records, goal)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Complete marks a goal completed. For a sub-goal of a percentage-typed
// parent, the parent's aggregate progress is recomputed from the child
// completion ratio in the same transaction; numeric-typed parents are left
// untouched and must be updated by the caller.
func (s *GoalService) Complete(goalID string) (*model.Goal, error) {
	var goal *model.Goal

	err := db.Transact(s.db, func(tx *sqlx.Tx) error {
		goals := repository.NewGoalRepository(tx)
		records := repository.NewGoalRecordRepository(tx)

		var err error
		goal, err = goals.ByID(goalID)
		if err != nil {
			return err
		}

		if goal.IsTerminal() {
			return ErrGoalNotActive
		}

		err = completeGoal(goals, records, goal)
		if err != nil {
			return err
		}

		if goal.ParentID == nil {
			return nil
		}

		return recomputeParent(goals, records, *goal.ParentID, goal.Title)
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// completeGoal transitions an active goal to completed and appends the
// complete record. Callers hold the terminal-state guard.
func completeGoal(goals repository.GoalRepository, records repository.GoalRecordRepository, goal *model.Goal) error {
	goal.Status = model.GoalStatusCompleted
	err := goals.Update(goal)
	if err != nil {
		return err
	}

	return records.Create(newGoalRecord(goal, model.RecordTypeComplete, goal.Title, "", nil, goal.CurrentValue))
}

// recomputeParent writes completedChildren/totalChildren*100 into a
// percentage-typed parent through the same progress path as RecordProgress.
// An aggregate of 100 completes the parent.
func recomputeParent(goals repository.GoalRepository, records repository.GoalRecordRepository, parentID, childTitle string) error {
	parent, err := goals.ByID(parentID)
	if err != nil {
		return err
	}

	if parent.Status != model.GoalStatusActive || parent.ProgressType != model.ProgressPercentage {
		return nil
	}

	total, err := goals.CountChildren(parent.ID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	completed, err := goals.CountCompletedChildren(parent.ID)
	if err != nil {
		return err
	}

	previous := parent.CurrentValue
	progress := float64(completed) / float64(total) * 100
	delta := progress - previous

	parent.CurrentValue = progress
	err = goals.Update(parent)
	if err != nil {
		return err
	}

	err = records.Create(newGoalRecord(parent, model.RecordTypeProgress, "Sub-goal completed", childTitle, &delta, previous))
	if err != nil {
		return err
	}

	if progress >= 100 {
		return completeGoal(goals, records, parent)
	}

	return nil
}

// Abandon transitions an active goal to abandoned with a reason.
func (s *GoalService) Abandon(goalID, reason string) (*model.Goal, error) {
	var goal *model.Goal

	err := db.Transact(s.db, func(tx *sqlx.Tx) error {
		goals := repository.NewGoalRepository(tx)
		records := repository.NewGoalRecordRepository(tx)

		var err error
		goal, err = goals.ByID(goalID)
		if err != nil {
			return err
		}

		if goal.IsTerminal() {
			return ErrGoalNotActive
		}

		goal.Status = model.GoalStatusAbandoned
		goal.AbandonReason = reason
		err = goals.Update(goal)
		if err != nil {
			return err
		}

		return records.Create(newGoalRecord(goal, model.RecordTypeAbandon, goal.Title, reason, nil, goal.CurrentValue))
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// DeleteWithChildren deletes a goal, its sub-goals and every record owned by
// any of them. Destructive, no undo.
func (s *GoalService) DeleteWithChildren(goalID string) error {
	return db.Transact(s.db, func(tx *sqlx.Tx) error {
		goals := repository.NewGoalRepository(tx)
		records := repository.NewGoalRecordRepository(tx)

		goal, err := goals.ByID(goalID)
		if err != nil {
			return err
		}

		children, err := goals.ChildGoals(goal.ID)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(children)+1)
		ids = append(ids, goal.ID)
		for _, child := range children {
			ids = append(ids, child.ID)
		}

		err = records.DeleteByGoalIDs(ids)
		if err != nil {
			return err
		}

		return goals.DeleteByIDs(ids)
	})
}

func (s *GoalService) ByID(goalID string) (*model.Goal, error) {
	return s.repo.ByID(goalID)
}

func (s *GoalService) Goals(sortBy string) ([]*model.Goal, error) {
	return s.repo.Goals(sortBy)
}

func (s *GoalService) ActiveGoals() ([]*model.Goal, error) {
	return s.repo.ActiveGoals()
}

func (s *GoalService) CountActiveGoals() (int, error) {
	return s.repo.CountActive()
}

func (s *GoalService) ChildGoals(parentID string) ([]*model.Goal, error) {
	return s.repo.ChildGoals(parentID)
}

func (s *GoalService) CountChildGoals(parentID string) (int, error) {
	return s.repo.CountChildren(parentID)
}

func (s *GoalService) CountCompletedChildGoals(parentID string) (int, error) {
	return s.repo.CountCompletedChildren(parentID)
}

func (s *GoalService) GoalWithRecords(goalID string) (*model.Goal, []*model.GoalRecord, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, nil, err
	}

	records, err := s.records.ByGoalID(goalID)
	if err != nil {
		return nil, nil, err
	}

	return goal, records, nil
}

// Snapshot returns all goals and records, used by export and backup.
func (s *GoalService) Snapshot() ([]*model.Goal, []*model.GoalRecord, error) {
	goals, err := s.repo.Goals(repository.GoalSortRecent)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(goals))
	for i, goal := range goals {
		ids[i] = goal.ID
	}

	records, err := s.records.ByGoalIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	return goals, records, nil
}

func newGoalRecord(goal *model.Goal, recordType model.RecordType, title, content string, progressValue *float64, previous float64) *model.GoalRecord {
	return &model.GoalRecord{
		ID:            uuid.New().String(),
		GoalID:        goal.ID,
		RecordType:    recordType,
		Title:         title,
		Content:       content,
		ProgressValue: progressValue,
		PreviousValue: previous,
		RecordDate:    model.Today(),
		CreatedAt:     time.Now(),
	}
}
