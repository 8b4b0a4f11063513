package model

import (
	"time"
)

type GoalType string

const (
	GoalTypeYearly    GoalType = "yearly"
	GoalTypeQuarterly GoalType = "quarterly"
	GoalTypeMonthly   GoalType = "monthly"
	GoalTypeLongTerm  GoalType = "long_term"
	GoalTypeCustom    GoalType = "custom"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeYearly, GoalTypeQuarterly, GoalTypeMonthly, GoalTypeLongTerm, GoalTypeCustom:
		return true
	}
	return false
}

type Category string

const (
	CategoryCareer       Category = "career"
	CategoryFinance      Category = "finance"
	CategoryHealth       Category = "health"
	CategoryLearning     Category = "learning"
	CategoryRelationship Category = "relationship"
	CategoryLifestyle    Category = "lifestyle"
	CategoryHobby        Category = "hobby"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryCareer, CategoryFinance, CategoryHealth, CategoryLearning,
		CategoryRelationship, CategoryLifestyle, CategoryHobby:
		return true
	}
	return false
}

type ProgressType string

const (
	// ProgressPercentage interprets current_value on a 0-100 scale.
	ProgressPercentage ProgressType = "percentage"
	// ProgressNumeric counts toward target_value in the goal's unit.
	ProgressNumeric ProgressType = "numeric"
)

func (p ProgressType) Valid() bool {
	return p == ProgressPercentage || p == ProgressNumeric
}

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Goal is a trackable objective. Goals form a single-level hierarchy:
// a goal with ParentID set is a sub-goal of its parent (Level = parent.Level+1,
// top-level goals have Level 0). Sub-goals have independent lifecycles; only
// deletion cascades from parent to children.
type Goal struct {
	ID            string       `json:"id" db:"id"`
	ParentID      *string      `json:"parent_id" db:"parent_id"`
	Level         int          `json:"level" db:"level"`
	Title         string       `json:"title" db:"title"`
	Description   string       `json:"description" db:"description"`
	GoalType      GoalType     `json:"goal_type" db:"goal_type"`
	Category      Category     `json:"category" db:"category"`
	StartDate     Day          `json:"start_date" db:"start_date"`
	EndDate       *Day         `json:"end_date" db:"end_date"`
	ProgressType  ProgressType `json:"progress_type" db:"progress_type"`
	TargetValue   *float64     `json:"target_value" db:"target_value"`
	CurrentValue  float64      `json:"current_value" db:"current_value"`
	Unit          string       `json:"unit" db:"unit"`
	Priority      int          `json:"priority" db:"priority"`
	Status        GoalStatus   `json:"status" db:"status"`
	AbandonReason string       `json:"abandon_reason" db:"abandon_reason"`
	IsMultiLevel  bool         `json:"is_multi_level" db:"is_multi_level"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// ProgressFraction reports completion in [0, 1]. Numeric goals without a
// positive target report 0.
func (g *Goal) ProgressFraction() float64 {
	var fraction float64
	switch g.ProgressType {
	case ProgressNumeric:
		if g.TargetValue == nil || *g.TargetValue <= 0 {
			return 0
		}
		fraction = g.CurrentValue / *g.TargetValue
	case ProgressPercentage:
		fraction = g.CurrentValue / 100
	}

	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

func (g *Goal) IsTerminal() bool {
	return g.Status == GoalStatusCompleted || g.Status == GoalStatusAbandoned
}
