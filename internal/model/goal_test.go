package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		want float64
	}{
		{"percentage zero", Goal{ProgressType: ProgressPercentage, CurrentValue: 0}, 0},
		{"percentage half", Goal{ProgressType: ProgressPercentage, CurrentValue: 50}, 0.5},
		{"percentage capped", Goal{ProgressType: ProgressPercentage, CurrentValue: 150}, 1},
		{"numeric half", Goal{ProgressType: ProgressNumeric, CurrentValue: 5, TargetValue: floatPtr(10)}, 0.5},
		{"numeric over target capped", Goal{ProgressType: ProgressNumeric, CurrentValue: 15, TargetValue: floatPtr(10)}, 1},
		{"numeric negative floored", Goal{ProgressType: ProgressNumeric, CurrentValue: -3, TargetValue: floatPtr(10)}, 0},
		{"numeric no target", Goal{ProgressType: ProgressNumeric, CurrentValue: 5}, 0},
		{"numeric zero target", Goal{ProgressType: ProgressNumeric, CurrentValue: 5, TargetValue: floatPtr(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.goal.ProgressFraction())
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&Goal{Status: GoalStatusActive}).IsTerminal())
	assert.True(t, (&Goal{Status: GoalStatusCompleted}).IsTerminal())
	assert.True(t, (&Goal{Status: GoalStatusAbandoned}).IsTerminal())
}

func TestDay(t *testing.T) {
	ts := time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC)
	day := DayOf(ts)

	assert.Equal(t, "2026-03-15", day.String())
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), day.Time())

	// Any moment of the same UTC day maps to the same Day
	assert.Equal(t, day, DayOf(time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)))
	assert.Equal(t, day+1, DayOf(time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC)))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, GoalTypeYearly.Valid())
	assert.False(t, GoalType("weekly").Valid())

	assert.True(t, CategoryFinance.Valid())
	assert.False(t, Category("sports").Valid())

	assert.True(t, ProgressNumeric.Valid())
	assert.False(t, ProgressType("steps").Valid())
}
