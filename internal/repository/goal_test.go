package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lifetrackhq/lifetrack/internal/db"
	"github.com/lifetrackhq/lifetrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

func testGoal(title string) *model.Goal {
	now := time.Now()
	return &model.Goal{
		ID:           uuid.New().String(),
		Title:        title,
		GoalType:     model.GoalTypeYearly,
		Category:     model.CategoryHealth,
		StartDate:    model.Today(),
		ProgressType: model.ProgressPercentage,
		Priority:     model.PriorityMedium,
		Status:       model.GoalStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestGoalRoundTrip(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	end := model.Today() + 30
	target := 42.0
	goal := testGoal("Round trip")
	goal.Description = "with **markdown**"
	goal.EndDate = &end
	goal.ProgressType = model.ProgressNumeric
	goal.TargetValue = &target
	goal.Unit = "km"

	require.NoError(t, repo.Create(goal))

	got, err := repo.ByID(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.Title, got.Title)
	assert.Equal(t, goal.Description, got.Description)
	assert.Equal(t, goal.StartDate, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, end, *got.EndDate)
	require.NotNil(t, got.TargetValue)
	assert.Equal(t, target, *got.TargetValue)
	assert.Equal(t, "km", got.Unit)
	assert.Nil(t, got.ParentID)
}

func TestGoalByIDNotFound(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	_, err := repo.ByID("missing")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalUpdateNotFound(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	err := repo.Update(testGoal("Ghost"))
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalsSortByTitle(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	for _, title := range []string{"bravo", "Alpha", "charlie"} {
		require.NoError(t, repo.Create(testGoal(title)))
	}

	goals, err := repo.Goals(GoalSortTitle)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "Alpha", goals[0].Title)
	assert.Equal(t, "bravo", goals[1].Title)
	assert.Equal(t, "charlie", goals[2].Title)
}

func TestGoalsSortByPriority(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	low := testGoal("Low")
	low.Priority = model.PriorityLow
	high := testGoal("High")
	high.Priority = model.PriorityHigh
	require.NoError(t, repo.Create(low))
	require.NoError(t, repo.Create(high))

	goals, err := repo.Goals(GoalSortPriority)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "High", goals[0].Title)
}

func TestActiveGoalsAndCounts(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	active := testGoal("Active")
	done := testGoal("Done")
	done.Status = model.GoalStatusCompleted
	require.NoError(t, repo.Create(active))
	require.NoError(t, repo.Create(done))

	goals, err := repo.ActiveGoals()
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Active", goals[0].Title)

	count, err := repo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestChildGoals(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	parent := testGoal("Parent")
	require.NoError(t, repo.Create(parent))

	for i, title := range []string{"First", "Second", "Third"} {
		child := testGoal(title)
		child.ParentID = &parent.ID
		child.Level = 1
		child.CreatedAt = parent.CreatedAt.Add(time.Duration(i+1) * time.Second)
		if title == "Third" {
			child.Status = model.GoalStatusCompleted
		}
		require.NoError(t, repo.Create(child))
	}

	children, err := repo.ChildGoals(parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, "First", children[0].Title)

	total, err := repo.CountChildren(parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	completed, err := repo.CountCompletedChildren(parent.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, completed)
}

func TestDeleteByIDs(t *testing.T) {
	repo := NewGoalRepository(newTestDB(t))

	a := testGoal("A")
	b := testGoal("B")
	keep := testGoal("Keep")
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))
	require.NoError(t, repo.Create(keep))

	require.NoError(t, repo.DeleteByIDs([]string{a.ID, b.ID}))

	_, err := repo.ByID(a.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = repo.ByID(keep.ID)
	assert.NoError(t, err)

	assert.NoError(t, repo.DeleteByIDs(nil))
}

func testRecord(goalID string, recordType model.RecordType, createdAt time.Time) *model.GoalRecord {
	return &model.GoalRecord{
		ID:         uuid.New().String(),
		GoalID:     goalID,
		RecordType: recordType,
		Title:      "entry",
		RecordDate: model.Today(),
		CreatedAt:  createdAt,
	}
}

func TestRecordsByGoalIDOrdering(t *testing.T) {
	database := newTestDB(t)
	goals := NewGoalRepository(database)
	records := NewGoalRecordRepository(database)

	goal := testGoal("History")
	require.NoError(t, goals.Create(goal))

	base := time.Now()
	require.NoError(t, records.Create(testRecord(goal.ID, model.RecordTypeStart, base)))
	require.NoError(t, records.Create(testRecord(goal.ID, model.RecordTypeProgress, base.Add(time.Second))))
	require.NoError(t, records.Create(testRecord(goal.ID, model.RecordTypeComplete, base.Add(2*time.Second))))

	got, err := records.ByGoalID(goal.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, model.RecordTypeStart, got[0].RecordType)
	assert.Equal(t, model.RecordTypeProgress, got[1].RecordType)
	assert.Equal(t, model.RecordTypeComplete, got[2].RecordType)
}

func TestRecordsByGoalIDs(t *testing.T) {
	database := newTestDB(t)
	goals := NewGoalRepository(database)
	records := NewGoalRecordRepository(database)

	a := testGoal("A")
	b := testGoal("B")
	require.NoError(t, goals.Create(a))
	require.NoError(t, goals.Create(b))

	now := time.Now()
	require.NoError(t, records.Create(testRecord(a.ID, model.RecordTypeStart, now)))
	require.NoError(t, records.Create(testRecord(b.ID, model.RecordTypeStart, now)))

	got, err := records.ByGoalIDs([]string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = records.ByGoalIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDeleteRecordsByGoalIDs(t *testing.T) {
	database := newTestDB(t)
	goals := NewGoalRepository(database)
	records := NewGoalRecordRepository(database)

	goal := testGoal("Doomed")
	require.NoError(t, goals.Create(goal))
	require.NoError(t, records.Create(testRecord(goal.ID, model.RecordTypeStart, time.Now())))

	require.NoError(t, records.DeleteByGoalIDs([]string{goal.ID}))

	got, err := records.ByGoalID(goal.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}
