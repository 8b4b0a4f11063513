package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lifetrackhq/lifetrack/internal/db"
	"github.com/lifetrackhq/lifetrack/internal/model"
	"github.com/lifetrackhq/lifetrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*GoalHandler, *service.GoalService) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	svc := service.NewGoalService(database)
	return NewGoalHandler(svc), svc
}

func TestCreateGoal(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"title":"Run a marathon","goal_type":"yearly","category":"health","progress_type":"percentage"}`
	r := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var goal model.Goal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal))
	assert.Equal(t, "Run a marathon", goal.Title)
	assert.Equal(t, model.GoalStatusActive, goal.Status)
}

func TestCreateGoalValidationError(t *testing.T) {
	h, _ := newTestHandler(t)

	body := `{"title":"","goal_type":"yearly","category":"health","progress_type":"percentage"}`
	r := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Create(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGoalBadJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader("{"))
	w := httptest.NewRecorder()

	h.Create(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetailNotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/api/goals/missing", nil)
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	h.Detail(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordProgressOnCompletedGoalConflicts(t *testing.T) {
	h, svc := newTestHandler(t)

	goal, err := svc.Create(service.CreateGoalParams{
		Title:        "Already done",
		GoalType:     model.GoalTypeCustom,
		Category:     model.CategoryHobby,
		ProgressType: model.ProgressPercentage,
	})
	require.NoError(t, err)
	_, err = svc.Complete(goal.ID)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/goals/"+goal.ID+"/progress", strings.NewReader(`{"delta":5}`))
	r.SetPathValue("id", goal.ID)
	w := httptest.NewRecorder()

	h.RecordProgress(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteGoal(t *testing.T) {
	h, svc := newTestHandler(t)

	goal, err := svc.Create(service.CreateGoalParams{
		Title:        "Short lived",
		GoalType:     model.GoalTypeCustom,
		Category:     model.CategoryHobby,
		ProgressType: model.ProgressPercentage,
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodDelete, "/api/goals/"+goal.ID, nil)
	r.SetPathValue("id", goal.ID)
	w := httptest.NewRecorder()

	h.Delete(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestReportRendersHTML(t *testing.T) {
	h, svc := newTestHandler(t)

	goal, err := svc.Create(service.CreateGoalParams{
		Title:        "Write a novel",
		Description:  "A story about *goals*.",
		GoalType:     model.GoalTypeLongTerm,
		Category:     model.CategoryHobby,
		ProgressType: model.ProgressPercentage,
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/goals/"+goal.ID+"/report", nil)
	r.SetPathValue("id", goal.ID)
	w := httptest.NewRecorder()

	h.Report(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Write a novel")
}
