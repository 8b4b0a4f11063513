package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lifetrackhq/lifetrack/internal/markdown"
	"github.com/lifetrackhq/lifetrack/internal/model"
	"github.com/lifetrackhq/lifetrack/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
	parser      *markdown.Parser
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		parser:      markdown.NewParser(),
	}
}

type createGoalRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	GoalType     string   `json:"goal_type"`
	Category     string   `json:"category"`
	StartDate    int64    `json:"start_date"`
	EndDate      *int64   `json:"end_date"`
	ProgressType string   `json:"progress_type"`
	TargetValue  *float64 `json:"target_value"`
	Unit         string   `json:"unit"`
	Priority     int      `json:"priority"`
	ParentID     *string  `json:"parent_id"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := service.CreateGoalParams{
		Title:        req.Title,
		Description:  req.Description,
		GoalType:     model.GoalType(req.GoalType),
		Category:     model.Category(req.Category),
		StartDate:    model.Day(req.StartDate),
		ProgressType: model.ProgressType(req.ProgressType),
		TargetValue:  req.TargetValue,
		Unit:         req.Unit,
		Priority:     req.Priority,
		ParentID:     req.ParentID,
	}
	if req.EndDate != nil {
		end := model.Day(*req.EndDate)
		params.EndDate = &end
	}

	goal, err := h.goalService.Create(params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort")

	goals, err := h.goalService.Goals(sortBy)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if goals == nil {
		goals = []*model.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

type goalDetailResponse struct {
	Goal             *model.Goal         `json:"goal"`
	Records          []*model.GoalRecord `json:"records"`
	ProgressFraction float64             `json:"progress_fraction"`
}

func (h *GoalHandler) Detail(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	goal, records, err := h.goalService.GoalWithRecords(goalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goalDetailResponse{
		Goal:             goal,
		Records:          records,
		ProgressFraction: goal.ProgressFraction(),
	})
}

func (h *GoalHandler) Children(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	// Parent must exist even when it has no children yet
	_, err := h.goalService.ByID(goalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	children, err := h.goalService.ChildGoals(goalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if children == nil {
		children = []*model.Goal{}
	}
	writeJSON(w, http.StatusOK, children)
}

type recordProgressRequest struct {
	Delta   float64 `json:"delta"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
}

func (h *GoalHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	var req recordProgressRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.RecordProgress(goalID, req.Delta, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	goal, err := h.goalService.Complete(goalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

type abandonGoalRequest struct {
	Reason string `json:"reason"`
}

func (h *GoalHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	var req abandonGoalRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	goal, err := h.goalService.Abandon(goalID, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	err := h.goalService.DeleteWithChildren(goalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	count, err := h.goalService.CountActiveGoals()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"active_goals": count})
}

func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	goals, records, err := h.goalService.Snapshot()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=goals-export.json")
	writeJSON(w, http.StatusOK, map[string]any{
		"exported_at": time.Now().UTC(),
		"goals":       goals,
		"records":     records,
	})
}

// Report renders a goal and its history as a standalone HTML document. Goal
// descriptions and record contents are treated as markdown.
func (h *GoalHandler) Report(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	goal, records, err := h.goalService.GoalWithRecords(goalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	doc := buildReportMarkdown(goal, records)

	html, err := h.parser.Parse([]byte(doc))
	if err != nil {
		slog.Error("failed to render report", "error", err, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func buildReportMarkdown(goal *model.Goal, records []*model.GoalRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", goal.Title)
	if goal.Description != "" {
		b.WriteString(goal.Description + "\n\n")
	}

	fmt.Fprintf(&b, "**Status:** %s · **Progress:** %.0f%%", goal.Status, goal.ProgressFraction()*100)
	if goal.ProgressType == model.ProgressNumeric && goal.TargetValue != nil {
		fmt.Fprintf(&b, " (%.1f / %.1f %s)", goal.CurrentValue, *goal.TargetValue, goal.Unit)
	}
	b.WriteString("\n\n## History\n\n")

	for _, record := range records {
		fmt.Fprintf(&b, "- **%s** %s: %s", record.RecordDate, record.RecordType, record.Title)
		if record.ProgressValue != nil {
			fmt.Fprintf(&b, " (%+.1f)", *record.ProgressValue)
		}
		b.WriteString("\n")
		if record.Content != "" {
			fmt.Fprintf(&b, "  %s\n", record.Content)
		}
	}

	return b.String()
}
