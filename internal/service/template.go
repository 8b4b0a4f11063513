package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lifetrackhq/lifetrack/internal/markdown"
	"github.com/lifetrackhq/lifetrack/internal/model"
)

var ErrTemplateNotFound = errors.New("goal template not found")

// GoalTemplate is a markdown goal preset: frontmatter carries the goal
// fields, the body becomes the description.
type GoalTemplate struct {
	Name         string             `json:"name"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	GoalType     model.GoalType     `json:"goal_type"`
	Category     model.Category     `json:"category"`
	ProgressType model.ProgressType `json:"progress_type"`
	TargetValue  *float64           `json:"target_value"`
	Unit         string             `json:"unit"`
	Priority     int                `json:"priority"`
	DurationDays int                `json:"duration_days"`
}

// TemplateService loads goal presets from CONTENT_PATH/templates/*.md.
type TemplateService struct {
	contentPath string
	parser      *markdown.Parser
	goals       *GoalService
}

func NewTemplateService(contentPath string, goals *GoalService) *TemplateService {
	return &TemplateService{
		contentPath: contentPath,
		parser:      markdown.NewParser(),
		goals:       goals,
	}
}

func (s *TemplateService) templatesDir() string {
	return filepath.Join(s.contentPath, "templates")
}

func (s *TemplateService) Templates() ([]*GoalTemplate, error) {
	entries, err := os.ReadDir(s.templatesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []*GoalTemplate{}, nil
		}
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	var templates []*GoalTemplate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		template, err := s.load(entry.Name())
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}

	return templates, nil
}

func (s *TemplateService) ByName(name string) (*GoalTemplate, error) {
	templates, err := s.Templates()
	if err != nil {
		return nil, err
	}

	for _, template := range templates {
		if template.Name == name {
			return template, nil
		}
	}

	return nil, ErrTemplateNotFound
}

// CreateFromTemplate instantiates a goal from a preset. A non-empty title
// overrides the template's title; the start date is today and the end date is
// derived from the template's duration.
func (s *TemplateService) CreateFromTemplate(name, title string) (*model.Goal, error) {
	template, err := s.ByName(name)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = template.Title
	}

	params := CreateGoalParams{
		Title:        title,
		Description:  template.Description,
		GoalType:     template.GoalType,
		Category:     template.Category,
		StartDate:    model.Today(),
		ProgressType: template.ProgressType,
		TargetValue:  template.TargetValue,
		Unit:         template.Unit,
		Priority:     template.Priority,
	}

	if template.DurationDays > 0 {
		end := params.StartDate + model.Day(template.DurationDays)
		params.EndDate = &end
	}

	return s.goals.Create(params)
}

func (s *TemplateService) load(filename string) (*GoalTemplate, error) {
	source, err := os.ReadFile(filepath.Join(s.templatesDir(), filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", filename, err)
	}

	meta := s.parser.ExtractFrontmatter(source)
	body := markdown.StripFrontmatter(source)

	template := &GoalTemplate{
		Name:         strings.TrimSuffix(filename, ".md"),
		Title:        metaString(meta, "title"),
		Description:  strings.TrimSpace(string(body)),
		GoalType:     model.GoalType(metaString(meta, "goal_type")),
		Category:     model.Category(metaString(meta, "category")),
		ProgressType: model.ProgressType(metaString(meta, "progress_type")),
		Unit:         metaString(meta, "unit"),
		Priority:     metaInt(meta, "priority"),
		DurationDays: metaInt(meta, "duration_days"),
	}

	if target, ok := metaFloat(meta, "target_value"); ok {
		template.TargetValue = &target
	}

	if template.GoalType == "" {
		template.GoalType = model.GoalTypeCustom
	}
	if template.Category == "" {
		template.Category = model.CategoryLifestyle
	}
	if template.ProgressType == "" {
		template.ProgressType = model.ProgressPercentage
	}

	return template, nil
}

func metaString(meta map[string]any, key string) string {
	v, _ := meta[key].(string)
	return v
}

func metaInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func metaFloat(meta map[string]any, key string) (float64, bool) {
	switch v := meta[key].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
