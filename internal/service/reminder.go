package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lifetrackhq/lifetrack/internal/model"
)

// ReminderService periodically emails a digest of active goals whose end date
// falls inside the reminder window. It only reads goal end dates; the goal
// engine itself never schedules anything.
type ReminderService struct {
	goals      *GoalService
	email      *EmailService
	recipient  string
	windowDays int
}

func NewReminderService(goals *GoalService, email *EmailService, recipient string, windowDays int) *ReminderService {
	return &ReminderService{
		goals:      goals,
		email:      email,
		recipient:  recipient,
		windowDays: windowDays,
	}
}

// DueGoals returns active goals ending within the reminder window, today
// inclusive. Overdue goals are included until they are completed or abandoned.
func (s *ReminderService) DueGoals() ([]*model.Goal, error) {
	goals, err := s.goals.ActiveGoals()
	if err != nil {
		return nil, err
	}

	cutoff := model.Today() + model.Day(s.windowDays)

	var due []*model.Goal
	for _, goal := range goals {
		if goal.EndDate != nil && *goal.EndDate <= cutoff {
			due = append(due, goal)
		}
	}

	return due, nil
}

// SendDigest emails the due-goal digest once. A missing recipient or an empty
// window is a no-op.
func (s *ReminderService) SendDigest() error {
	if s.recipient == "" {
		return nil
	}

	due, err := s.DueGoals()
	if err != nil {
		return err
	}

	if len(due) == 0 {
		return nil
	}

	return s.email.SendGoalDueDigest(s.recipient, due)
}

// Run sends the digest on every tick until ctx is cancelled.
func (s *ReminderService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := s.SendDigest()
			if err != nil {
				slog.Error("failed to send reminder digest", "error", err)
			}
		}
	}
}
