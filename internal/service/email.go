package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lifetrackhq/lifetrack/internal/model"
	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	appName   string
	isDev     bool
}

func NewEmailService(apiKey, fromEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		appName:   appName,
		isDev:     isDev,
	}
}

// SendGoalDueDigest emails a summary of goals whose end date is coming up.
func (s *EmailService) SendGoalDueDigest(email string, goals []*model.Goal) error {
	subject := fmt.Sprintf("[%s] %d goal(s) due soon", s.appName, len(goals))
	body := goalDueDigestBody(goals)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "goal_due_digest", "to", email, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{email},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "goal_due_digest", "to", email, "goals", len(goals))
	}
	return err
}

func goalDueDigestBody(goals []*model.Goal) string {
	var b strings.Builder
	b.WriteString("These goals are approaching their end date:\n\n")

	for _, goal := range goals {
		due := ""
		if goal.EndDate != nil {
			due = goal.EndDate.String()
		}
		fmt.Fprintf(&b, "- %s (due %s, %.0f%% done)\n", goal.Title, due, goal.ProgressFraction()*100)
	}

	b.WriteString("\nOpen the app to log progress or adjust the dates.\n")
	return b.String()
}
