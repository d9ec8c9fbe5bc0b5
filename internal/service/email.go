package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// send delivers a plain-text email. In development it is only logged.
func (s *EmailService) send(ctx context.Context, kind, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		slog.Debug("email body", "type", kind, "body", body)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	subject, body := welcomeEmailTemplate(name, s.appURL+"/docs", s.appName)
	return s.send(ctx, "welcome", email, subject, body)
}

func (s *EmailService) SendChallengeInvite(ctx context.Context, email, opponentName, challengerName, challengeName string, durationDays int, challengeID string) error {
	url := fmt.Sprintf("%s/api/challenges/%s", s.appURL, challengeID)
	subject, body := challengeInviteTemplate(opponentName, challengerName, challengeName, durationDays, url, s.appName)
	return s.send(ctx, "challenge_invite", email, subject, body)
}

func (s *EmailService) SendChallengeAccepted(ctx context.Context, email, challengerName, opponentName, challengeName, endDate string) error {
	subject, body := challengeAcceptedTemplate(challengerName, opponentName, challengeName, endDate, s.appName)
	return s.send(ctx, "challenge_accepted", email, subject, body)
}

func (s *EmailService) SendChallengeResult(ctx context.Context, email, name, challengeName string, ownStreak, otherStreak int, outcome string) error {
	subject, body := challengeResultTemplate(name, challengeName, ownStreak, otherStreak, outcome, s.appName)
	return s.send(ctx, "challenge_result", email, subject, body)
}

func (s *EmailService) SendAccountDeletedEmail(ctx context.Context, email, name string) error {
	subject, body := accountDeletedEmailTemplate(name, s.appName)
	return s.send(ctx, "account_deleted", email, subject, body)
}
