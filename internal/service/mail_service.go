package service

import (
	"context"
	"errors"
	"eventhub_backend/internal/config"
	"eventhub_backend/pkg/logger"
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// MailService sends mail through Resend. Without an API key it only logs,
// which keeps local development free of credentials.
type MailService struct {
	client *resend.Client
	from   string
}

func NewMailService(cfg config.MailConfig) *MailService {
	s := &MailService{from: cfg.From}
	if cfg.ResendAPIKey != "" {
		s.client = resend.NewClient(cfg.ResendAPIKey)
	}
	return s
}

func (s *MailService) SendVerificationCode(ctx context.Context, to, code string) error {
	subject := "Your EventHub verification code"
	body := fmt.Sprintf(
		"<p>Your verification code is <strong>%s</strong>.</p><p>It expires shortly. If you did not request it, ignore this email.</p>",
		html.EscapeString(code),
	)
	return s.send(ctx, to, subject, body)
}

func (s *MailService) send(ctx context.Context, to, subject, htmlBody string) error {
	if s.client == nil {
		logger.Log.Debug("Mail delivery disabled, dropping message", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	})
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			logger.Log.Warn("Resend rate limit exceeded",
				zap.String("limit", rateLimitErr.Limit),
				zap.String("reset", rateLimitErr.Reset))
		}
		return fmt.Errorf("send mail: %w", err)
	}

	logger.Log.Info("Mail sent", zap.String("email_id", sent.Id), zap.String("to", to))
	return nil
}
