package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/templui/screentime/internal/validation"
)

var ErrDigestRecipientMissing = errors.New("no digest recipient configured (DIGEST_EMAIL)")

type DigestService struct {
	stats     *StatsService
	email     *EmailService
	recipient string
	appName   string
	appURL    string
}

func NewDigestService(stats *StatsService, email *EmailService, recipient, appName, appURL string) *DigestService {
	return &DigestService{
		stats:     stats,
		email:     email,
		recipient: recipient,
		appName:   appName,
		appURL:    appURL,
	}
}

// Compose renders today's digest without sending it.
func (s *DigestService) Compose() (subject, body string) {
	return digestEmailTemplate(s.stats.Summary(), s.appName, s.appURL+"/")
}

func (s *DigestService) Send(ctx context.Context) error {
	if s.recipient == "" {
		return ErrDigestRecipientMissing
	}
	if err := validation.ValidateEmail(s.recipient); err != nil {
		return fmt.Errorf("invalid DIGEST_EMAIL %q: %w", s.recipient, err)
	}
	subject, body := s.Compose()
	return s.email.Send(ctx, "digest", s.recipient, subject, body)
}
