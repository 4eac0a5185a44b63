package mailer

import (
	"context"
	"log/slog"
)

// Sender defines the minimal interface that email providers must implement.
type Sender interface {
	// Send delivers a validated email.
	Send(ctx context.Context, email *Email) error
}

// LogSender logs emails instead of delivering them.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender returns a Sender that writes a summary of each email to log.
func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, email *Email) error {
	s.log.InfoContext(ctx, "email not delivered, no provider configured",
		slog.Any("to", email.To),
		slog.Any("cc", email.CC),
		slog.Int("bcc", len(email.BCC)),
		slog.String("subject", email.Subject),
		slog.Int("attachments", len(email.Attachments)),
	)
	return nil
}
