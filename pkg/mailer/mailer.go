package mailer

import (
	"context"
	"errors"
	"strings"
)

// Mailer validates emails and passes them to a Sender.
type Mailer struct {
	sender Sender
	config Config
}

// New creates a new Mailer with the given sender.
func New(sender Sender, cfg Config) *Mailer {
	return &Mailer{sender: sender, config: cfg}
}

// Send validates email, applies defaults and delivers it.
// An empty subject falls back to Config.FallbackSubject.
func (m *Mailer) Send(ctx context.Context, email *Email) error {
	if email == nil {
		return ErrNilEmail
	}
	if email.RecipientCount() == 0 {
		return ErrNoRecipient
	}
	if strings.TrimSpace(email.HTML) == "" && strings.TrimSpace(email.Text) == "" {
		return ErrNoContent
	}

	out := *email
	if out.From == "" {
		out.From = m.config.DefaultFrom
	}
	if strings.TrimSpace(out.Subject) == "" {
		out.Subject = m.config.FallbackSubject
	}

	if err := m.sender.Send(ctx, &out); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	return nil
}
