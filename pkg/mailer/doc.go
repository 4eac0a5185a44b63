// Package mailer delivers finished drafts through a pluggable Sender.
//
// Mailer validates an Email, fills in the default sender and hands it to the Sender.
// Production uses the Resend adapter in the resend subpackage; LogSender records
// messages through slog when no provider is configured:
//
//	var sender mailer.Sender = mailer.NewLogSender(log)
//	if cfg.Resend.APIKey != "" {
//		sender = resend.New(cfg.Resend)
//	}
//	m := mailer.New(sender, cfg.Mailer)
//	err := m.Send(ctx, email)
package mailer
