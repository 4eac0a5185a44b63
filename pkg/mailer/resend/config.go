package resend

import "github.com/dmitrymomot/templatewing/pkg/mailer"

// Config holds the Resend API key and the identity used when a message has no From.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
}

// Enabled reports whether an API key is configured.
func (c Config) Enabled() bool { return c.APIKey != "" }

// From formats the configured sender identity, or returns "" when no address is set.
func (c Config) From() string {
	if c.SenderEmail == "" {
		return ""
	}
	return mailer.Recipient(c.SenderName, c.SenderEmail)
}
