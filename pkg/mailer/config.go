package mailer

// Config holds mailer defaults.
type Config struct {
	DefaultFrom     string `env:"MAILER_DEFAULT_FROM"`
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"(no subject)"`
}
