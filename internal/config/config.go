// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/templatewing/pkg/db"
	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/mailer"
	"github.com/dmitrymomot/templatewing/pkg/mailer/resend"
	"github.com/dmitrymomot/templatewing/pkg/redis"
	"github.com/dmitrymomot/templatewing/pkg/storage"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// ErrInvalidConfig is returned by Load when the environment is inconsistent.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the service configuration read from the environment.
type Config struct {
	HTTP    HTTP
	Store   Store
	Jobs    Jobs
	Log     logger.Config
	Sentry  logger.SentryConfig
	DB      db.Config
	Redis   redis.Config
	Storage storage.Config
	Mailer  mailer.Config
	Resend  resend.Config
}

// HTTP configures the API listener.
type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes    int64         `env:"HTTP_MAX_BODY_BYTES" envDefault:"26214400"`
}

// Store selects the template backend.
type Store struct {
	Backend  string `env:"TEMPLATE_STORE" envDefault:"memory"`
	RedisKey string `env:"TEMPLATE_REDIS_KEY" envDefault:"templatewing:templates"`
	// SeedDir holds *.md templates imported at startup when the store is empty.
	SeedDir  string `env:"TEMPLATE_SEED_DIR"`
	MaxDepth int    `env:"RESOLVER_MAX_DEPTH" envDefault:"64"`
}

// Jobs configures background jobs.
type Jobs struct {
	Enabled    bool `env:"JOBS_ENABLED" envDefault:"false"`
	MaxWorkers int  `env:"JOBS_MAX_WORKERS" envDefault:"10"`
	// Backups run only when object storage is configured.
	BackupSchedule  string `env:"BACKUP_SCHEDULE" envDefault:"0 3 * * *"`
	BackupPrefix    string `env:"BACKUP_PREFIX" envDefault:"backups/"`
	BackupRetention int    `env:"BACKUP_RETENTION" envDefault:"14"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return cfg, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.DB.ConnectionString == "" {
			errs = append(errs, errors.New("TEMPLATE_STORE=postgres requires DATABASE_CONN_URL"))
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("TEMPLATE_STORE=redis requires REDIS_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TEMPLATE_STORE %q", c.Store.Backend))
	}
	if c.Jobs.Enabled && c.DB.ConnectionString == "" {
		errs = append(errs, errors.New("JOBS_ENABLED requires DATABASE_CONN_URL"))
	}
	if c.Store.MaxDepth < 1 {
		errs = append(errs, errors.New("RESOLVER_MAX_DEPTH must be positive"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// NeedsPostgres reports whether a database pool must be opened.
func (c Config) NeedsPostgres() bool {
	return c.Store.Backend == BackendPostgres || c.Jobs.Enabled
}
