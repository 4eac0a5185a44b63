package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/templatewing/pkg/health"
	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/mailer"
	"github.com/dmitrymomot/templatewing/pkg/resolver"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultMaxBody        = 25 << 20
)

// UsageRecorder is notified after a template was inserted into a draft.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, templateID string, at time.Time) error
}

// Server serves the HTTP API. Build it with New and mount Routes.
type Server struct {
	store          templates.Store
	resolver       *resolver.Resolver
	mailer         *mailer.Mailer
	usage          UsageRecorder
	backups        Backups
	checks         health.Checks
	log            *slog.Logger
	now            func() time.Time
	requestTimeout time.Duration
	maxBody        int64
}

// Option configures a Server.
type Option func(*Server)

// WithMailer enables the send endpoint.
func WithMailer(m *mailer.Mailer) Option {
	return func(s *Server) { s.mailer = m }
}

// WithUsageRecorder sets how insertions are counted. Without it usage is not tracked.
func WithUsageRecorder(u UsageRecorder) Option {
	return func(s *Server) { s.usage = u }
}

// WithBackups enables the /backups endpoints.
func WithBackups(b Backups) Option {
	return func(s *Server) { s.backups = b }
}

// WithHealthChecks sets the readiness checks.
func WithHealthChecks(checks health.Checks) Option {
	return func(s *Server) { s.checks = checks }
}

// WithLogger sets the logger for request and error logs. nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for usage timestamps and placeholders.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRequestTimeout bounds template endpoints. Default 30s.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithMaxBodyBytes limits request bodies. Default 25 MiB.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a Server over store. res must read from the same store.
func New(store templates.Store, res *resolver.Resolver, opts ...Option) *Server {
	s := &Server{
		store:          store,
		resolver:       res,
		log:            logger.NewNope(),
		now:            time.Now,
		requestTimeout: defaultRequestTimeout,
		maxBody:        defaultMaxBody,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, s.recoverer, s.requestLogger, locale)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.handleError(w, r, errNotFound("Route not found", nil))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.handleError(w, r, newHTTPError(http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil))
	})

	r.Get("/health/live", health.Live())
	r.Get("/health/ready", health.Ready(s.checks, health.WithLogger(s.log)))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.requestTimeout))

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.handle(s.listTemplates))
			r.Post("/", s.handle(s.createTemplate))
			r.Get("/categories", s.handle(s.listCategories))
			r.Get("/export", s.handle(s.exportTemplates))
			r.Post("/import", s.handle(s.importTemplates))

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handle(s.getTemplate))
				r.Put("/", s.handle(s.updateTemplate))
				r.Delete("/", s.handle(s.deleteTemplate))
				r.Post("/duplicate", s.handle(s.duplicateTemplate))
				r.Post("/preview", s.handle(s.previewTemplate))
				r.Post("/insert", s.handle(s.insertTemplate))
				r.Post("/send", s.handle(s.sendTemplate))
			})
		})

		r.Post("/drafts/save-as-template", s.handle(s.saveDraftAsTemplate))

		r.Route("/backups", func(r chi.Router) {
			r.Get("/", s.handle(s.listBackups))
			r.Post("/", s.handle(s.createBackup))
			r.Post("/restore", s.handle(s.restoreBackup))
		})
	})

	return r
}
