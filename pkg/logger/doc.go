// Package logger provides structured logging with context extraction and Sentry integration.
//
// Loggers are plain *slog.Logger values. Handlers are wrapped with a ContextHandler that
// pulls request-scoped attributes (request id, template id, draft id) out of the
// context on every call:
//
//	log := logger.New(logger.Config{Level: "info"},
//		logger.RequestIDExtractor(),
//		logger.TemplateIDExtractor(),
//	)
//	ctx = logger.WithTemplateID(ctx, tmpl.ID)
//	log.WarnContext(ctx, "unresolved include", slog.String("reference", ref.String()))
//
// NewWithSentry additionally forwards warnings and errors to Sentry. When the DSN is
// empty it falls back to stdout-only logging, so the same code path works in
// development and production.
package logger
