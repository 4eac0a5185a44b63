package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	templateIDKey
	draftIDKey
)

// WithRequestID stores the request id for RequestIDExtractor.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// WithTemplateID stores the id of the template being resolved.
func WithTemplateID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, templateIDKey, id)
}

// WithDraftID stores the id of the target draft.
func WithDraftID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, draftIDKey, id)
}

// RequestIDExtractor adds "request_id" when present.
func RequestIDExtractor() ContextExtractor {
	return stringExtractor(requestIDKey, "request_id")
}

// TemplateIDExtractor adds "template_id" when present.
func TemplateIDExtractor() ContextExtractor {
	return stringExtractor(templateIDKey, "template_id")
}

// DraftIDExtractor adds "draft_id" when present.
func DraftIDExtractor() ContextExtractor {
	return stringExtractor(draftIDKey, "draft_id")
}

func stringExtractor(key ctxKey, name string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(key).(string)
		if !ok || v == "" {
			return slog.Attr{}, false
		}
		return slog.String(name, v), true
	}
}
