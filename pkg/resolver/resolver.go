package resolver

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/templatewing/pkg/i18n"
	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// Repository is the read side of a template store.
type Repository interface {
	List(ctx context.Context) ([]templates.Template, error)
	GetByID(ctx context.Context, id string) (templates.Template, error)
}

// Result describes a finished resolution.
type Result struct {
	Content  Content
	Patch    Patch
	Warnings []Unresolved
}

// Resolver expands templates against a Repository. It holds no mutable state and is
// safe for concurrent use.
type Resolver struct {
	repo     Repository
	maxDepth int
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the include nesting ceiling. Values below one are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithLogger sets the logger warnings are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock sets the time source used when Context.Now is zero.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Resolver reading from repo.
func New(repo Repository, opts ...Option) *Resolver {
	r := &Resolver{
		repo:     repo,
		maxDepth: DefaultMaxDepth,
		log:      logger.NewNope(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve expands includes and placeholders of tmpl without touching any draft.
func (r *Resolver) Resolve(ctx context.Context, tmpl templates.Template, c Context) (*Result, error) {
	list, err := r.repo.List(ctx)
	if err != nil {
		return nil, errors.Join(ErrRepository, err)
	}
	return r.resolve(ctx, tmpl, list, c)
}

// ResolveAndInsert resolves tmpl and merges it into doc. The patch is applied only
// when every step succeeded; on error doc is left as it was.
func (r *Resolver) ResolveAndInsert(ctx context.Context, tmpl templates.Template, doc Document, c Context) (*Result, error) {
	res, err := r.Resolve(ctx, tmpl, c)
	if err != nil {
		return nil, err
	}

	state, err := doc.State(ctx)
	if err != nil {
		return nil, errors.Join(ErrDocument, err)
	}

	patch, err := Compose(res.Content, state, tmpl.InsertMode)
	if err != nil {
		r.log.ErrorContext(ctx, "template composition failed", slog.String("error", err.Error()))
		return nil, err
	}

	if err := doc.ApplyPatch(ctx, patch); err != nil {
		return nil, errors.Join(ErrDocument, err)
	}

	res.Patch = patch
	return res, nil
}

// InsertByID loads the template with id and inserts it into doc.
func (r *Resolver) InsertByID(ctx context.Context, id string, doc Document, c Context) (*Result, error) {
	tmpl, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Join(ErrRepository, err)
	}
	return r.ResolveAndInsert(ctx, tmpl, doc, c)
}

func (r *Resolver) resolve(ctx context.Context, tmpl templates.Template, list []templates.Template, c Context) (*Result, error) {
	ctx = logger.WithTemplateID(ctx, tmpl.ID)
	tmpl = tmpl.Clone()

	if c.Now.IsZero() {
		c.Now = r.now()
	}
	if c.Format == nil {
		c.Format = i18n.FormatEnUS()
	}

	idx := NewIndex(list)
	r.log.DebugContext(ctx, "resolving template", slog.Int("known_templates", idx.Len()))
	body, warnings, err := ExpandIncludes(tmpl.Body, tmpl.ID, idx, r.maxDepth)
	if err != nil {
		var cycle *CircularReferenceError
		if errors.As(err, &cycle) {
			r.log.WarnContext(ctx, "circular template reference",
				slog.String("template", cycle.TemplateName),
				slog.Any("path", cycle.Path),
			)
		}
		return nil, err
	}

	for _, w := range warnings {
		r.log.WarnContext(ctx, "unresolved template reference",
			slog.String("reference", w.Reference.String()),
			slog.String("within", w.Within),
		)
	}

	return &Result{
		Content: Content{
			Body:        SubstituteHTML(body, c),
			Subject:     Substitute(tmpl.Subject, c),
			To:          slices.Clone(tmpl.To),
			CC:          slices.Clone(tmpl.CC),
			BCC:         slices.Clone(tmpl.BCC),
			Attachments: tmpl.Attachments,
		},
		Warnings: warnings,
	}, nil
}
