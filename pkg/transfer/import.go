package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/resolver"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// Saver is the write side of a template store.
type Saver interface {
	Save(ctx context.Context, t templates.Template) (templates.Template, error)
}

// Report summarises an import.
type Report struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed,omitempty"`
}

// Import reads an export document from r and saves every entry as a new template.
// Entries without a string name are skipped. Identity and telemetry fields are
// discarded; {{templateid:...}} tokens pointing at other imported entries are
// rewritten to the new ids.
func Import(ctx context.Context, store Saver, r io.Reader, log *slog.Logger) (*Report, error) {
	var raw struct {
		Templates []json.RawMessage `json:"templates"`
	}
	if log == nil {
		log = logger.NewNope()
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	if raw.Templates == nil {
		return nil, ErrInvalidDocument
	}

	entries := make([]entry, 0, len(raw.Templates))
	report := &Report{}
	for _, msg := range raw.Templates {
		e, ok := decodeEntry(msg)
		if !ok {
			report.Skipped++
			continue
		}
		entries = append(entries, e)
	}

	saveEntries(ctx, store, entries, report, log)
	return report, nil
}

type entry struct {
	oldID string
	tmpl  templates.Template
}

func decodeEntry(msg json.RawMessage) (entry, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil || fields == nil {
		return entry{}, false
	}
	var name string
	if err := json.Unmarshal(fields["name"], &name); err != nil {
		return entry{}, false
	}

	var t templates.Template
	if err := json.Unmarshal(msg, &t); err != nil {
		return entry{}, false
	}
	e := entry{oldID: t.ID}
	t.ID = ""
	t.UsageCount = 0
	t.LastUsedAt = nil
	t.CreatedAt = time.Time{}
	t.UpdatedAt = time.Time{}
	for i := range t.Attachments {
		t.Attachments[i].ID = ""
	}
	e.tmpl = t
	return e, true
}

// saveEntries saves entries in order, then rewrites id references between them.
func saveEntries(ctx context.Context, store Saver, entries []entry, report *Report, log *slog.Logger) {
	mapping := make(map[string]string, len(entries))
	saved := make([]templates.Template, 0, len(entries))
	for _, e := range entries {
		t, err := store.Save(ctx, e.tmpl)
		if err != nil {
			log.WarnContext(ctx, "template import failed", slog.String("name", e.tmpl.Name), slog.String("error", err.Error()))
			report.Failed = append(report.Failed, e.tmpl.Name)
			continue
		}
		if e.oldID != "" {
			mapping[e.oldID] = t.ID
		}
		saved = append(saved, t)
		report.Imported++
	}

	for _, t := range saved {
		body := resolver.RewriteIDReferences(t.Body, mapping)
		if body == t.Body {
			continue
		}
		t.Body = body
		if _, err := store.Save(ctx, t); err != nil {
			log.WarnContext(ctx, "template reference remap failed", slog.String("id", t.ID), slog.String("error", err.Error()))
		}
	}
}
