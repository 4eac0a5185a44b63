// Package draft holds compose drafts that templates are inserted into.
//
// A Draft implements resolver.Document:
//
//	d := draft.New("d1", resolver.DocumentState{Body: "<p>Hi</p>"})
//	if _, err := r.InsertByID(ctx, id, d, c); errors.Is(err, draft.ErrStaleState) {
//		// another insertion won; load the state again and retry
//	}
//	email, err := d.ToEmail("Ann <ann@example.com>")
//
// ToTemplate goes the other way and turns the draft into a template ready to save.
package draft

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrymomot/templatewing/pkg/mailer"
	"github.com/dmitrymomot/templatewing/pkg/resolver"
	"github.com/dmitrymomot/templatewing/pkg/sanitizer"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

var (
	// ErrNoRecipients is returned by ToEmail when no To, Cc or Bcc is set.
	ErrNoRecipients = errors.New("draft: no recipients")
	// ErrEmptyName is returned by ToTemplate for a blank name.
	ErrEmptyName = errors.New("draft: template name is required")
	// ErrStaleState rejects a patch computed from a state that has since changed.
	ErrStaleState = errors.New("draft: changed since the patch was computed")
)

// Draft is an in-memory compose document. Every applied patch bumps its revision,
// and a patch based on an older revision is rejected with ErrStaleState, so of two
// concurrent insertions the second fails instead of overwriting the first.
type Draft struct {
	mu    sync.Mutex
	id    string
	state resolver.DocumentState
}

// New creates a draft with the given initial state.
func New(id string, state resolver.DocumentState) *Draft {
	s := state.Clone()
	s.Revision = 0
	return &Draft{id: id, state: s}
}

// ID returns the identifier the draft was created with, possibly empty.
func (d *Draft) ID() string {
	return d.id
}

// State returns a copy of the current state.
func (d *Draft) State(_ context.Context) (resolver.DocumentState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone(), nil
}

// ApplyPatch applies p atomically if it was computed from the current revision.
func (d *Draft) ApplyPatch(_ context.Context, p resolver.Patch) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p.Base != d.state.Revision {
		return ErrStaleState
	}
	next := d.state.Apply(p)
	next.Revision = d.state.Revision + 1
	d.state = next
	return nil
}

// Snapshot returns the current state without a context.
func (d *Draft) Snapshot() resolver.DocumentState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Clone()
}

// ToEmail converts the draft into an outgoing email sent as from.
// The text part is derived from the HTML body.
func (d *Draft) ToEmail(from string) (*mailer.Email, error) {
	s := d.Snapshot()
	if len(s.To)+len(s.CC)+len(s.BCC) == 0 {
		return nil, ErrNoRecipients
	}

	email := &mailer.Email{
		From:    from,
		To:      s.To,
		CC:      s.CC,
		BCC:     s.BCC,
		Subject: s.Subject,
		HTML:    s.Body,
		Text:    sanitizer.PlainText(s.Body),
	}
	for _, a := range s.Attachments {
		email.Attachments = append(email.Attachments, mailer.Attachment{
			Filename:    a.Name,
			ContentType: a.MimeType,
			Content:     a.Content,
		})
	}
	return email, nil
}

// ToTemplate captures the draft as a new template named name, mirroring
// "save as template" in a mail client. Attachments are re-encoded to base64.
func (d *Draft) ToTemplate(name, category string) (templates.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return templates.Template{}, ErrEmptyName
	}

	s := d.Snapshot()
	t := templates.Template{
		Name:       name,
		Category:   category,
		Subject:    s.Subject,
		Body:       s.Body,
		To:         s.To,
		CC:         s.CC,
		BCC:        s.BCC,
		InsertMode: templates.InsertAppend,
	}
	for _, a := range s.Attachments {
		t.Attachments = append(t.Attachments, templates.Attachment{
			Name:     a.Name,
			MimeType: a.MimeType,
			Size:     int64(len(a.Content)),
			Data:     base64.StdEncoding.EncodeToString(a.Content),
		})
	}
	return t, nil
}
