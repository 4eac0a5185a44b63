package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/templatewing/pkg/id"
	"github.com/dmitrymomot/templatewing/pkg/sanitizer"
	"github.com/dmitrymomot/templatewing/pkg/storage"
)

// Store persists templates. Implementations are safe for concurrent use.
type Store interface {
	// List returns a snapshot of all templates in insertion order.
	List(ctx context.Context) ([]Template, error)
	// GetByID returns ErrNotFound when id is unknown.
	GetByID(ctx context.Context, id string) (Template, error)
	// Save creates or merges t and returns the stored record.
	Save(ctx context.Context, t Template) (Template, error)
	// Delete returns ErrNotFound when id is unknown.
	Delete(ctx context.Context, id string) error
	// TrackUsage increments the usage counter and stamps LastUsedAt.
	TrackUsage(ctx context.Context, id string, at time.Time) error
}

// MaxAttachmentSize bounds the decoded size of a single attachment.
const MaxAttachmentSize = 10 << 20

// prepare validates in and builds the record a store writes for it, given the
// currently stored version (nil when absent).
func prepare(existing *Template, in Template, now time.Time) (Template, error) {
	if err := in.Validate(); err != nil {
		return Template{}, errors.Join(ErrInvalidTemplate, err)
	}
	atts, err := checkAttachments(in.Attachments, storage.NotEmpty(), storage.MaxSize(MaxAttachmentSize))
	if err != nil {
		return Template{}, errors.Join(ErrInvalidTemplate, err)
	}
	in.Attachments = atts
	return stamp(existing, in, now), nil
}

// stamp normalizes in and fills ids, timestamps and usage from existing.
// Attachment payloads are taken as they are.
func stamp(existing *Template, in Template, now time.Time) Template {
	out := in.Clone()
	out.Normalize()
	out.Body = sanitizer.SanitizeEmailHTML(out.Body)
	out.Attachments = assignAttachmentIDs(out.Attachments)

	switch {
	case out.ID == "":
		out.ID = id.NewTemplateID()
		out.CreatedAt = now
		out.UsageCount = 0
		out.LastUsedAt = nil
	case existing != nil:
		out.CreatedAt = existing.CreatedAt
		out.UsageCount = existing.UsageCount
		out.LastUsedAt = existing.Clone().LastUsedAt
	default:
		if out.CreatedAt.IsZero() {
			out.CreatedAt = now
		}
	}
	out.UpdatedAt = now

	return out
}

// checkAttachments decodes every payload, applies rules, records the decoded size
// and detects the type from content when none is given.
func checkAttachments(in []Attachment, rules ...storage.ValidationRule) ([]Attachment, error) {
	out := make([]Attachment, 0, len(in))
	for _, a := range in {
		a.Name = strings.TrimSpace(a.Name)
		data, err := a.Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidAttachment, a.Name, err)
		}
		mimeType := storage.NormalizeMIME(a.MimeType)
		if mimeType == "" {
			mimeType = storage.DetectMIME(data)
		}
		if err := storage.ValidateContent(a.Name, data, mimeType, rules...); err != nil {
			return nil, errors.Join(ErrInvalidAttachment, err)
		}
		a.MimeType = mimeType
		a.Size = int64(len(data))
		out = append(out, a)
	}
	return out, nil
}

// assignAttachmentIDs replaces missing or duplicate attachment ids.
func assignAttachmentIDs(in []Attachment) []Attachment {
	seen := make(map[string]struct{}, len(in))
	out := make([]Attachment, 0, len(in))
	for _, a := range in {
		if _, dup := seen[a.ID]; a.ID == "" || dup {
			a.ID = id.NewAttachmentID()
		}
		seen[a.ID] = struct{}{}
		if a.MimeType == "" {
			a.MimeType = storage.MIMEOctetStream
		}
		out = append(out, a)
	}
	return out
}
