package templates

import (
	"cmp"
	"encoding/base64"
	"slices"
	"strings"
	"time"
	"unicode"
)

// InsertMode controls how a template body is merged into a draft body.
type InsertMode string

const (
	InsertAppend  InsertMode = "append"
	InsertReplace InsertMode = "replace"
)

// Valid reports whether m is a known mode.
func (m InsertMode) Valid() bool {
	return m == InsertAppend || m == InsertReplace
}

// OrDefault returns m, or InsertAppend when m is empty or unknown.
func (m InsertMode) OrDefault() InsertMode {
	if m.Valid() {
		return m
	}
	return InsertAppend
}

// Attachment is a file stored with a template. Data holds the base64 payload.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"type"`
	Size     int64  `json:"size"`
	Data     string `json:"data"`
}

// Decode returns the attachment content. Whitespace and line breaks inside the
// base64 payload are ignored.
func (a Attachment) Decode() ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, a.Data)
	return base64.StdEncoding.DecodeString(clean)
}

// Template is a reusable unit of message content.
type Template struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	To          []string     `json:"to"`
	CC          []string     `json:"cc"`
	BCC         []string     `json:"bcc"`
	Attachments []Attachment `json:"attachments"`
	InsertMode  InsertMode   `json:"insertMode"`
	Identities  []string     `json:"identities"`
	UsageCount  int          `json:"usageCount"`
	LastUsedAt  *time.Time   `json:"lastUsedAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy so callers can hold a snapshot while the store changes.
func (t Template) Clone() Template {
	c := t
	c.To = slices.Clone(t.To)
	c.CC = slices.Clone(t.CC)
	c.BCC = slices.Clone(t.BCC)
	c.Attachments = slices.Clone(t.Attachments)
	c.Identities = slices.Clone(t.Identities)
	if t.LastUsedAt != nil {
		lu := *t.LastUsedAt
		c.LastUsedAt = &lu
	}
	return c
}

// VisibleTo reports whether the template is offered for identity.
// Templates without identities are offered everywhere; an empty identity sees all.
func (t Template) VisibleTo(identity string) bool {
	if identity == "" || len(t.Identities) == 0 {
		return true
	}
	return slices.Contains(t.Identities, identity)
}

// Normalize trims text fields, drops blank recipients and identities, replaces nil
// slices with empty ones and defaults the insert mode.
func (t *Template) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.Category = strings.TrimSpace(t.Category)
	t.To = cleanList(t.To)
	t.CC = cleanList(t.CC)
	t.BCC = cleanList(t.BCC)
	t.Identities = cleanList(t.Identities)
	if t.Attachments == nil {
		t.Attachments = []Attachment{}
	}
	t.InsertMode = t.InsertMode.OrDefault()
}

// Validate checks the invariants a stored template must hold. Names cannot contain
// angle brackets: bodies are sanitized as HTML, so a {{template:...}} token naming
// such a template would lose part of the name and never resolve.
func (t Template) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return ErrEmptyName
	}
	if strings.ContainsAny(name, "<>") {
		return ErrInvalidName
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseRecipients splits a comma-separated address list, trimming blanks.
func ParseRecipients(s string) []string {
	return cleanList(strings.Split(s, ","))
}

// ForIdentity filters list down to the templates visible to identity, keeping order.
func ForIdentity(list []Template, identity string) []Template {
	out := make([]Template, 0, len(list))
	for _, t := range list {
		if t.VisibleTo(identity) {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the sorted distinct non-empty categories of list.
func Categories(list []Template) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		if c := strings.TrimSpace(t.Category); c != "" {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, cmp.Compare[string])
	return slices.Compact(out)
}

// Duplicate returns a copy of t ready to be saved as a new template.
func Duplicate(t Template) Template {
	c := t.Clone()
	c.ID = ""
	c.Name = "Copy of " + t.Name
	c.UsageCount = 0
	c.LastUsedAt = nil
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
	for i := range c.Attachments {
		c.Attachments[i].ID = ""
	}
	return c
}
