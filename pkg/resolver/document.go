package resolver

import (
	"context"
	"slices"
)

// Document is a compose draft the resolver writes into.
type Document interface {
	State(ctx context.Context) (DocumentState, error)
	// ApplyPatch must apply the whole patch or nothing. Documents that can change
	// between State and ApplyPatch should reject a patch whose Base is not their
	// current Revision.
	ApplyPatch(ctx context.Context, p Patch) error
}

// DocumentState is a snapshot of a draft.
type DocumentState struct {
	Body        string               `json:"body"`
	Subject     string               `json:"subject"`
	To          []string             `json:"to"`
	CC          []string             `json:"cc"`
	BCC         []string             `json:"bcc"`
	Attachments []DocumentAttachment `json:"attachments"`
	// Revision is maintained by the document; zero when it does not track one.
	Revision uint64 `json:"-"`
}

// DocumentAttachment is a decoded file attached to a draft.
type DocumentAttachment struct {
	Name     string `json:"name"`
	MimeType string `json:"type"`
	Content  []byte `json:"content"`
}

// Patch describes the changes Compose computed. Nil fields leave the draft untouched.
type Patch struct {
	Body           string               `json:"body"`
	Subject        *string              `json:"subject,omitempty"`
	To             []string             `json:"to,omitempty"`
	CC             []string             `json:"cc,omitempty"`
	BCC            []string             `json:"bcc,omitempty"`
	AddAttachments []DocumentAttachment `json:"addAttachments,omitempty"`
	// Base is the Revision of the state the patch was computed from.
	Base uint64 `json:"-"`
}

// Clone returns a deep copy of s.
func (s DocumentState) Clone() DocumentState {
	c := s
	c.To = slices.Clone(s.To)
	c.CC = slices.Clone(s.CC)
	c.BCC = slices.Clone(s.BCC)
	if s.Attachments != nil {
		c.Attachments = make([]DocumentAttachment, len(s.Attachments))
		for i, a := range s.Attachments {
			a.Content = slices.Clone(a.Content)
			c.Attachments[i] = a
		}
	}
	return c
}

// Apply returns the state after p. s itself is not modified.
func (s DocumentState) Apply(p Patch) DocumentState {
	out := s.Clone()
	out.Body = p.Body
	if p.Subject != nil {
		out.Subject = *p.Subject
	}
	if p.To != nil {
		out.To = slices.Clone(p.To)
	}
	if p.CC != nil {
		out.CC = slices.Clone(p.CC)
	}
	if p.BCC != nil {
		out.BCC = slices.Clone(p.BCC)
	}
	for _, a := range p.AddAttachments {
		a.Content = slices.Clone(a.Content)
		out.Attachments = append(out.Attachments, a)
	}
	return out
}
