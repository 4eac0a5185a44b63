package resolver

import (
	"slices"

	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// Content is a fully resolved template, ready to be merged into a draft.
type Content struct {
	Body        string                 `json:"body"`
	Subject     string                 `json:"subject"`
	To          []string               `json:"to"`
	CC          []string               `json:"cc"`
	BCC         []string               `json:"bcc"`
	Attachments []templates.Attachment `json:"-"`
}

// Compose computes the patch that merges resolved into target under mode.
// Each field is decided on its own. Attachments are decoded up front; if any
// payload is invalid no patch is returned.
func Compose(resolved Content, target DocumentState, mode templates.InsertMode) (Patch, error) {
	p := Patch{Base: target.Revision}

	if mode.OrDefault() == templates.InsertReplace {
		p.Body = resolved.Body
	} else {
		p.Body = target.Body + resolved.Body
	}

	if resolved.Subject != "" {
		subject := resolved.Subject
		p.Subject = &subject
	}

	if len(resolved.To) > 0 {
		p.To = slices.Clone(resolved.To)
	}
	if len(resolved.CC) > 0 {
		p.CC = slices.Clone(resolved.CC)
	}
	if len(resolved.BCC) > 0 {
		p.BCC = slices.Clone(resolved.BCC)
	}

	for _, a := range resolved.Attachments {
		content, err := a.Decode()
		if err != nil {
			return Patch{}, &AttachmentDecodingError{AttachmentID: a.ID, Name: a.Name, Err: err}
		}
		p.AddAttachments = append(p.AddAttachments, DocumentAttachment{
			Name:     a.Name,
			MimeType: a.MimeType,
			Content:  content,
		})
	}

	return p, nil
}
