package mailer

import "fmt"

// Tags are provider-side labels attached to a message. A nil or struct{}{} value
// marks a presence-only tag. Provider adapters convert them to their own format.
type Tags map[string]any

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully prepared message ready for sending.
type Email struct {
	Headers     map[string]string
	Tags        Tags
	Subject     string
	HTML        string
	Text        string // plain text alternative
	From        string // overrides Config.DefaultFrom
	ReplyTo     string
	To          []string
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// RecipientCount returns the number of addresses across To, CC and BCC.
func (e *Email) RecipientCount() int {
	return len(e.To) + len(e.CC) + len(e.BCC)
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string
	ContentType string // MIME type, e.g. "application/pdf"
	ContentID   string // set for inline attachments
	Content     []byte
}
