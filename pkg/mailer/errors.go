package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified in To, CC or BCC.
	ErrNoRecipient = errors.New("mailer: email must have at least one recipient")

	// ErrNoContent indicates neither HTML nor text content was provided.
	ErrNoContent = errors.New("mailer: email must have content")

	// ErrNilEmail indicates Send was called without an email.
	ErrNilEmail = errors.New("mailer: email is nil")

	// ErrSendFailed indicates the provider rejected the email.
	ErrSendFailed = errors.New("mailer: failed to send email")
)
