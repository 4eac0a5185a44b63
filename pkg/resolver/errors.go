package resolver

import (
	"errors"
	"fmt"
)

// Resolution errors. The draft is left unchanged whenever one is returned.
var (
	// ErrCircularReference matches every *CircularReferenceError.
	ErrCircularReference = errors.New("resolver: circular template reference")

	// ErrResolutionTooDeep is returned when includes nest past the depth ceiling.
	ErrResolutionTooDeep = errors.New("resolver: template nesting too deep")

	// ErrAttachmentDecoding matches every *AttachmentDecodingError.
	ErrAttachmentDecoding = errors.New("resolver: attachment decoding failed")

	// ErrRepository wraps failures listing templates.
	ErrRepository = errors.New("resolver: repository failure")

	// ErrDocument wraps failures reading or patching the draft.
	ErrDocument = errors.New("resolver: document failure")
)

// CircularReferenceError names the template that appears in its own ancestor path.
type CircularReferenceError struct {
	TemplateID   string
	TemplateName string
	// Path holds the ancestor ids from the root down to the offending include.
	Path []string
}

// Error implements the error interface.
func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("resolver: circular reference to template %q", e.TemplateName)
}

func (e *CircularReferenceError) Is(target error) bool {
	return target == ErrCircularReference
}

// AttachmentDecodingError reports the attachment whose payload is not valid base64.
type AttachmentDecodingError struct {
	AttachmentID string
	Name         string
	Err          error
}

func (e *AttachmentDecodingError) Error() string {
	return fmt.Sprintf("resolver: attachment %q (%s) decoding failed: %v", e.Name, e.AttachmentID, e.Err)
}

func (e *AttachmentDecodingError) Is(target error) bool {
	return target == ErrAttachmentDecoding
}

func (e *AttachmentDecodingError) Unwrap() error {
	return e.Err
}
