package templates

import "errors"

var (
	// ErrNotFound is returned for an unknown template id.
	ErrNotFound = errors.New("templates: template not found")
	// ErrInvalidTemplate wraps every validation failure on save.
	ErrInvalidTemplate = errors.New("templates: invalid template")
	// ErrEmptyName is joined with ErrInvalidTemplate for a blank name.
	ErrEmptyName = errors.New("templates: name is required")
	// ErrInvalidName is joined with ErrInvalidTemplate for a name containing < or >.
	ErrInvalidName = errors.New("templates: name must not contain < or >")
	// ErrInvalidAttachment is joined with ErrInvalidTemplate when a payload is not
	// valid base64, is empty or exceeds MaxAttachmentSize.
	ErrInvalidAttachment = errors.New("templates: invalid attachment")
	// ErrConflict means an optimistic write lost to a concurrent one too many times.
	ErrConflict = errors.New("templates: concurrent modification")
	// ErrStoreFailure wraps backend errors.
	ErrStoreFailure = errors.New("templates: store failure")
)
