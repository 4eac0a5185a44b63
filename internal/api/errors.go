package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/templatewing/pkg/draft"
	"github.com/dmitrymomot/templatewing/pkg/mailer"
	"github.com/dmitrymomot/templatewing/pkg/resolver"
	"github.com/dmitrymomot/templatewing/pkg/storage"
	"github.com/dmitrymomot/templatewing/pkg/templates"
	"github.com/dmitrymomot/templatewing/pkg/transfer"
)

// HTTPError is an error with the status and message sent to the client.
// Err is logged, never exposed.
type HTTPError struct {
	Err       error  `json:"-"`
	Message   string `json:"message"`
	ErrorCode string `json:"code,omitempty"`
	Template  string `json:"template,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Code      int    `json:"-"`
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return e.Err }

func newHTTPError(code int, errorCode, message string, err error) *HTTPError {
	return &HTTPError{Code: code, ErrorCode: errorCode, Message: message, Err: err}
}

func errBadRequest(message string, err error) *HTTPError {
	return newHTTPError(http.StatusBadRequest, "bad_request", message, err)
}

func errNotFound(message string, err error) *HTTPError {
	return newHTTPError(http.StatusNotFound, "not_found", message, err)
}

// toHTTPError maps domain errors onto responses.
func toHTTPError(err error) *HTTPError {
	var (
		httpErr *HTTPError
		cycle   *resolver.CircularReferenceError
		decode  *resolver.AttachmentDecodingError
	)
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if errors.As(err, &cycle) {
		e := newHTTPError(http.StatusUnprocessableEntity, "circular_reference",
			fmt.Sprintf("Template %q includes itself", cycle.TemplateName), err)
		e.Template = cycle.TemplateName
		return e
	}
	if errors.As(err, &decode) {
		return newHTTPError(http.StatusUnprocessableEntity, "attachment_decoding",
			fmt.Sprintf("Attachment %q could not be decoded", decode.Name), err)
	}

	switch {
	case errors.Is(err, resolver.ErrResolutionTooDeep):
		return newHTTPError(http.StatusUnprocessableEntity, "too_deep", "Templates are nested too deeply", err)
	case errors.Is(err, templates.ErrNotFound):
		return errNotFound("Template not found", err)
	case errors.Is(err, templates.ErrInvalidAttachment):
		return newHTTPError(http.StatusBadRequest, "invalid_attachment", "An attachment is empty, too large or not valid base64", err)
	case errors.Is(err, templates.ErrInvalidName):
		return errBadRequest("Template names cannot contain < or >", err)
	case errors.Is(err, templates.ErrEmptyName), errors.Is(err, draft.ErrEmptyName):
		return errBadRequest("Template name is required", err)
	case errors.Is(err, templates.ErrInvalidTemplate):
		return errBadRequest("Invalid template", err)
	case errors.Is(err, draft.ErrNoRecipients), errors.Is(err, mailer.ErrNoRecipient):
		return errBadRequest("The draft has no recipients", err)
	case errors.Is(err, mailer.ErrNoContent):
		return errBadRequest("The draft is empty", err)
	case errors.Is(err, transfer.ErrInvalidDocument):
		return errBadRequest("Not a template export file", err)
	case errors.Is(err, transfer.ErrNoBackup), errors.Is(err, storage.ErrNotFound):
		return errNotFound("Backup not found", err)
	case errors.Is(err, storage.ErrInvalidKey):
		return errBadRequest("Invalid backup key", err)
	case errors.Is(err, draft.ErrStaleState):
		return newHTTPError(http.StatusConflict, "stale_draft", "The draft changed during insertion, retry", err)
	case errors.Is(err, templates.ErrConflict):
		return newHTTPError(http.StatusConflict, "conflict", "Template was changed concurrently, retry", err)
	case errors.Is(err, mailer.ErrSendFailed):
		return newHTTPError(http.StatusBadGateway, "send_failed", "Email delivery failed", err)
	}

	return newHTTPError(http.StatusInternalServerError, "internal", http.StatusText(http.StatusInternalServerError), err)
}
