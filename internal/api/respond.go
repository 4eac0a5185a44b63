package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/templatewing/pkg/logger"
)

// handlerFunc is an http handler that reports failures by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleError(w, r, err)
		}
	}
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := toHTTPError(err)
	resp := *httpErr
	resp.RequestID = logger.RequestIDFromContext(r.Context())

	if httpErr.Code >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			slog.Int("status", httpErr.Code),
			slog.String("error", err.Error()),
		)
	} else {
		s.log.InfoContext(r.Context(), "request rejected",
			slog.Int("status", httpErr.Code),
			slog.String("error", err.Error()),
		)
	}
	writeJSON(w, httpErr.Code, &resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v, limited to the configured size.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return newHTTPError(http.StatusRequestEntityTooLarge, "too_large", "Request body is too large", err)
		}
		return errBadRequest("Malformed JSON body", err)
	}
	return nil
}
