package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/templatewing/pkg/draft"
	"github.com/dmitrymomot/templatewing/pkg/i18n"
	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/mailer"
	"github.com/dmitrymomot/templatewing/pkg/resolver"
)

type sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type resolveRequest struct {
	Sender sender `json:"sender"`
	// Locale overrides Accept-Language for {DATE} and {TIME}.
	Locale string `json:"locale"`
}

type insertRequest struct {
	resolveRequest
	DraftID string                 `json:"draftId"`
	Draft   resolver.DocumentState `json:"draft"`
}

type warning struct {
	Reference string `json:"reference"`
	Within    string `json:"within"`
}

type previewResponse struct {
	Subject  string    `json:"subject"`
	Body     string    `json:"body"`
	Warnings []warning `json:"warnings"`
}

type insertResponse struct {
	DraftID  string                 `json:"draftId,omitempty"`
	Draft    resolver.DocumentState `json:"draft"`
	Patch    resolver.Patch         `json:"patch"`
	Warnings []warning              `json:"warnings"`
}

func toWarnings(in []resolver.Unresolved) []warning {
	out := make([]warning, 0, len(in))
	for _, u := range in {
		out = append(out, warning{Reference: u.String(), Within: u.Within})
	}
	return out
}

func (s *Server) resolveContext(ctx context.Context, req resolveRequest) resolver.Context {
	format := localeFrom(ctx)
	if req.Locale != "" {
		format = i18n.ForLocale(req.Locale)
	}
	return resolver.Context{
		Now:         s.now(),
		SenderName:  strings.TrimSpace(req.Sender.Name),
		SenderEmail: strings.TrimSpace(req.Sender.Email),
		Format:      format,
	}
}

// previewTemplate resolves a template without a draft. The body is optional.
func (s *Server) previewTemplate(w http.ResponseWriter, r *http.Request) error {
	var req resolveRequest
	if r.ContentLength != 0 {
		if err := s.decodeJSON(w, r, &req); err != nil {
			return err
		}
	}

	tmpl, err := s.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	res, err := s.resolver.Resolve(r.Context(), tmpl, s.resolveContext(r.Context(), req))
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Subject:  res.Content.Subject,
		Body:     res.Content.Body,
		Warnings: toWarnings(res.Warnings),
	})
	return nil
}

// insert resolves the template at the path id into the posted draft.
func (s *Server) insert(ctx context.Context, id string, req insertRequest) (*draft.Draft, *resolver.Result, error) {
	ctx = logger.WithDraftID(ctx, req.DraftID)
	d := draft.New(req.DraftID, req.Draft)
	c := s.resolveContext(ctx, req.resolveRequest)
	res, err := s.resolver.InsertByID(ctx, id, d, c)
	if err != nil {
		return nil, nil, err
	}

	s.recordUsage(ctx, id)
	return d, res, nil
}

// recordUsage never fails the request; a lost usage count is only logged.
func (s *Server) recordUsage(ctx context.Context, id string) {
	if s.usage == nil {
		return
	}
	if err := s.usage.RecordUsage(ctx, id, s.now()); err != nil {
		s.log.WarnContext(logger.WithTemplateID(ctx, id), "template usage not recorded",
			slog.String("error", err.Error()),
		)
	}
}

func (s *Server) insertTemplate(w http.ResponseWriter, r *http.Request) error {
	var req insertRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		return err
	}
	d, res, err := s.insert(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, insertResponse{
		DraftID:  d.ID(),
		Draft:    d.Snapshot(),
		Patch:    res.Patch,
		Warnings: toWarnings(res.Warnings),
	})
	return nil
}

// sendTemplate inserts into the posted draft and delivers the result.
func (s *Server) sendTemplate(w http.ResponseWriter, r *http.Request) error {
	if s.mailer == nil {
		return newHTTPError(http.StatusServiceUnavailable, "mailer_disabled", "Email delivery is not configured", nil)
	}

	var req insertRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		return err
	}
	id := chi.URLParam(r, "id")
	d, res, err := s.insert(r.Context(), id, req)
	if err != nil {
		return err
	}

	from := ""
	if req.Sender.Email != "" {
		from = mailer.Recipient(strings.TrimSpace(req.Sender.Name), strings.TrimSpace(req.Sender.Email))
	}
	email, err := d.ToEmail(from)
	if err != nil {
		return err
	}
	email.Tags = mailer.Tags{"template": id, "templatewing": nil}
	if err := s.mailer.Send(r.Context(), email); err != nil {
		return err
	}

	s.log.InfoContext(r.Context(), "draft sent", slog.Int("recipients", email.RecipientCount()))
	writeJSON(w, http.StatusOK, insertResponse{
		DraftID:  d.ID(),
		Draft:    d.Snapshot(),
		Patch:    res.Patch,
		Warnings: toWarnings(res.Warnings),
	})
	return nil
}

type saveDraftRequest struct {
	Name     string                 `json:"name"`
	Category string                 `json:"category"`
	Draft    resolver.DocumentState `json:"draft"`
}

func (s *Server) saveDraftAsTemplate(w http.ResponseWriter, r *http.Request) error {
	var req saveDraftRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		return err
	}
	t, err := draft.New("", req.Draft).ToTemplate(req.Name, req.Category)
	if err != nil {
		return err
	}
	saved, err := s.store.Save(r.Context(), t)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, saved)
	return nil
}
