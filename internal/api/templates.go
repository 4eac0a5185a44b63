package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/templatewing/pkg/logger"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// listTemplates supports ?identity= (visibility) and ?category= (exact, case-insensitive).
func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) error {
	list, err := s.store.List(r.Context())
	if err != nil {
		return err
	}

	list = templates.ForIdentity(list, r.URL.Query().Get("identity"))
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		filtered := list[:0]
		for _, t := range list {
			if strings.EqualFold(t.Category, category) {
				filtered = append(filtered, t)
			}
		}
		list = filtered
	}

	writeJSON(w, http.StatusOK, list)
	return nil
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) error {
	list, err := s.store.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, templates.Categories(list))
	return nil
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) error {
	t, err := s.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, t)
	return nil
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) error {
	var in templates.Template
	if err := s.decodeJSON(w, r, &in); err != nil {
		return err
	}
	saved, err := s.store.Save(r.Context(), in)
	if err != nil {
		return err
	}
	s.log.InfoContext(logger.WithTemplateID(r.Context(), saved.ID), "template created")
	writeJSON(w, http.StatusCreated, saved)
	return nil
}

// updateTemplate saves the body under the path id; an unknown id is created.
func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) error {
	var in templates.Template
	if err := s.decodeJSON(w, r, &in); err != nil {
		return err
	}
	in.ID = chi.URLParam(r, "id")
	saved, err := s.store.Save(r.Context(), in)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, saved)
	return nil
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		return err
	}
	s.log.InfoContext(logger.WithTemplateID(r.Context(), id), "template deleted")
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) duplicateTemplate(w http.ResponseWriter, r *http.Request) error {
	src, err := s.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	saved, err := s.store.Save(r.Context(), templates.Duplicate(src))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, saved)
	return nil
}
