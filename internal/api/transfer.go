package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/templatewing/pkg/transfer"
)

func (s *Server) exportTemplates(w http.ResponseWriter, r *http.Request) error {
	now := s.now()
	doc, err := transfer.Export(r.Context(), s.store, now)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="templates-%s.json"`, now.UTC().Format("2006-01-02")))
	return transfer.Write(w, doc)
}

func (s *Server) importTemplates(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	report, err := transfer.Import(r.Context(), s.store, r.Body, s.log)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, report)
	return nil
}
