package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// FormatVersion is written to every export document.
const FormatVersion = "1.3"

// Document is the export file layout.
type Document struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	Templates  []templates.Template `json:"templates"`
}

// Lister is the read side of a template store.
type Lister interface {
	List(ctx context.Context) ([]templates.Template, error)
}

// Export snapshots every template in store.
func Export(ctx context.Context, store Lister, now time.Time) (*Document, error) {
	list, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("transfer: list templates: %w", err)
	}
	return &Document{Version: FormatVersion, ExportedAt: now.UTC(), Templates: list}, nil
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
