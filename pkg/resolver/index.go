package resolver

import (
	"html"
	"strings"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// Index looks templates up by id and by case-folded name.
// It is built from one snapshot and never changes afterwards. The name folder is
// stateful, so an Index serves one resolution call at a time.
type Index struct {
	byID   map[string]templates.Template
	byName map[string]templates.Template
	fold   cases.Caser
}

// NewIndex builds an index over list. When names collide the first template in
// list order wins.
func NewIndex(list []templates.Template) *Index {
	idx := &Index{
		byID:   make(map[string]templates.Template, len(list)),
		byName: make(map[string]templates.Template, len(list)),
		fold:   cases.Fold(),
	}
	for _, t := range list {
		t = t.Clone()
		if _, ok := idx.byID[t.ID]; !ok {
			idx.byID[t.ID] = t
		}
		key := idx.nameKey(t.Name)
		if _, ok := idx.byName[key]; !ok && key != "" {
			idx.byName[key] = t
		}
	}
	return idx
}

// Lookup resolves ref against the snapshot.
func (idx *Index) Lookup(ref Reference) (templates.Template, bool) {
	switch r := ref.(type) {
	case ByID:
		t, ok := idx.byID[strings.TrimSpace(string(r))]
		return t, ok
	case ByName:
		name := string(r)
		if t, ok := idx.byName[idx.nameKey(name)]; ok {
			return t, true
		}
		// Bodies are stored as sanitized HTML, so a name like "Tom's" may
		// appear entity-encoded inside a token.
		if strings.Contains(name, "&") {
			t, ok := idx.byName[idx.nameKey(html.UnescapeString(name))]
			return t, ok
		}
		return templates.Template{}, false
	default:
		return templates.Template{}, false
	}
}

// Len returns the number of distinct ids in the index.
func (idx *Index) Len() int {
	return len(idx.byID)
}

func (idx *Index) nameKey(name string) string {
	return idx.fold.String(strings.TrimSpace(name))
}
