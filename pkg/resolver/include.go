package resolver

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultMaxDepth bounds how many includes may nest below the root template.
const DefaultMaxDepth = 64

var includeToken = regexp.MustCompile(`\{\{(templateid|template):([^}]+)\}\}`)

// ExpandIncludes replaces every include token in text with the expanded body of the
// referenced template. rootID seeds the ancestor path so a template including itself
// is caught on the first nested lookup. A maxDepth below one uses DefaultMaxDepth.
func ExpandIncludes(text, rootID string, idx *Index, maxDepth int) (string, []Unresolved, error) {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	e := &expander{idx: idx, maxDepth: maxDepth}
	out, err := e.expand(text, []string{rootID})
	if err != nil {
		return "", nil, err
	}
	return out, e.unresolved, nil
}

type expander struct {
	idx        *Index
	maxDepth   int
	unresolved []Unresolved
}

// expand resolves text whose enclosing templates are path, root first.
// path is never modified; nested calls receive an extended copy.
func (e *expander) expand(text string, path []string) (string, error) {
	matches := includeToken.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		last = m[1]

		ref := parseReference(text[m[2]:m[3]], text[m[4]:m[5]])
		tmpl, ok := e.idx.Lookup(ref)
		if !ok {
			e.unresolved = append(e.unresolved, Unresolved{Reference: ref, Within: path[len(path)-1]})
			continue
		}

		if slices.Contains(path, tmpl.ID) {
			return "", &CircularReferenceError{
				TemplateID:   tmpl.ID,
				TemplateName: tmpl.Name,
				Path:         append(slices.Clone(path), tmpl.ID),
			}
		}

		nested := append(slices.Clip(path), tmpl.ID)
		if len(nested)-1 > e.maxDepth {
			return "", ErrResolutionTooDeep
		}

		expanded, err := e.expand(tmpl.Body, nested)
		if err != nil {
			return "", err
		}
		b.WriteString(expanded)
	}
	b.WriteString(text[last:])

	return b.String(), nil
}

// RewriteIDReferences replaces the ids in {{templateid:...}} tokens using mapping.
// Tokens whose id is not in mapping, and name tokens, are kept as written.
func RewriteIDReferences(text string, mapping map[string]string) string {
	if len(mapping) == 0 || !strings.Contains(text, "{{templateid:") {
		return text
	}
	return includeToken.ReplaceAllStringFunc(text, func(tok string) string {
		m := includeToken.FindStringSubmatch(tok)
		if m[1] != "templateid" {
			return tok
		}
		if newID, ok := mapping[strings.TrimSpace(m[2])]; ok {
			return "{{templateid:" + newID + "}}"
		}
		return tok
	})
}
