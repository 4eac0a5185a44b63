package resolver

import "strings"

// Reference identifies an included template. It is either ByName or ByID.
type Reference interface {
	String() string
	reference()
}

// ByName refers to a template by case-insensitive name.
type ByName string

// ByID refers to a template by exact id.
type ByID string

func (ByName) reference() {}
func (ByID) reference()   {}

func (r ByName) String() string { return "template:" + string(r) }
func (r ByID) String() string   { return "templateid:" + string(r) }

// Unresolved is a reference that matched no template. Its token was dropped.
type Unresolved struct {
	Reference Reference
	// Within is the id of the template whose body held the token.
	Within string
}

func (u Unresolved) String() string {
	return "{{" + u.Reference.String() + "}}"
}

func parseReference(kind, value string) Reference {
	value = strings.TrimSpace(value)
	if kind == "templateid" {
		return ByID(value)
	}
	return ByName(value)
}
