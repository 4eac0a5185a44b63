package templates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/templatewing/pkg/templates"
)

func TestInsertMode_OrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, templates.InsertAppend, templates.InsertMode("").OrDefault())
	assert.Equal(t, templates.InsertAppend, templates.InsertMode("prepend").OrDefault())
	assert.Equal(t, templates.InsertReplace, templates.InsertReplace.OrDefault())
	assert.False(t, templates.InsertMode("REPLACE").Valid())
}

func TestTemplate_Normalize(t *testing.T) {
	t.Parallel()

	tmpl := templates.Template{
		Name:     "  Greeting ",
		Category: " Sales ",
		To:       []string{" a@example.com ", "", "  "},
	}
	tmpl.Normalize()

	assert.Equal(t, "Greeting", tmpl.Name)
	assert.Equal(t, "Sales", tmpl.Category)
	assert.Equal(t, []string{"a@example.com"}, tmpl.To)
	assert.NotNil(t, tmpl.CC)
	assert.Empty(t, tmpl.CC)
	assert.NotNil(t, tmpl.Attachments)
	assert.Equal(t, templates.InsertAppend, tmpl.InsertMode)
}

func TestTemplate_Clone(t *testing.T) {
	t.Parallel()

	used := time.Now()
	orig := templates.Template{
		To:          []string{"a@example.com"},
		Attachments: []templates.Attachment{{ID: "1", Name: "a.txt"}},
		LastUsedAt:  &used,
	}
	c := orig.Clone()
	c.To[0] = "b@example.com"
	c.Attachments[0].Name = "b.txt"
	*c.LastUsedAt = used.Add(time.Hour)

	assert.Equal(t, "a@example.com", orig.To[0])
	assert.Equal(t, "a.txt", orig.Attachments[0].Name)
	assert.Equal(t, used, *orig.LastUsedAt)
}

func TestTemplate_VisibleTo(t *testing.T) {
	t.Parallel()

	global := templates.Template{Name: "global"}
	scoped := templates.Template{Name: "scoped", Identities: []string{"id1"}}

	assert.True(t, global.VisibleTo("id2"))
	assert.True(t, scoped.VisibleTo("id1"))
	assert.False(t, scoped.VisibleTo("id2"))
	assert.True(t, scoped.VisibleTo(""))

	got := templates.ForIdentity([]templates.Template{global, scoped}, "id2")
	require.Len(t, got, 1)
	assert.Equal(t, "global", got[0].Name)
}

func TestParseRecipients(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a@example.com", []string{"a@example.com"}},
		{" a@example.com , b@example.com,, ", []string{"a@example.com", "b@example.com"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, templates.ParseRecipients(tt.in), tt.in)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	list := []templates.Template{
		{Category: "Support"},
		{Category: ""},
		{Category: "Sales"},
		{Category: "Support"},
	}
	assert.Equal(t, []string{"Sales", "Support"}, templates.Categories(list))
	assert.Empty(t, templates.Categories(nil))
}

func TestDuplicate(t *testing.T) {
	t.Parallel()

	used := time.Now()
	orig := templates.Template{
		ID:          "01ABC",
		Name:        "Welcome",
		UsageCount:  4,
		LastUsedAt:  &used,
		CreatedAt:   used,
		Attachments: []templates.Attachment{{ID: "att1", Name: "a.pdf"}},
	}
	d := templates.Duplicate(orig)

	assert.Empty(t, d.ID)
	assert.Equal(t, "Copy of Welcome", d.Name)
	assert.Zero(t, d.UsageCount)
	assert.Nil(t, d.LastUsedAt)
	assert.True(t, d.CreatedAt.IsZero())
	assert.Empty(t, d.Attachments[0].ID)
	assert.Equal(t, "att1", orig.Attachments[0].ID)
}
