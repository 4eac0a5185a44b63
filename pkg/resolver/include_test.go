package resolver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/templatewing/pkg/resolver"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

func TestExpandIncludes(t *testing.T) {
	t.Parallel()

	list := []templates.Template{
		tmpl("sig", "Signature", "Best, Ann"),
		tmpl("addr", "Address", "1 Main St"),
		tmpl("footer", "Footer", "{{template:Signature}} / {{templateid:addr}}"),
	}

	tests := []struct {
		name       string
		text       string
		want       string
		unresolved []string
	}{
		{"no tokens", "plain text", "plain text", nil},
		{"by name", "Hi {{template:Signature}}", "Hi Best, Ann", nil},
		{"by name case-insensitive and trimmed", "{{template:  sIgNaTuRe }}", "Best, Ann", nil},
		{"by id", "[{{templateid:addr}}]", "[1 Main St]", nil},
		{"id lookup is exact", "{{templateid:ADDR}}", "", []string{"{{templateid:ADDR}}"}},
		{"nested", "{{template:Footer}}!", "Best, Ann / 1 Main St!", nil},
		{"repeated sibling", "{{template:Signature}}|{{template:Signature}}", "Best, Ann|Best, Ann", nil},
		{"unknown dropped", "a{{template:Nope}}b", "ab", []string{"{{template:Nope}}"}},
		{"malformed left alone", "{{template:}} {template:Signature}", "{{template:}} {template:Signature}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, warnings, err := resolver.ExpandIncludes(tt.text, "root", resolver.NewIndex(list), 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)

			got := make([]string, 0, len(warnings))
			for _, w := range warnings {
				got = append(got, w.String())
			}
			if tt.unresolved == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.unresolved, got)
			}
		})
	}
}

func TestExpandIncludes_SelfReference(t *testing.T) {
	t.Parallel()

	a := tmpl("a", "A", "{{template:A}}")
	_, _, err := resolver.ExpandIncludes(a.Body, a.ID, resolver.NewIndex([]templates.Template{a}), 0)

	require.ErrorIs(t, err, resolver.ErrCircularReference)
	var cycle *resolver.CircularReferenceError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, "A", cycle.TemplateName)
	assert.Equal(t, []string{"a", "a"}, cycle.Path)
}

func TestExpandIncludes_IndirectCycle(t *testing.T) {
	t.Parallel()

	list := []templates.Template{
		tmpl("a", "A", "x {{template:B}}"),
		tmpl("b", "B", "y {{templateid:a}}"),
	}
	_, _, err := resolver.ExpandIncludes(list[0].Body, "a", resolver.NewIndex(list), 0)

	var cycle *resolver.CircularReferenceError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, "A", cycle.TemplateName)
	assert.Equal(t, []string{"a", "b", "a"}, cycle.Path)
}

func TestExpandIncludes_DiamondIsNotACycle(t *testing.T) {
	t.Parallel()

	list := []templates.Template{
		tmpl("a", "A", "{{template:B}}+{{template:C}}"),
		tmpl("b", "B", "B({{template:D}})"),
		tmpl("c", "C", "C({{template:D}})"),
		tmpl("d", "D", "d"),
	}
	out, warnings, err := resolver.ExpandIncludes(list[0].Body, "a", resolver.NewIndex(list), 0)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "B(d)+C(d)", out)
}

func TestExpandIncludes_DepthCeiling(t *testing.T) {
	t.Parallel()

	// t0 -> t1 -> ... -> t5
	var list []templates.Template
	for i := range 6 {
		body := "leaf"
		if i < 5 {
			body = "{{templateid:t" + string(rune('0'+i+1)) + "}}"
		}
		list = append(list, tmpl("t"+string(rune('0'+i)), "T"+string(rune('0'+i)), body))
	}
	idx := resolver.NewIndex(list)

	out, _, err := resolver.ExpandIncludes(list[0].Body, "t0", idx, 5)
	require.NoError(t, err)
	assert.Equal(t, "leaf", out)

	_, _, err = resolver.ExpandIncludes(list[0].Body, "t0", idx, 4)
	require.ErrorIs(t, err, resolver.ErrResolutionTooDeep)
	require.NotErrorIs(t, err, resolver.ErrCircularReference)
}

func TestExpandIncludes_CycleReportedBeforeDepth(t *testing.T) {
	t.Parallel()

	a := tmpl("a", "A", "{{template:A}}")
	_, _, err := resolver.ExpandIncludes(a.Body, "a", resolver.NewIndex([]templates.Template{a}), 1)
	require.ErrorIs(t, err, resolver.ErrCircularReference)
}

func TestExpandIncludes_UnresolvedWithinNested(t *testing.T) {
	t.Parallel()

	list := []templates.Template{
		tmpl("a", "A", "{{template:B}}"),
		tmpl("b", "B", "b{{templateid:missing}}"),
	}
	out, warnings, err := resolver.ExpandIncludes(list[0].Body, "a", resolver.NewIndex(list), 0)

	require.NoError(t, err)
	assert.Equal(t, "b", out)
	require.Len(t, warnings, 1)
	assert.Equal(t, resolver.ByID("missing"), warnings[0].Reference)
	assert.Equal(t, "b", warnings[0].Within)
}

func TestIndex_FirstNameMatchWins(t *testing.T) {
	t.Parallel()

	idx := resolver.NewIndex([]templates.Template{
		tmpl("1", "Dup", "first"),
		tmpl("2", "dup", "second"),
	})

	got, ok := idx.Lookup(resolver.ByName("DUP"))
	require.True(t, ok)
	assert.Equal(t, "first", got.Body)
	assert.Equal(t, 2, idx.Len())
}

func TestIndex_EntityEncodedName(t *testing.T) {
	t.Parallel()

	idx := resolver.NewIndex([]templates.Template{tmpl("1", "Tom's & Co", "hi")})

	got, ok := idx.Lookup(resolver.ByName("Tom&#39;s &amp; Co"))
	require.True(t, ok)
	assert.Equal(t, "hi", got.Body)
}

func TestIndex_UnicodeFolding(t *testing.T) {
	t.Parallel()

	idx := resolver.NewIndex([]templates.Template{tmpl("1", "Straße", "de")})

	_, ok := idx.Lookup(resolver.ByName("STRASSE"))
	assert.True(t, ok)
}

func TestRewriteIDReferences(t *testing.T) {
	t.Parallel()

	mapping := map[string]string{"old1": "new1", "old2": "new2"}
	in := "{{templateid:old1}} {{templateid: old2 }} {{templateid:keep}} {{template:old1}}"

	assert.Equal(t,
		"{{templateid:new1}} {{templateid:new2}} {{templateid:keep}} {{template:old1}}",
		resolver.RewriteIDReferences(in, mapping),
	)
	assert.Equal(t, "plain", resolver.RewriteIDReferences("plain", mapping))
	assert.Equal(t, in, resolver.RewriteIDReferences(in, nil))
}
