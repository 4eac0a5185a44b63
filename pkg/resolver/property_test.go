package resolver_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dmitrymomot/templatewing/pkg/resolver"
	"github.com/dmitrymomot/templatewing/pkg/templates"
)

// acyclicGraph draws templates t0..tn-1 where ti may only include tj with j > i.
func acyclicGraph(t *rapid.T) []templates.Template {
	n := rapid.IntRange(1, 7).Draw(t, "n")
	list := make([]templates.Template, n)
	for i := range n {
		var body strings.Builder
		body.WriteString(rapid.StringMatching(`[a-z ]{0,6}`).Draw(t, fmt.Sprintf("text%d", i)))
		if i < n-1 {
			edges := rapid.IntRange(0, 2).Draw(t, fmt.Sprintf("edges%d", i))
			for e := range edges {
				j := rapid.IntRange(i+1, n-1).Draw(t, fmt.Sprintf("target%d_%d", i, e))
				if rapid.Bool().Draw(t, fmt.Sprintf("byID%d_%d", i, e)) {
					fmt.Fprintf(&body, "{{templateid:t%d}}", j)
				} else {
					fmt.Fprintf(&body, "{{template:NAME%d}}", j)
				}
			}
		}
		if rapid.Bool().Draw(t, fmt.Sprintf("dangling%d", i)) {
			body.WriteString("{{template:nowhere}}")
		}
		list[i] = tmpl(fmt.Sprintf("t%d", i), fmt.Sprintf("Name%d", i), body.String())
	}
	return list
}

func TestExpandIncludes_AcyclicGraphsTerminateWithoutTokens(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		list := acyclicGraph(t)
		root := rapid.IntRange(0, len(list)-1).Draw(t, "root")

		out, _, err := resolver.ExpandIncludes(list[root].Body, list[root].ID, resolver.NewIndex(list), 0)
		require.NoError(t, err)
		require.NotContains(t, out, "{{template")
	})
}

func TestExpandIncludes_BackEdgeIsACycle(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "n")
		back := rapid.IntRange(0, n-1).Draw(t, "back")

		// chain t0 -> t1 -> ... -> tn-1 -> t<back>
		list := make([]templates.Template, n)
		for i := range n {
			next := i + 1
			if i == n-1 {
				next = back
			}
			list[i] = tmpl(fmt.Sprintf("t%d", i), fmt.Sprintf("Name%d", i), fmt.Sprintf("x{{templateid:t%d}}", next))
		}

		_, _, err := resolver.ExpandIncludes(list[0].Body, "t0", resolver.NewIndex(list), 0)
		var cycle *resolver.CircularReferenceError
		require.ErrorAs(t, err, &cycle)
		require.Equal(t, fmt.Sprintf("Name%d", back), cycle.TemplateName)
	})
}

func TestSubstitute_NoPlaceholderSurvives(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		names := []string{"DATE", "TIME", "SENDER_NAME", "SENDER_EMAIL"}
		var b strings.Builder
		for i := range rapid.IntRange(0, 5).Draw(t, "count") {
			name := rapid.SampledFrom(names).Draw(t, fmt.Sprintf("name%d", i))
			if rapid.Bool().Draw(t, fmt.Sprintf("lower%d", i)) {
				name = strings.ToLower(name)
			}
			b.WriteString("{" + name + "}")
		}

		out := resolver.Substitute(b.String(), resolver.Context{SenderName: "n", SenderEmail: "e"})
		require.NotContains(t, strings.ToUpper(out), "{SENDER")
		require.NotContains(t, strings.ToUpper(out), "{DATE}")
		require.NotContains(t, strings.ToUpper(out), "{TIME}")
	})
}
