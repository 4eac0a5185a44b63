package resolver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/templatewing/pkg/i18n"
	"github.com/dmitrymomot/templatewing/pkg/resolver"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	c := resolver.Context{
		Now:         time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC),
		SenderName:  "Ann",
		SenderEmail: "ann@example.com",
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{"all placeholders", "{DATE} {TIME} {SENDER_NAME} <{SENDER_EMAIL}>", "10/18/2026 9:30 AM Ann <ann@example.com>"},
		{"case-insensitive", "{date}/{Sender_Name}/{sender_email}", "10/18/2026/Ann/ann@example.com"},
		{"unknown braces untouched", "{NAME} {{DATE}}", "{NAME} {10/18/2026}"},
		{"no braces", "hello", "hello"},
		{"repeated", "{SENDER_NAME}{SENDER_NAME}", "AnnAnn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resolver.Substitute(tt.text, c))
		})
	}
}

func TestSubstitute_EmptySenderAndLocale(t *testing.T) {
	t.Parallel()

	c := resolver.Context{
		Now:    time.Date(2026, time.October, 18, 21, 5, 0, 0, time.UTC),
		Format: i18n.FormatDeDE(),
	}

	assert.Equal(t, "18.10.2026 21:05 []", resolver.Substitute("{DATE} {TIME} [{SENDER_NAME}{SENDER_EMAIL}]", c))
}

func TestSubstituteHTML_EscapesValues(t *testing.T) {
	t.Parallel()

	c := resolver.Context{
		Now:         time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC),
		SenderName:  `Ann <script>alert("x")</script> & Co`,
		SenderEmail: "ann@example.com",
	}

	assert.Equal(t,
		"<p>Ann &lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; Co ann@example.com</p>",
		resolver.SubstituteHTML("<p>{SENDER_NAME} {sender_email}</p>", c),
	)
	assert.Equal(t,
		`Re: Ann <script>alert("x")</script> & Co`,
		resolver.Substitute("Re: {SENDER_NAME}", c),
	)
}
