// Package sanitizer cleans template and draft HTML with bluemonday policies.
package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// Email bodies come from rich-text editors: keep layout, tables, inline
		// images and styling, drop scripts, handlers and unsafe URLs.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowStyling()
		emailPolicy.AllowAttrs("style").Globally()
		emailPolicy.AllowElements("span", "div", "font", "center", "u", "s")
		emailPolicy.AllowAttrs("color", "face", "size").OnElements("font")
		emailPolicy.AllowAttrs("align", "valign", "width", "height", "bgcolor").OnElements(
			"table", "tr", "td", "th", "div", "p", "img",
		)
		emailPolicy.AllowAttrs("cellpadding", "cellspacing", "border").OnElements("table")
		emailPolicy.AllowDataURIImages()
		emailPolicy.AllowURLSchemes("http", "https", "mailto", "cid")
		emailPolicy.RequireNoFollowOnLinks(false)
	})
}

// SanitizeEmailHTML keeps formatting an email body needs and strips scripts,
// event handlers and javascript: URLs. Placeholder braces pass through untouched.
func SanitizeEmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

var blockBreaks = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|tr|h[1-6]|blockquote)>`)

// PlainText renders HTML as plain text for the text/plain part of an email.
// Block boundaries become newlines and entities are decoded.
func PlainText(s string) string {
	initPolicies()
	s = blockBreaks.ReplaceAllString(s, "$0\n")
	text := html.UnescapeString(strictPolicy.Sanitize(s))

	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
