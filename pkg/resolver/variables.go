package resolver

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrymomot/templatewing/pkg/i18n"
)

var variableToken = regexp.MustCompile(`(?i)\{(DATE|TIME|SENDER_NAME|SENDER_EMAIL)\}`)

// Context carries the per-call values placeholders are replaced with.
type Context struct {
	Now         time.Time
	SenderName  string
	SenderEmail string
	// Format selects date and time layouts; nil means en-US.
	Format *i18n.LocaleFormat
}

// Substitute replaces {DATE}, {TIME}, {SENDER_NAME} and {SENDER_EMAIL} in text,
// ignoring case. Other brace sequences are left alone. Values are inserted as
// plain text, which suits subjects.
func Substitute(text string, c Context) string {
	return substitute(text, c, nil)
}

// SubstituteHTML is Substitute for HTML bodies: every value is HTML-escaped, so a
// sender name cannot inject markup.
func SubstituteHTML(text string, c Context) string {
	return substitute(text, c, html.EscapeString)
}

func substitute(text string, c Context, escape func(string) string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	format := c.Format
	if format == nil {
		format = i18n.FormatEnUS()
	}
	return variableToken.ReplaceAllStringFunc(text, func(tok string) string {
		var v string
		switch strings.ToUpper(tok[1 : len(tok)-1]) {
		case "DATE":
			v = format.FormatDate(c.Now)
		case "TIME":
			v = format.FormatTime(c.Now)
		case "SENDER_NAME":
			v = c.SenderName
		case "SENDER_EMAIL":
			v = c.SenderEmail
		default:
			return tok
		}
		if escape != nil {
			v = escape(v)
		}
		return v
	})
}
