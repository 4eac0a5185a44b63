// Package i18n provides locale-aware date and time formatting for template placeholders.
//
// A LocaleFormat is immutable and safe for concurrent use. The predefined formats cover
// the locales the service negotiates from an Accept-Language header:
//
//	lf := i18n.Negotiate(r.Header.Get("Accept-Language"))
//	lf.FormatDate(now) // "18.10.2026" for de-DE
//
// Unknown or empty headers fall back to en-US.
package i18n
