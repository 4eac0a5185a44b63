package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var supported = []*LocaleFormat{
	FormatEnUS(), // first entry is the matcher fallback
	FormatEnGB(),
	FormatDeDE(),
	FormatFrFR(),
	FormatEsES(),
	FormatPtBR(),
	FormatJaJP(),
	FormatZhCN(),
}

var matcher = newMatcher()

func newMatcher() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, lf := range supported {
		tags[i] = lf.tag
	}
	return language.NewMatcher(tags)
}

// Supported returns the tags of all predefined formats, en-US first.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supported))
	for i, lf := range supported {
		tags[i] = lf.tag
	}
	return tags
}

// Negotiate picks the best predefined format for an Accept-Language header value.
// Malformed or empty input yields en-US.
func Negotiate(acceptLanguage string) *LocaleFormat {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// ForLocale returns the predefined format for a BCP 47 locale string like "de-DE".
func ForLocale(locale string) *LocaleFormat {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return supported[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}
