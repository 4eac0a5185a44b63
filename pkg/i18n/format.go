package i18n

import (
	"time"

	"golang.org/x/text/language"
)

// LocaleFormat contains date and time layouts for one locale.
// It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	tag            language.Tag
	dateFormat     string
	timeFormat     string
	dateTimeFormat string
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a new LocaleFormat with the given options.
// If no options are provided, it defaults to US English formatting.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		tag:            language.AmericanEnglish,
		dateFormat:     "01/02/2006",
		timeFormat:     "3:04 PM",
		dateTimeFormat: "01/02/2006 3:04 PM",
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithTag sets the language tag the format belongs to.
func WithTag(tag language.Tag) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.tag = tag
	}
}

// WithDateFormat sets the date format string (Go time layout).
func WithDateFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		if format != "" {
			lf.dateFormat = format
		}
	}
}

// WithTimeFormat sets the time format string (Go time layout).
func WithTimeFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		if format != "" {
			lf.timeFormat = format
		}
	}
}

// WithDateTimeFormat sets the datetime format string (Go time layout).
func WithDateTimeFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		if format != "" {
			lf.dateTimeFormat = format
		}
	}
}

// Tag returns the language tag of the format.
func (lf *LocaleFormat) Tag() language.Tag {
	return lf.tag
}

// FormatDate formats a date with the locale's date format.
func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(lf.dateFormat)
}

// FormatTime formats a time with the locale's time format.
func (lf *LocaleFormat) FormatTime(t time.Time) string {
	return t.Format(lf.timeFormat)
}

// FormatDateTime formats a datetime with the locale's datetime format.
func (lf *LocaleFormat) FormatDateTime(t time.Time) string {
	return t.Format(lf.dateTimeFormat)
}
