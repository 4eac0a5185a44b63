package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/templatewing/pkg/i18n"
)

func TestNegotiate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
	}{
		{"", "en-US"},
		{"de-DE,de;q=0.9,en;q=0.5", "de-DE"},
		{"fr-CH, fr;q=0.9", "fr-FR"},
		{"ja", "ja-JP"},
		{"en-GB", "en-GB"},
		{"xx-YY", "en-US"},
		{";;;", "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, i18n.Negotiate(tt.header).Tag().String())
		})
	}
}

func TestForLocale(t *testing.T) {
	t.Parallel()

	require.Equal(t, "de-DE", i18n.ForLocale("de-DE").Tag().String())
	require.Equal(t, "en-US", i18n.ForLocale("not a locale").Tag().String())
	require.Len(t, i18n.Supported(), 8)
}
