package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMIME(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, MIMEOctetStream},
		{"pdf", []byte("%PDF-1.4\n"), "application/pdf"},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "image/png"},
		{"text drops charset", []byte("hello"), "text/plain"},
		{"binary", []byte{0x00, 0x01, 0x02, 0xff}, MIMEOctetStream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectMIME(tt.data))
		})
	}
}

func TestNormalizeMIME(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text/html", NormalizeMIME(" Text/HTML; charset=UTF-8"))
	assert.Equal(t, "", NormalizeMIME(""))
}

func TestDetectMIMEWithReader(t *testing.T) {
	t.Parallel()

	t.Run("seekable input is rewound", func(t *testing.T) {
		t.Parallel()

		mimeType, body, n, err := detectMIMEWithReader(bytes.NewReader([]byte("%PDF-1.7 rest")))
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", mimeType)
		assert.Equal(t, int64(-1), n)
		all, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 rest", string(all))
	})

	t.Run("stream is buffered", func(t *testing.T) {
		t.Parallel()

		mimeType, body, n, err := detectMIMEWithReader(io.MultiReader(strings.NewReader(`{"version":`), strings.NewReader(`"1.3"}`)))
		require.NoError(t, err)
		assert.Equal(t, "text/plain", mimeType)
		assert.Equal(t, int64(17), n)
		all, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, `{"version":"1.3"}`, string(all))
	})
}

func TestValidateContent(t *testing.T) {
	t.Parallel()

	rules := []ValidationRule{NotEmpty(), MaxSize(4)}

	require.NoError(t, ValidateContent("a.txt", []byte("abcd"), "text/plain", rules...))

	err := ValidateContent("a.txt", []byte("abcde"), "text/plain", rules...)
	require.ErrorIs(t, err, ErrInvalidContent)
	var verr *ContentValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeTooLarge, verr.Code)
	assert.Equal(t, "a.txt: size 5 exceeds limit of 4 bytes", err.Error())

	err = ValidateContent("", nil, MIMEOctetStream, rules...)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeEmpty, verr.Code)
	assert.Equal(t, "content is empty", err.Error())
}
