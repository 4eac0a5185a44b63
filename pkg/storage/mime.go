package storage

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// MIMEOctetStream is the type used when content cannot be identified.
const MIMEOctetStream = "application/octet-stream"

// http.DetectContentType looks at no more than this many bytes.
const mimeDetectionBytes = 512

// DetectMIME identifies data by its magic bytes. Parameters such as charset are
// dropped. Empty data is application/octet-stream.
func DetectMIME(data []byte) string {
	if len(data) == 0 {
		return MIMEOctetStream
	}
	return NormalizeMIME(http.DetectContentType(data[:min(len(data), mimeDetectionBytes)]))
}

// NormalizeMIME returns the lowercase base type of mimeType without parameters.
func NormalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// detectMIMEWithReader sniffs r and returns a seekable reader positioned at the start,
// which PutObject needs to compute the payload hash. Non-seekable input is buffered.
func detectMIMEWithReader(r io.Reader) (string, io.ReadSeeker, int64, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		buf := make([]byte, mimeDetectionBytes)
		n, err := io.ReadFull(rs, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return "", nil, 0, err
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return "", nil, 0, err
		}
		return DetectMIME(buf[:n]), rs, -1, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, 0, err
	}
	return DetectMIME(data), bytes.NewReader(data), int64(len(data)), nil
}
