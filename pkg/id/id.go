// Package id provides sortable ID generation for templates and attachments.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID generates a ULID (Universally Unique Lexicographically Sortable Identifier).
// Returns a 26-character string: 10 chars timestamp (48-bit ms) + 16 chars random (80-bit).
func NewULID() string {
	ms := uint64(time.Now().UnixMilli())

	var out [26]byte
	encodeTimestamp(out[:10], ms)
	encodeRandom(out[10:], randomBytes(10))
	return string(out[:])
}

// NewShortID generates a shorter sortable ID.
// Returns a 16-character string: 6 chars timestamp + 10 chars random.
// Used for attachment ids, which only need to be unique within one template.
func NewShortID() string {
	// Lower 30 bits of milliseconds: ~34 years before the prefix wraps.
	ms := uint64(time.Now().UnixMilli()) & 0x3FFFFFFF

	var out [16]byte
	encodeTimestamp(out[:6], ms)
	encodeRandom(out[6:], randomBytes(7))
	return string(out[:])
}

// NewTemplateID returns an identifier for a newly created template.
func NewTemplateID() string {
	return NewULID()
}

// NewAttachmentID returns an identifier for a template attachment.
func NewAttachmentID() string {
	return NewShortID()
}

// encodeTimestamp writes ts into dst as big-endian base32, 5 bits per char.
func encodeTimestamp(dst []byte, ts uint64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = crockfordBase32[ts&0x1F]
		ts >>= 5
	}
}

// encodeRandom packs src bits into dst base32 chars, most significant bits first.
func encodeRandom(dst, src []byte) {
	var (
		acc  uint64
		bits uint
		pos  int
	)
	for _, b := range src {
		acc = acc<<8 | uint64(b)
		bits += 8
		for bits >= 5 && pos < len(dst) {
			bits -= 5
			dst[pos] = crockfordBase32[(acc>>bits)&0x1F]
			pos++
		}
	}
	for pos < len(dst) {
		dst[pos] = crockfordBase32[(acc<<(5-bits%5))&0x1F]
		pos++
	}
}

func randomBytes(n int) []byte {
	b := make([]byte, max(n, 8))
	if _, err := rand.Read(b); err != nil {
		// Fallback: use time-based entropy (degraded but functional)
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
	}
	return b[:n]
}
