// Package id generates sortable identifiers for requests and applications.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	ulidLength    = 26
	timestampLen  = 10
	entropyLength = 10
)

// NewULID generates a ULID (Universally Unique Lexicographically Sortable Identifier).
// Returns a 26-character string: 10 chars timestamp (48-bit ms) + 16 chars random (80-bit).
// ULIDs are lexicographically sortable by creation time.
func NewULID() string {
	return newULID(time.Now(), rand.Reader)
}

// newULID builds a ULID from the given time and entropy source.
func newULID(t time.Time, entropy io.Reader) string {
	var buf [16]byte
	ms := uint64(t.UnixMilli())
	// 48-bit big-endian timestamp in the first 6 bytes.
	for i := 5; i >= 0; i-- {
		buf[i] = byte(ms)
		ms >>= 8
	}
	if _, err := io.ReadFull(entropy, buf[6:]); err != nil {
		// Fallback: use time-based entropy (degraded but functional)
		binary.BigEndian.PutUint64(buf[6:14], uint64(time.Now().UnixNano()))
	}
	return encode(buf)
}

// encode writes the 128-bit value as 26 Crockford Base32 characters.
// The first character carries only the top 3 bits (130 bits of output, 2 zero pad bits).
func encode(buf [16]byte) string {
	var out [ulidLength]byte
	hi := binary.BigEndian.Uint64(buf[:8])
	lo := binary.BigEndian.Uint64(buf[8:])
	for i := ulidLength - 1; i >= 0; i-- {
		out[i] = crockfordBase32[lo&0x1F]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
