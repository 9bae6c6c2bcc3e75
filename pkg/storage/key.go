package storage

import (
	"crypto/rand"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// suffixLength is the number of hex characters taken from a random UUID.
const suffixLength = 8

// KeyGenerator produces collision-resistant storage keys.
// Keys have the form "{unix-millis}-{8 hex chars}{ext}".
type KeyGenerator struct {
	now    func() time.Time
	random io.Reader
}

// KeyOption configures a KeyGenerator.
type KeyOption func(*KeyGenerator)

// WithClock sets the time source used for the timestamp part of keys.
func WithClock(now func() time.Time) KeyOption {
	return func(g *KeyGenerator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRandom sets the entropy source used for the random suffix.
func WithRandom(r io.Reader) KeyOption {
	return func(g *KeyGenerator) {
		if r != nil {
			g.random = r
		}
	}
}

// NewKeyGenerator creates a KeyGenerator using the wall clock and crypto/rand.
func NewKeyGenerator(opts ...KeyOption) *KeyGenerator {
	g := &KeyGenerator{
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a new key for a file with the given original name.
// The original extension is kept (lower-cased); the rest of the name is dropped.
func (g *KeyGenerator) Generate(originalName string) string {
	return strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + g.suffix() + extension(originalName)
}

func (g *KeyGenerator) suffix() string {
	u, err := uuid.NewRandomFromReader(g.random)
	if err != nil {
		// Fallback: crypto/rand backed UUID (entropy source exhausted)
		u = uuid.New()
	}
	return strings.ReplaceAll(u.String(), "-", "")[:suffixLength]
}

// extension returns the sanitized, lower-cased extension of a file name.
// Extensions that are not plain alphanumerics are dropped.
func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(strings.ReplaceAll(name, "\\", "/"))))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
