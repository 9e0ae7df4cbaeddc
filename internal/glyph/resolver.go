package glyph

import (
	"strings"
	"sync/atomic"
)

// DefaultFallback is the marker shown for tokens with no known glyph.
const DefaultFallback = "[X]"

// Resolver maps a syllable token to a display glyph.
type Resolver interface {
	Resolve(token string) string
}

// Func adapts an ordinary function to the Resolver interface.
type Func func(token string) string

// Resolve calls f(token).
func (f Func) Resolve(token string) string {
	return f(token)
}

// Identity returns its input unchanged. It is convenient in tests and when no
// sign list is configured.
var Identity Resolver = Func(func(token string) string { return token })

// TableOption configures a Table.
type TableOption func(*Table)

// WithFallback sets the marker returned for unknown tokens.
func WithFallback(marker string) TableOption {
	return func(t *Table) {
		t.fallback = marker
	}
}

// Table is a dictionary Resolver. Keys are stored in encoded form (see
// EncodeInput). The dictionary can be replaced while other goroutines resolve.
type Table struct {
	entries  atomic.Pointer[map[string]string]
	fallback string
}

// NewTable creates a table from a token to glyph dictionary.
func NewTable(entries map[string]string, opts ...TableOption) *Table {
	t := &Table{fallback: DefaultFallback}
	for _, opt := range opts {
		opt(t)
	}
	t.Replace(entries)
	return t
}

// Replace swaps the dictionary. Keys are re-encoded so callers can supply
// either accented or subscript forms.
func (t *Table) Replace(entries map[string]string) {
	m := make(map[string]string, len(entries))
	for k, v := range entries {
		m[EncodeInput(k)] = v
	}
	t.entries.Store(&m)
}

// Resolve returns the glyph for token or the fallback marker.
func (t *Table) Resolve(token string) string {
	m := t.entries.Load()
	if m == nil {
		return t.fallback
	}

	key := EncodeInput(token)
	if g, ok := (*m)[key]; ok {
		return g
	}
	if g, ok := (*m)[strings.ToLower(key)]; ok {
		return g
	}
	return t.fallback
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	m := t.entries.Load()
	if m == nil {
		return 0
	}
	return len(*m)
}

// Fallback returns the marker used for unknown tokens.
func (t *Table) Fallback() string {
	return t.fallback
}
