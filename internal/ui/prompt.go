package ui

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/tupshar/internal/atf"
)

// errEntry reports a lemma entry that cannot be parsed.
var errEntry = errors.New("expected normalisation | transliteration | translation")

// prompt is the single-line input used to enter a lemma.
type prompt struct {
	label string
	input []rune
}

func newPrompt(label string) *prompt {
	return &prompt{label: label}
}

func (p *prompt) insert(r rune) {
	p.input = append(p.input, r)
}

// backspace removes the last grapheme cluster, so a letter and its
// combining accent go together.
func (p *prompt) backspace() {
	s := string(p.input)
	if s == "" {
		return
	}

	last := 0
	state := -1
	rest := s
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if rest == "" {
			last = len(s) - len(cluster)
		}
	}
	p.input = []rune(s[:last])
}

func (p *prompt) text() string {
	return string(p.input)
}

// entry is a parsed lemma entry.
type entry struct {
	normalisation   string
	transliteration string
	translation     string
}

// parseEntry splits "norm | translit | transl". The translation may be
// omitted. ATF shorthand is converted in the first two fields.
func parseEntry(s string) (entry, error) {
	parts := strings.Split(s, "|")
	if len(parts) < 2 || len(parts) > 3 {
		return entry{}, errEntry
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	e := entry{
		normalisation:   atf.Normalize(parts[0]),
		transliteration: atf.Normalize(parts[1]),
	}
	if len(parts) == 3 {
		e.translation = parts[2]
	}
	if e.normalisation == "" || e.transliteration == "" {
		return entry{}, errEntry
	}
	return e, nil
}
