package render

import (
	"fmt"
	"strings"
)

// Kind selects which text of a node a view shows.
type Kind uint8

const (
	Cuneiform Kind = iota
	Transliteration
	Normalisation
	Translation
)

// Kinds lists every view in display order.
var Kinds = []Kind{Cuneiform, Transliteration, Normalisation, Translation}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Cuneiform:
		return "cuneiform"
	case Transliteration:
		return "transliteration"
	case Normalisation:
		return "normalisation"
	case Translation:
		return "translation"
	default:
		return "unknown"
	}
}

// Next returns the kind after k, wrapping around.
func (k Kind) Next() Kind {
	return Kind((int(k) + 1) % len(Kinds))
}

// ParseKind parses a kind name. "normalization" is accepted as well.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cuneiform":
		return Cuneiform, nil
	case "transliteration":
		return Transliteration, nil
	case "normalisation", "normalization":
		return Normalisation, nil
	case "translation":
		return Translation, nil
	}
	return 0, fmt.Errorf("unknown view %q", s)
}
