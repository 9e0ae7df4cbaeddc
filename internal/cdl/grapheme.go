package cdl

import (
	"strings"
)

// SignKind says how a grapheme's sign is read.
type SignKind uint8

const (
	// SignValue is a syllabic reading (lower case), e.g. "ša".
	SignValue SignKind = iota
	// SignName is a sign name used logographically (upper case), e.g. "LUGAL".
	SignName
)

// String returns "value" or "name".
func (k SignKind) String() string {
	if k == SignName {
		return "name"
	}
	return "value"
}

// SignReading is the reading of one sign.
type SignReading struct {
	Kind SignKind
	Text string
}

// Grapheme describes one syllable segment of a transliteration.
type Grapheme struct {
	// Glyph is the resolved cuneiform glyph, nil when no resolver was available.
	Glyph     *string
	Sign      SignReading
	Logogram  bool
	Separator string
}

// Resolver maps a syllable token to a glyph string.
type Resolver interface {
	Resolve(token string) string
}

// ParseGraphemes splits a transliteration on "-" into graphemes. All segments
// but the last are separated by "-"; the last by " ". A segment written
// entirely in upper case is a logogram read by sign name.
func ParseGraphemes(transliteration string, resolver Resolver) []Grapheme {
	if transliteration == "" {
		return nil
	}

	syllables := strings.Split(transliteration, "-")
	graphemes := make([]Grapheme, 0, len(syllables))
	for i, syllable := range syllables {
		sep := "-"
		if i == len(syllables)-1 {
			sep = " "
		}
		graphemes = append(graphemes, makeGrapheme(syllable, sep, resolver))
	}
	return graphemes
}

func makeGrapheme(syllable, sep string, resolver Resolver) Grapheme {
	g := Grapheme{Separator: sep}
	if strings.ToUpper(syllable) == syllable {
		g.Sign = SignReading{Kind: SignName, Text: syllable}
		g.Logogram = true
	} else {
		g.Sign = SignReading{Kind: SignValue, Text: syllable}
	}
	if resolver != nil {
		glyph := resolver.Resolve(syllable)
		g.Glyph = &glyph
	}
	return g
}

// MakeLemma builds a lemma at ref, resolving each syllable's glyph.
func MakeLemma(normalisation, transliteration, translation string, resolver Resolver, ref Reference) Lemma {
	return Lemma{
		Transliteration: transliteration,
		Normalisation:   normalisation,
		Translation:     translation,
		Graphemes:       ParseGraphemes(transliteration, resolver),
		Ref:             ref,
	}
}
