package cdl

import (
	"strconv"
	"strings"
)

// Node is a lemma or a discontinuity.
type Node interface {
	isNode()

	// Cuneiform renders the node's glyphs.
	Cuneiform() string
	// Transliterated renders the node's transliteration.
	Transliterated() string
	// Normalised renders the node's normalised form.
	Normalised() string
	// Translated renders the node's translation.
	Translated() string
}

// DiscontinuityKind classifies structural markers.
type DiscontinuityKind uint8

const (
	// DocumentStart marks the beginning of a document.
	DocumentStart DiscontinuityKind = iota
	// LineStart marks the beginning of a line. It is always element 0 of a line.
	LineStart
	// LineEnd marks the end of a line.
	LineEnd
	// OtherDiscontinuity is any other break (damage, column change).
	OtherDiscontinuity
)

// String returns the wire name of the kind.
func (k DiscontinuityKind) String() string {
	switch k {
	case DocumentStart:
		return "document-start"
	case LineStart:
		return "line-start"
	case LineEnd:
		return "line-end"
	default:
		return "other"
	}
}

// ParseDiscontinuityKind is the inverse of String. Unknown names map to OtherDiscontinuity.
func ParseDiscontinuityKind(s string) DiscontinuityKind {
	switch s {
	case "document-start", "obverse":
		return DocumentStart
	case "line-start", "linestart":
		return LineStart
	case "line-end":
		return LineEnd
	default:
		return OtherDiscontinuity
	}
}

// Discontinuity is a structural marker with no lexical content.
type Discontinuity struct {
	Kind  DiscontinuityKind
	Label string
}

// NewLineStart returns the marker that opens line number line.
func NewLineStart(line int) Discontinuity {
	return Discontinuity{Kind: LineStart, Label: strconv.Itoa(line)}
}

func (Discontinuity) isNode() {}

// Cuneiform implements Node.
func (d Discontinuity) Cuneiform() string { return d.marker() }

// Transliterated implements Node.
func (d Discontinuity) Transliterated() string { return d.marker() }

// Normalised implements Node.
func (d Discontinuity) Normalised() string { return d.marker() }

// Translated implements Node.
func (d Discontinuity) Translated() string { return d.marker() }

func (d Discontinuity) marker() string {
	if d.Kind == LineStart {
		return d.Label + ". "
	}
	return ""
}

// IsLineStart reports whether n is a line-start marker.
func IsLineStart(n Node) bool {
	d, ok := n.(Discontinuity)
	return ok && d.Kind == LineStart
}

// Lemma is a single lexical unit.
type Lemma struct {
	Transliteration string
	Normalisation   string
	Translation     string
	Graphemes       []Grapheme
	Ref             Reference
}

func (Lemma) isNode() {}

// Line returns the line component of the lemma's reference.
func (l Lemma) Line() int { return l.Ref.Line }

// Position returns the position component of the lemma's reference.
func (l Lemma) Position() int { return l.Ref.Position }

// WithPosition returns a copy of l at position p on the same line.
func (l Lemma) WithPosition(p int) Lemma {
	return l.WithAddress(l.Ref.Line, p)
}

// WithAddress returns a copy of l at (line, position).
func (l Lemma) WithAddress(line, position int) Lemma {
	out := l
	out.Graphemes = append([]Grapheme(nil), l.Graphemes...)
	out.Ref = Reference{TextID: l.Ref.TextID, Line: line, Position: position}
	return out
}

// Cuneiform implements Node. Graphemes without a resolved glyph render as
// their sign reading.
func (l Lemma) Cuneiform() string {
	var b strings.Builder
	for _, g := range l.Graphemes {
		if g.Glyph != nil {
			b.WriteString(*g.Glyph)
		} else {
			b.WriteString(g.Sign.Text)
		}
	}
	b.WriteString(" ")
	return b.String()
}

// Transliterated implements Node.
func (l Lemma) Transliterated() string { return l.Transliteration + " " }

// Normalised implements Node.
func (l Lemma) Normalised() string { return l.Normalisation + " " }

// Translated implements Node.
func (l Lemma) Translated() string { return l.Translation + " " }

// Reposition returns n moved to position p when it is a lemma. Other nodes
// are returned unchanged.
func Reposition(n Node, p int) Node {
	if l, ok := n.(Lemma); ok {
		return l.WithPosition(p)
	}
	return n
}
