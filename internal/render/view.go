package render

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dshills/tupshar/internal/cdl"
	"github.com/dshills/tupshar/internal/engine/cursor"
)

// Span is the rune range [Start, End) of one lemma in a view.
type Span struct {
	Start int
	End   int
	Ref   cdl.Reference
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// View is the rendered text of one kind.
type View struct {
	Kind  Kind
	Text  string
	Spans []Span

	length int
}

// Render builds the view of kind for a flattened node sequence.
func Render(nodes []cdl.Node, kind Kind) View {
	var b strings.Builder
	v := View{Kind: kind}
	offset := 0

	write := func(s string) {
		b.WriteString(s)
		offset += utf8.RuneCountInString(s)
	}

	for _, n := range nodes {
		switch node := n.(type) {
		case cdl.Discontinuity:
			if node.Kind != cdl.LineStart {
				continue
			}
			if offset > 0 {
				write("\n")
			}
			write(node.Transliterated())
		case cdl.Lemma:
			start := offset
			write(text(node, kind))
			v.Spans = append(v.Spans, Span{Start: start, End: offset, Ref: node.Ref})
		}
	}

	v.Text = b.String()
	v.length = offset
	return v
}

func text(n cdl.Node, kind Kind) string {
	switch kind {
	case Cuneiform:
		return n.Cuneiform()
	case Normalisation:
		return n.Normalised()
	case Translation:
		return n.Translated()
	default:
		return n.Transliterated()
	}
}

// Len returns the length of the text in runes.
func (v View) Len() int {
	return v.length
}

// SpanAt returns the span covering offset.
func (v View) SpanAt(offset int) (Span, bool) {
	i := sort.Search(len(v.Spans), func(i int) bool {
		return v.Spans[i].End > offset
	})
	if i < len(v.Spans) && v.Spans[i].Contains(offset) {
		return v.Spans[i], true
	}
	return Span{}, false
}

// AddressAt implements cursor.Locator.
func (v View) AddressAt(offset int) (cursor.Address, bool) {
	span, ok := v.SpanAt(offset)
	if !ok {
		return cursor.Address{}, false
	}
	return cursor.Address{Line: span.Ref.Line, Position: span.Ref.Position}, true
}

// SpanFor returns the span of the lemma at the address of ref.
func (v View) SpanFor(ref cdl.Reference) (Span, bool) {
	for _, s := range v.Spans {
		if s.Ref.Line == ref.Line && s.Ref.Position == ref.Position {
			return s, true
		}
	}
	return Span{}, false
}

// SpanForAddress returns the span of the lemma at (line, position).
func (v View) SpanForAddress(line, position int) (Span, bool) {
	return v.SpanFor(cdl.Reference{Line: line, Position: position})
}

// Lines splits the text into display lines.
func (v View) Lines() []string {
	if v.Text == "" {
		return nil
	}
	return strings.Split(v.Text, "\n")
}
