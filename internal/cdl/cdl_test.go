package cdl

import (
	"errors"
	"strings"
	"testing"
)

type upperResolver struct{}

func (upperResolver) Resolve(s string) string { return "<" + s + ">" }

func TestParseGraphemes(t *testing.T) {
	gs := ParseGraphemes("DINGIR.30-iri4-ba", upperResolver{})
	if len(gs) != 3 {
		t.Fatalf("expected 3 graphemes, got %d", len(gs))
	}

	if gs[0].Sign.Kind != SignName || !gs[0].Logogram || gs[0].Sign.Text != "DINGIR.30" {
		t.Errorf("first grapheme should be a logogram, got %+v", gs[0])
	}
	if gs[1].Sign.Kind != SignValue || gs[1].Logogram {
		t.Errorf("second grapheme should be a syllabic value, got %+v", gs[1])
	}
	for i, want := range []string{"-", "-", " "} {
		if gs[i].Separator != want {
			t.Errorf("grapheme %d separator = %q, want %q", i, gs[i].Separator, want)
		}
	}
	if gs[2].Glyph == nil || *gs[2].Glyph != "<ba>" {
		t.Errorf("expected resolved glyph, got %v", gs[2].Glyph)
	}
}

func TestParseGraphemesSingleAndEmpty(t *testing.T) {
	gs := ParseGraphemes("GUD", nil)
	if len(gs) != 1 || gs[0].Separator != " " || gs[0].Glyph != nil {
		t.Errorf("unexpected graphemes %+v", gs)
	}
	if gs := ParseGraphemes("", nil); gs != nil {
		t.Errorf("expected no graphemes, got %+v", gs)
	}
}

func TestMakeLemma(t *testing.T) {
	ref := NewReference("U000000", 1, 1)
	l := MakeLemma("first", "fi-ir-st", "First Lemma", nil, ref)

	if l.Transliteration != "fi-ir-st" || l.Normalisation != "first" || l.Translation != "First Lemma" {
		t.Errorf("unexpected lemma %+v", l)
	}
	if l.Line() != 1 || l.Position() != 1 {
		t.Errorf("unexpected address %d.%d", l.Line(), l.Position())
	}
	if len(l.Graphemes) != 3 {
		t.Errorf("expected 3 graphemes, got %d", len(l.Graphemes))
	}
}

func TestWithAddressIsCopy(t *testing.T) {
	l := MakeLemma("alpu", "GUD", "ox", upperResolver{}, NewReference("U1", 2, 1))
	moved := l.WithAddress(3, 4)

	if l.Ref.Line != 2 || l.Ref.Position != 1 {
		t.Error("original lemma should be unchanged")
	}
	if moved.Ref.Line != 3 || moved.Ref.Position != 4 || moved.Ref.TextID != "U1" {
		t.Errorf("unexpected moved ref %v", moved.Ref)
	}

	moved.Graphemes[0].Separator = "x"
	if l.Graphemes[0].Separator != " " {
		t.Error("graphemes should not be shared between copies")
	}

	p := l.WithPosition(7)
	if p.Ref.Line != 2 || p.Ref.Position != 7 {
		t.Errorf("unexpected ref %v", p.Ref)
	}
}

func TestReposition(t *testing.T) {
	d := NewLineStart(2)
	if Reposition(d, 5) != Node(d) {
		t.Error("discontinuities should not be repositioned")
	}
	l := MakeLemma("a", "a", "a", nil, NewReference("U1", 2, 1))
	got, ok := Reposition(l, 5).(Lemma)
	if !ok || got.Position() != 5 {
		t.Errorf("unexpected reposition result %+v", got)
	}
}

func TestRendering(t *testing.T) {
	l := MakeLemma("alpu", "GUD", "ox-alpha", upperResolver{}, NewReference("U1", 2, 1))
	if got := l.Normalised(); got != "alpu " {
		t.Errorf("Normalised() = %q", got)
	}
	if got := l.Transliterated(); got != "GUD " {
		t.Errorf("Transliterated() = %q", got)
	}
	if got := l.Translated(); got != "ox-alpha " {
		t.Errorf("Translated() = %q", got)
	}
	if got := l.Cuneiform(); got != "<GUD> " {
		t.Errorf("Cuneiform() = %q", got)
	}

	unresolved := MakeLemma("ša", "ša", "that", nil, NewReference("U1", 1, 1))
	if got := unresolved.Cuneiform(); got != "ša " {
		t.Errorf("expected sign text for unresolved glyph, got %q", got)
	}

	start := NewLineStart(3)
	if start.Label != "3" || start.Kind != LineStart || !IsLineStart(start) {
		t.Errorf("unexpected line start %+v", start)
	}
	if got := start.Transliterated(); got != "3. " {
		t.Errorf("line start rendered %q", got)
	}
	if IsLineStart(l) {
		t.Error("lemma is not a line start")
	}
}

func TestReferenceRoundTrip(t *testing.T) {
	ref := NewReference("U000000", 2, 3)
	if ref.String() != "U000000.2.3" {
		t.Errorf("unexpected string %q", ref.String())
	}

	parsed, err := ParseReference("U000000.2.3")
	if err != nil {
		t.Fatalf("ParseReference failed: %v", err)
	}
	if parsed != ref {
		t.Errorf("parsed %v, want %v", parsed, ref)
	}

	dotted, err := ParseReference("P.123.4.5")
	if err != nil || dotted.TextID != "P.123" || dotted.Line != 4 || dotted.Position != 5 {
		t.Errorf("unexpected dotted parse %v, %v", dotted, err)
	}
}

func TestParseReferenceErrors(t *testing.T) {
	for _, s := range []string{"", "U1", "U1.2", "U1.x.3", "U1.2.y", ".2.3"} {
		if _, err := ParseReference(s); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("ParseReference(%q) error = %v, want ErrInvalidReference", s, err)
		}
	}
}

func TestNewTextID(t *testing.T) {
	a, b := NewTextID(), NewTextID()
	if a == b {
		t.Error("text ids should be unique")
	}
	if !strings.HasPrefix(a.String(), "U") || len(a) != 37 {
		t.Errorf("unexpected text id %q", a)
	}
}

func TestDiscontinuityKind(t *testing.T) {
	for _, k := range []DiscontinuityKind{DocumentStart, LineStart, LineEnd, OtherDiscontinuity} {
		if ParseDiscontinuityKind(k.String()) != k {
			t.Errorf("kind %v did not round trip", k)
		}
	}
	if ParseDiscontinuityKind("damage") != OtherDiscontinuity {
		t.Error("unknown kinds map to other")
	}
}
