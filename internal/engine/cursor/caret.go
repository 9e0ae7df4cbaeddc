package cursor

// Caret reports a caret or highlighted range in a rendered view, in rune
// offsets. Anchor is where the selection started; Head is where the caret is.
// When Anchor == Head, this represents a caret with no selected text.
// A negative Anchor means there is no selection at all.
type Caret struct {
	Anchor int
	Head   int
}

// NoCaret is the selection of a view that has no caret.
var NoCaret = Caret{Anchor: -1, Head: -1}

// NewCaret creates a selection representing just a caret (no extent).
func NewCaret(offset int) Caret {
	return Caret{Anchor: offset, Head: offset}
}

// NewRange creates a highlighted range from anchor to head.
func NewRange(anchor, head int) Caret {
	return Caret{Anchor: anchor, Head: head}
}

// IsNone returns true if there is no selection.
func (s Caret) IsNone() bool {
	return s.Anchor < 0 || s.Head < 0
}

// IsEmpty returns true if the selection has no extent (just a caret).
func (s Caret) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Len returns the length of the selection.
func (s Caret) Len() int {
	if s.Anchor <= s.Head {
		return s.Head - s.Anchor
	}
	return s.Anchor - s.Head
}

// Start returns the lower bound of the selection.
func (s Caret) Start() int {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Caret) End() int {
	if s.Anchor <= s.Head {
		return s.Head
	}
	return s.Anchor
}

// Extend returns a selection with the same anchor and a new head.
func (s Caret) Extend(head int) Caret {
	return Caret{Anchor: s.Anchor, Head: head}
}

// Collapse returns a caret at the head of the selection.
func (s Caret) Collapse() Caret {
	return NewCaret(s.Head)
}
