package cursor

// Address is a (line, position) pair as carried by a node reference.
type Address struct {
	Line     int
	Position int
}

// Locator finds the node under an offset of a rendered view.
type Locator interface {
	// AddressAt returns the address of the node whose text covers offset.
	AddressAt(offset int) (Address, bool)
	// Len returns the length of the view text in runes.
	Len() int
}

// Lines reports line lengths of the document.
type Lines interface {
	LineLen(line int) (int, bool)
}

// Resolve maps a selection event to a cursor. The second result is false when
// the selection is ambiguous or invalid; callers then fall back to appending
// at the end of the document.
func Resolve(sel Caret, view Locator, lines Lines) (Cursor, bool) {
	if sel.IsNone() {
		return Cursor{}, false
	}

	if !sel.IsEmpty() {
		addr, ok := lookup(sel.Start(), view, lines)
		if !ok {
			return Cursor{}, false
		}
		return Selection(addr.Line, addr.Position), true
	}

	// A caret at the end of the text continues the document.
	if sel.Head >= view.Len() {
		return Cursor{}, false
	}

	// Inspect the character before the caret.
	before := sel.Head - 1
	if before <= 0 {
		return Cursor{}, false
	}

	addr, ok := lookup(before, view, lines)
	if !ok {
		return Cursor{}, false
	}

	next := addr.Position + 1
	if next <= 1 {
		return Cursor{}, false
	}
	return Insertion(addr.Line, next), true
}

// lookup validates the address under offset against the document.
func lookup(offset int, view Locator, lines Lines) (Address, bool) {
	addr, ok := view.AddressAt(offset)
	if !ok {
		return Address{}, false
	}
	n, ok := lines.LineLen(addr.Line)
	if !ok || addr.Position < 0 || addr.Position >= n {
		return Address{}, false
	}
	return addr, true
}
