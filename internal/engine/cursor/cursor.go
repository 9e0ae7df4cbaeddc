package cursor

import "fmt"

// Mode is the editing mode of a cursor.
type Mode uint8

const (
	// ModeAppend appends after the last node of the line.
	ModeAppend Mode = iota
	// ModeInsertion inserts before the node at the cursor address.
	ModeInsertion
	// ModeSelection overwrites the node at the cursor address.
	ModeSelection
)

// String returns the status label of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAppend:
		return "Append"
	case ModeInsertion:
		return "Insert"
	case ModeSelection:
		return "Overwrite"
	default:
		return "Unknown"
	}
}

// Cursor is an editing mode together with a (line, position) address.
// Cursor is an immutable value type.
type Cursor struct {
	Mode     Mode
	Line     int
	Position int
}

// Append returns an append cursor at (line, position).
func Append(line, position int) Cursor {
	return Cursor{Mode: ModeAppend, Line: line, Position: position}
}

// Insertion returns an insertion cursor at (line, position).
func Insertion(line, position int) Cursor {
	return Cursor{Mode: ModeInsertion, Line: line, Position: position}
}

// Selection returns a selection cursor at (line, position).
func Selection(line, position int) Cursor {
	return Cursor{Mode: ModeSelection, Line: line, Position: position}
}

// Start is the cursor of a freshly created document.
var Start = Append(1, 1)

// IsAppend reports whether the cursor is in append mode.
func (c Cursor) IsAppend() bool { return c.Mode == ModeAppend }

// IsInsertion reports whether the cursor is in insertion mode.
func (c Cursor) IsInsertion() bool { return c.Mode == ModeInsertion }

// IsSelection reports whether the cursor is in selection mode.
func (c Cursor) IsSelection() bool { return c.Mode == ModeSelection }

// MoveTo returns a cursor with the same mode at a new address.
func (c Cursor) MoveTo(line, position int) Cursor {
	return Cursor{Mode: c.Mode, Line: line, Position: position}
}

// String returns a debug representation like "Insert(2,3)".
func (c Cursor) String() string {
	return fmt.Sprintf("%s(%d,%d)", c.Mode, c.Line, c.Position)
}
