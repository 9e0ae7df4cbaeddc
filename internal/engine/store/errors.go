package store

import (
	"errors"
	"fmt"

	"github.com/dshills/tupshar/internal/engine/cursor"
)

// Errors returned by store operations. The store is unchanged whenever one
// of them is returned.
var (
	// ErrModeMismatch indicates an operation that does not match the cursor mode.
	ErrModeMismatch = errors.New("cursor mode mismatch")

	// ErrLineNotFound indicates a line number with no sequence.
	ErrLineNotFound = errors.New("line not found")

	// ErrInvalidAddress indicates a position outside a line, or the line marker itself.
	ErrInvalidAddress = errors.New("invalid node address")

	// ErrNotLemma indicates a node that must be a lemma but is not.
	ErrNotLemma = errors.New("node is not a lemma")
)

func modeMismatch(op string, want cursor.Mode, have cursor.Cursor) error {
	return fmt.Errorf("%w: %s needs %s cursor, have %s", ErrModeMismatch, op, want, have)
}

func lineNotFound(line int) error {
	return fmt.Errorf("%w: %d", ErrLineNotFound, line)
}

func invalidAddress(line, position int) error {
	return fmt.Errorf("%w: %d.%d", ErrInvalidAddress, line, position)
}
