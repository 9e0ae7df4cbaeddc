package cdl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TextID identifies a document.
type TextID string

// NewTextID returns a fresh identifier of the form "U<uuid>".
func NewTextID() TextID {
	return TextID("U" + strings.ToUpper(uuid.NewString()))
}

// String returns the identifier.
func (id TextID) String() string {
	return string(id)
}

// Reference addresses a lemma inside a document.
type Reference struct {
	TextID   TextID
	Line     int
	Position int
}

// NewReference creates a reference.
func NewReference(id TextID, line, position int) Reference {
	return Reference{TextID: id, Line: line, Position: position}
}

// String renders the reference as "<text>.<line>.<position>".
func (r Reference) String() string {
	return fmt.Sprintf("%s.%d.%d", r.TextID, r.Line, r.Position)
}

// SameAddress reports whether both references name the same line and position.
func (r Reference) SameAddress(other Reference) bool {
	return r.Line == other.Line && r.Position == other.Position
}

// ParseReference parses "<text>.<line>.<position>". The text ID may itself
// contain dots; the last two components are the address.
func ParseReference(s string) (Reference, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 3 {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}

	n := len(parts)
	line, err := strconv.Atoi(parts[n-2])
	if err != nil {
		return Reference{}, fmt.Errorf("%w: line %q", ErrInvalidReference, parts[n-2])
	}
	pos, err := strconv.Atoi(parts[n-1])
	if err != nil {
		return Reference{}, fmt.Errorf("%w: position %q", ErrInvalidReference, parts[n-1])
	}

	id := strings.Join(parts[:n-2], ".")
	if id == "" {
		return Reference{}, fmt.Errorf("%w: empty text id", ErrInvalidReference)
	}

	return Reference{TextID: TextID(id), Line: line, Position: pos}, nil
}
