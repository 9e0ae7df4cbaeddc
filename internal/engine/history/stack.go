package history

import (
	"errors"
	"sync"
	"time"
)

// DefaultMaxEntries bounds the undo stack when no positive limit is given.
const DefaultMaxEntries = 1000

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// entry is one undo unit.
type entry[T any] struct {
	description string
	before      T
	after       T
	timestamp   time.Time
}

// OperationInfo describes an undo or redo unit.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}

// History manages undo/redo stacks of state pairs.
type History[T any] struct {
	mu sync.Mutex

	undoStack []*entry[T]
	redoStack []*entry[T]

	// Grouping state
	grouping  bool
	groupName string
	group     *entry[T]

	maxEntries int
}

// New creates a history that keeps at most maxEntries undo units.
func New[T any](maxEntries int) *History[T] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History[T]{
		maxEntries: maxEntries,
	}
}

// Record adds a transition to the undo stack and clears the redo stack.
// While a group is open the transition is folded into the group instead.
func (h *History[T]) Record(description string, before, after T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		if h.group == nil {
			h.group = &entry[T]{description: h.groupName, before: before}
		}
		h.group.after = after
		return
	}

	h.pushLocked(&entry[T]{description: description, before: before, after: after})
}

func (h *History[T]) pushLocked(e *entry[T]) {
	e.timestamp = time.Now()
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the last unit and returns the state before it.
func (h *History[T]) Undo() (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	if len(h.undoStack) == 0 {
		return zero, ErrNothingToUndo
	}

	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e.before, nil
}

// Redo pops the last undone unit and returns the state after it.
func (h *History[T]) Redo() (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	if len(h.redoStack) == 0 {
		return zero, ErrNothingToRedo
	}

	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e.after, nil
}

// CanUndo returns true if undo is available.
func (h *History[T]) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History[T]) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// BeginGroup starts a group. Nested calls are ignored.
func (h *History[T]) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.group = nil
}

// EndGroup closes the group and pushes it as one unit. An empty group
// leaves the stacks alone.
func (h *History[T]) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	if h.group != nil {
		h.pushLocked(h.group)
	}
	h.group = nil
}

// CancelGroupState drops the open group and returns the state captured
// before its first edit, if any edit was recorded.
func (h *History[T]) CancelGroupState() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	g := h.group
	h.grouping = false
	h.group = nil
	if g == nil {
		return zero, false
	}
	return g.before, true
}

// IsGrouping returns true if a group is open.
func (h *History[T]) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// PeekUndo returns info about the next undo unit without removing it.
func (h *History[T]) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo unit without removing it.
func (h *History[T]) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

func (e *entry[T]) info() OperationInfo {
	return OperationInfo{Description: e.description, Timestamp: e.timestamp}
}

