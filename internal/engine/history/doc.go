// Package history provides undo/redo for the node store.
//
// History records state transitions rather than commands. Each entry holds
// the state before and after an edit; undo hands back the before state and
// redo the after state. The node store keeps its sequences immutable, so a
// store.Snapshot is cheap to capture and is the state type the document
// session uses:
//
//	h := history.New[store.Snapshot](1000)
//
//	before := s.Snapshot()
//	_ = s.AppendLemma("šarru", "LUGAL", "king")
//	h.Record("append", before, s.Snapshot())
//
//	prev, _ := h.Undo()
//	s.Restore(prev)
//
// # Grouping
//
// Several edits can be grouped into one undo unit:
//
//	h.BeginGroup("script")
//	// ... multiple Record calls ...
//	h.EndGroup()
//
// The group collapses to a single entry spanning the first before state and
// the last after state.
package history
