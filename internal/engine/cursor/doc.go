// Package cursor tracks the editing mode and address of a document session.
//
// A Cursor combines a Mode with a (line, position) address:
//
//   - Append: the next lemma is added at the end of the line.
//   - Insertion: the next lemma is inserted before the node at the address,
//     shifting later nodes right.
//   - Selection: the next edit overwrites (or deletes) the node at the address.
//
// Cursors are immutable values. They are never persisted.
//
// Selection Model:
//
// The presentation layer reports caret and range changes in a rendered view as
// a Caret using an anchor/head model over rune offsets. Resolve turns
// such an event into a Cursor by looking up which node reference sits under
// the selection:
//
//	sel := cursor.NewRange(12, 17)  // a word is highlighted
//	c, ok := cursor.Resolve(sel, view, store)
//	if !ok {
//		store.SetCursorToEnd()  // ambiguous selections fall back to appending
//	}
//
// A highlighted range over a lemma selects it for overwriting; an empty caret
// just after a lemma inserts after it; anything else (caret at the very end,
// caret on a line label, no selection) falls back to appending at the end of
// the document.
package cursor
