// Package store holds the node-addressed structure of a document.
//
// A Store maps line numbers to ordered node sequences. Every line begins with
// exactly one line-start marker labelled with the line number; the nodes
// after it are addressed by their index in the sequence, so the first lemma
// of a line sits at position 1. Line numbers start at 1 and may be sparse.
//
// # Renumbering
//
// Positions stay contiguous after every mutation:
//
//	insert at p into length n (p < n)   nodes [p, n) move to p+1; result n+1
//	delete at p from length n (p < n-1) nodes (p, n) move to p-1; result n-1
//	delete at n-1                       plain truncation
//	move                                delete, then insert
//
// Inserting at or beyond the end of a line never leaves a gap: it degrades to
// an append and the node's own position is rewritten to the line length.
//
// # Cursor
//
// The store owns the editing cursor. AppendLemma, InsertLemma and ModifyLemma
// only act when the cursor is in the matching mode; otherwise they leave the
// store untouched and return an error wrapping ErrModeMismatch.
//
// Sequences held by the store are never modified in place. Every mutation
// builds a new slice for the lines it changes, which makes Snapshot cheap.
package store
