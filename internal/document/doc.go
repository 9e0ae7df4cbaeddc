// Package document is the editing session of one tupshar document.
//
// A Document owns the node store, the metadata, the free translation and an
// undo history. Every edit goes through the Document so that observers on
// the event bus learn about it: a structural change publishes
// document.changed and a cursor change publishes node.selected.
//
// Operations that do not match the cursor mode are silently ignored, as an
// editor would ignore a keystroke that makes no sense in the current mode.
// WithStrict turns these into errors, which scripts and tests prefer.
//
// # Persistence
//
// Documents are saved as a JSON envelope:
//
//	{
//	  "text": {"type": "modern", "project": "...", "textid": "...", "cdl": [...]},
//	  "translation": "...",
//	  "metadata": {"id": "...", "displayName": "...", "title": "...", "project": "..."}
//	}
//
// Paths ending in ".xz" are compressed. Loading regroups lemmas by the line
// of their reference, so line markers are always synthesized rather than
// trusted from the file.
//
// A Document is not safe for concurrent use. Event handlers run
// synchronously and may call back into the document.
package document
