// Package ui is the interactive terminal editor.
//
// The editor shows one view of a document at a time (cuneiform,
// transliteration, normalisation or translation) and turns caret movement in
// that view into cursor changes through Document.Select. Keys:
//
//	Tab          next view
//	Left, Right  move the caret
//	Up, Down     select the previous or next lemma
//	Home, End    start or end of the text
//	Enter        enter a lemma as "normalisation | transliteration | translation"
//	Backspace    delete the selected lemma
//	Ctrl-N       start a new line
//	Ctrl-S       save
//	Ctrl-Z       undo
//	Ctrl-Y       redo
//	Ctrl-Q       quit (twice when there are unsaved changes)
//
// A mouse click places the caret.
package ui
