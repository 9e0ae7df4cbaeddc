package document

import "errors"

// Errors returned by the document layer.
var (
	// ErrBadData indicates a file or buffer that is not a valid document.
	ErrBadData = errors.New("bad document data")

	// ErrNoPath indicates a save without a known destination.
	ErrNoPath = errors.New("document has no path")

	// ErrExport indicates an export that could not be produced.
	ErrExport = errors.New("failed to export document")

	// ErrBatchOpen indicates an undo or redo requested while a batch is running.
	ErrBatchOpen = errors.New("batch in progress")

	// ErrDocumentNotFound indicates a path the manager does not know.
	ErrDocumentNotFound = errors.New("document not found")
)
