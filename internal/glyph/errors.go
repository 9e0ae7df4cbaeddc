package glyph

import "errors"

// Errors returned by sign-list loading.
var (
	// ErrUnsupportedFormat indicates a sign-list file extension that has no decoder.
	ErrUnsupportedFormat = errors.New("unsupported sign list format")

	// ErrEmptyPath indicates no sign-list path was configured.
	ErrEmptyPath = errors.New("sign list path is empty")
)
