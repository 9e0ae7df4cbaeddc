package cdl

import "errors"

// Errors returned by reference parsing.
var (
	// ErrInvalidReference indicates a reference string that is not "<text>.<line>.<position>".
	ErrInvalidReference = errors.New("invalid node reference")
)
