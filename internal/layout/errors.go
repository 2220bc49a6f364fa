package layout

import "errors"

var (
	// ErrNotFound is returned when a page or unit id does not exist in
	// the document.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a user edit that must be rejected without
	// touching the document (empty name, empty section, unknown enum).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState marks a contract violation between the editor and
	// the document: applying a template to a non-mixed page, removing
	// the sentinel, reordering with a non-permutation.
	ErrInvalidState = errors.New("invalid state")
)
