package domain

import "errors"

// Error taxonomy surfaced to API callers. Services wrap these with
// fmt.Errorf("...: %w", Err...) so handlers can map them with errors.Is.
var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication marks a credential mismatch. No further detail
	// is ever attached beyond "invalid credentials".
	ErrAuthentication = errors.New("invalid credentials")

	// ErrNotFound marks a referenced id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a state-transition precondition violation,
	// e.g. claiming a shift request that is no longer open.
	ErrConflict = errors.New("conflict")
)
