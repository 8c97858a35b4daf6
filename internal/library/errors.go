package library

import (
	"errors"
	"fmt"
)

// ErrEmptyFeedback is returned when submitted feedback text trims to empty.
// The material is left unchanged.
var ErrEmptyFeedback = errors.New("feedback text is empty")

// ErrNotAuthorized is returned when an operation requires a session (or the
// admin role) and the current user document doesn't provide one. Callers
// treat it as a redirect-to-login decision.
var ErrNotAuthorized = errors.New("not authorized")

// NotFoundError indicates that a referenced material id does not resolve,
// e.g. it was deleted by another process sharing the store. It is a typed
// error so callers can choose between surfacing it and treating the
// operation as a no-op.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("material %d not found", e.ID)
}

// FileReadError indicates that reading or encoding an uploaded file failed.
// No material is created or updated when it occurs; the caller keeps the
// submitted draft so the user can retry.
type FileReadError struct {
	Name string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading uploaded file %q: %v", e.Name, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// ValidationError indicates a draft field that fails the construction
// rules: missing required text or a category outside the fixed enum.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
