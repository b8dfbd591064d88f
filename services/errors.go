package services

import (
	"errors"
	"fmt"
)

// Domain error kinds. Controllers map these to HTTP status codes; the
// workflow layer returns them verbatim and never uses them for ordinary
// control flow.
var (
	// ErrNotFound means an entity id could not be resolved.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the operation collides with existing state, such as
	// a duplicate reviewer assignment.
	ErrConflict = errors.New("conflict")
	// ErrForbidden means an authorization rule was violated.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidState means the operation is not valid for the submission's
	// current status.
	ErrInvalidState = errors.New("invalid state")
)

// ExternalError wraps a transport failure from the blob store, the mail
// relay, or the database so callers can distinguish it from domain errors.
type ExternalError struct {
	System string // "artifact-store", "notifier", "database"
	Err    error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.System, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

func externalErr(system string, err error) error {
	return &ExternalError{System: system, Err: err}
}

// IsExternal reports whether err originated outside the domain layer.
func IsExternal(err error) bool {
	var ee *ExternalError
	return errors.As(err, &ee)
}
