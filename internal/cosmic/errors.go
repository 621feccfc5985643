package cosmic

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the content store has no object matching a
// query. Callers listing collections treat it as an empty result.
var ErrNotFound = errors.New("cosmic: not found")

// ErrWriteKeyMissing is returned by write operations when the client was
// built without a write key.
var ErrWriteKeyMissing = errors.New("cosmic: write key not configured")

// RetrievalError is any failure talking to the content store other than
// not-found: transport errors, auth or quota rejections, server errors and
// undecodable responses.
type RetrievalError struct {
	Op         string // find, find_one, insert_one, update_one
	Type       string // object type, when known
	StatusCode int    // 0 for transport and decode failures
	Err        error
}

func (e *RetrievalError) Error() string {
	target := e.Op
	if e.Type != "" {
		target += " " + e.Type
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("cosmic: %s: status %d: %v", target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("cosmic: %s: %v", target, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// ValidationError reports input rejected before or by the content store:
// malformed filter criteria, invalid write payloads, or a 400/422 response.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a *ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
