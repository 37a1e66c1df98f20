package store

import (
	"errors"
	"fmt"
)

// Errors returned by store operations.
var (
	// ErrMalformedJSON indicates a document that is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON")

	// ErrNotObject indicates a JSON document whose root is not an object.
	ErrNotObject = errors.New("JSON root is not an object")

	// ErrEmpty indicates there is nothing to write.
	ErrEmpty = errors.New("configuration is empty")

	// ErrReleased indicates use of a Config whose last reference was released.
	ErrReleased = errors.New("configuration released")
)

// JSONError describes a document rejected by Read.
type JSONError struct {
	// Offset is the byte offset of the error, or -1 when unknown.
	Offset int64
	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *JSONError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("malformed JSON at offset %d: %s", e.Offset, e.Message)
	}
	return fmt.Sprintf("malformed JSON: %s", e.Message)
}

// Is reports whether target is ErrMalformedJSON.
func (e *JSONError) Is(target error) bool {
	return target == ErrMalformedJSON
}
