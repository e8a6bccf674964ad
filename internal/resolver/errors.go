package resolver

import (
	"errors"
	"fmt"
)

// ErrDirectoryNotFound is matched by *DirectoryNotFoundError.
var ErrDirectoryNotFound = errors.New("component directory not found")

// ErrEmptyKey is returned by point lookup for an empty key.
var ErrEmptyKey = errors.New("component key must not be empty")

// DirectoryNotFoundError is returned when enumerating a component directory
// that does not exist on disk.
type DirectoryNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("component directory not found: %s", e.Path)
}

// Is makes errors.Is(err, ErrDirectoryNotFound) match.
func (e *DirectoryNotFoundError) Is(target error) bool {
	return target == ErrDirectoryNotFound
}

// IsDirectoryNotFound reports whether err is, or wraps, a missing component
// directory.
func IsDirectoryNotFound(err error) bool {
	return errors.Is(err, ErrDirectoryNotFound)
}
