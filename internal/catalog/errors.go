package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Use errors.Is to classify an operation error.
var (
	// ErrValidation means a required field was blank.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means an index did not address a game.
	ErrNotFound = errors.New("game not found")

	// ErrPersistence means the catalog could not be loaded or saved.
	ErrPersistence = errors.New("persistence failed")

	// ErrExport means the source literal file could not be written.
	ErrExport = errors.New("export failed")

	// ErrImageIntake means an image could not be copied into the images directory.
	ErrImageIntake = errors.New("image intake failed")
)

// ValidationError lists the blank required fields, in field order.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields are blank: %s (image is optional)", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func notFound(index, length int) error {
	return fmt.Errorf("%w: index %d outside [0, %d)", ErrNotFound, index, length)
}
