package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity has no base row. Optional
// sub-lookups coming back empty are not errors.
var ErrNotFound = errors.New("not found")

// ValidationError marks malformed upstream data that makes a detail
// request unanswerable, e.g. an item use-class that does not parse.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
