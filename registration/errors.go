package registration

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a registration id is unknown
var ErrNotFound = errors.New("registration not found")

/* ValidationError reports bad registration input
 * Surfaced synchronously to the caller, never retried
 */
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
