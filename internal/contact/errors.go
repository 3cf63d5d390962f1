package contact

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a lookup miss for a record or a phone.
// Callers test for it with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed name, phone number, or date at
// construction time. Callers test for it with errors.As.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
