// Package validation carries the recoverable failure kind that ends a session
// cleanly instead of crashing it.
package validation

import (
	"errors"
	"fmt"
)

// Error reports a rejected device or configuration value.
type Error struct {
	Field  string
	Value  interface{}
	Reason string
}

func New(field string, value interface{}, reason string) *Error {
	return &Error{Field: field, Value: value, Reason: reason}
}

func Newf(field string, value interface{}, format string, args ...interface{}) *Error {
	return &Error{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed for %s=%v: %s", e.Field, e.Value, e.Reason)
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func Is(err error) bool {
	_, ok := As(err)
	return ok
}
