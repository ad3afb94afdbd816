// Package validation holds the error type raised when an entity invariant is violated.
package validation

import "errors"

// ErrInvalid is matched by every *Error through errors.Is.
var ErrInvalid = errors.New("validation failed")

// Error reports a single violated invariant. Error() returns the message verbatim so
// callers can surface it unchanged.
type Error struct {
	Field   string
	Message string
}

func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error { return ErrInvalid }

// Message returns the message of the first *Error in err's chain, or "" when there is none.
func Message(err error) string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Message
	}
	return ""
}
