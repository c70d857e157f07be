package benchmark

import "fmt"

// Error represents a benchmark error with context
// that can be wrapped with additional information.
type Error struct {
	// Message describes the error that occurred.
	Message string
	// Op is the operation that caused the error.
	Op string
	// Component is the component where the error occurred.
	Component string
	// InvalidArgument marks construction failures caused by a bad
	// problem id, an unsupported dimension, or inconsistent tables.
	InvalidArgument bool
	// Err is the underlying error that triggered this one, if any.
	Err error
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var prefix string
	if e.Component != "" && e.Op != "" {
		prefix = fmt.Sprintf("%s: %s", e.Component, e.Op)
	} else if e.Component != "" {
		prefix = e.Component
	} else if e.Op != "" {
		prefix = e.Op
	}

	if e.Err != nil {
		if prefix != "" {
			return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	if prefix != "" {
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WithOperation adds operation context to the error.
func (e *Error) WithOperation(op string) *Error {
	e.Op = op
	return e
}

// WithComponent adds component context to the error.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// NewError creates a new benchmark error with the given message.
func NewError(message string) *Error {
	return &Error{
		Message: message,
	}
}

// NewErrorf creates a new benchmark error with formatted message.
func NewErrorf(format string, args ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidArgument creates a construction error for a bad problem id,
// an unsupported dimension, or tables inconsistent with either.
func NewInvalidArgument(format string, args ...interface{}) *Error {
	return &Error{
		Message:         fmt.Sprintf(format, args...),
		InvalidArgument: true,
	}
}

// WrapError wraps an existing error with additional context.
// If err is nil, WrapError returns nil.
func WrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	invalid := false
	if b, ok := err.(*Error); ok {
		invalid = b.InvalidArgument
	}
	return &Error{
		Message:         message,
		InvalidArgument: invalid,
		Err:             err,
	}
}

// WrapErrorf wraps an existing error with additional formatted context.
// If err is nil, WrapErrorf returns nil.
func WrapErrorf(err error, format string, args ...interface{}) *Error {
	return WrapError(err, fmt.Sprintf(format, args...))
}

// IsInvalidArgument reports whether err is a construction
// invalid-argument error.
func IsInvalidArgument(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*Error); ok {
		return e.InvalidArgument
	}
	return false
}

// IsBenchmarkError checks if an error is of type Error.
// If it is, it returns the error and true; otherwise nil and false.
func IsBenchmarkError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	if e, ok := err.(*Error); ok {
		return e, true
	}
	return nil, false
}
