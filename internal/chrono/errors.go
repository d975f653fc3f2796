package chrono

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes engine errors.
type ErrorKind string

const (
	// KindValue indicates an individual field out of range at construction.
	KindValue ErrorKind = "VALUE"

	// KindRange indicates a result outside the representable range.
	KindRange ErrorKind = "RANGE"

	// KindType indicates mixing naive and aware values, or a zone operation
	// on a naive value.
	KindType ErrorKind = "TYPE"
)

// Error is returned by every failing chrono operation.
type Error struct {
	// Kind identifies the error category.
	Kind ErrorKind

	// Op names the operation that failed, e.g. "Date.Add".
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsValueError reports whether err is a VALUE error.
// Uses errors.As to handle wrapped errors.
func IsValueError(err error) bool {
	return hasKind(err, KindValue)
}

// IsRangeError reports whether err is a RANGE error.
func IsRangeError(err error) bool {
	return hasKind(err, KindRange)
}

// IsTypeError reports whether err is a TYPE error.
func IsTypeError(err error) bool {
	return hasKind(err, KindType)
}

func hasKind(err error, kind ErrorKind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

func valueError(op, format string, args ...any) *Error {
	return &Error{Kind: KindValue, Op: op, Message: fmt.Sprintf(format, args...)}
}

func rangeError(op, format string, args ...any) *Error {
	return &Error{Kind: KindRange, Op: op, Message: fmt.Sprintf(format, args...)}
}

func typeError(op, format string, args ...any) *Error {
	return &Error{Kind: KindType, Op: op, Message: fmt.Sprintf(format, args...)}
}

// wrapValue converts a calendar validation failure into a VALUE error.
func wrapValue(op string, err error) *Error {
	return &Error{Kind: KindValue, Op: op, Message: "invalid field", Err: err}
}
