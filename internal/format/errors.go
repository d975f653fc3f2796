package format

import (
	"fmt"
)

// ParseError reports text that does not describe a valid value.
type ParseError struct {
	// Layout names what was being parsed, e.g. "datetime".
	Layout string

	// Input is the full text given to the parser.
	Input string

	// Offset is the byte index where parsing failed.
	Offset int

	// Message describes the problem.
	Message string

	// Err is the underlying validation error, if any.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q at offset %d: %s", e.Layout, e.Input, e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
