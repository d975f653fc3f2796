// Package format renders and parses chrono values as text.
//
// ISO-8601 output has the form
//
//	YYYY-MM-DDTHH:MM:SS[.fraction][±HH:MM]
//
// where the fraction carries up to nine digits, so nanosecond values
// round-trip exactly. Parsing never constructs an invalid value: malformed
// input and out-of-range fields both yield a *ParseError.
//
// Strftime implements the common C directives plus %N for nanoseconds, and
// Ctime reproduces the fixed "Sun Oct 27 01:00:00 2002" layout.
package format
