// Package chrono provides immutable calendar value types at nanosecond
// resolution: Date, Time, DateTime and Duration, plus the Zone contract that
// timezone providers implement.
//
// All values are plain structs, safe to copy and to share between goroutines.
// No operation mutates its receiver; every arithmetic or replace operation
// returns a new value or an error.
//
// Key rules:
//   - A Duration has exactly one canonical form: days carries the sign,
//     seconds is in [0, 86400) and nanoseconds in [0, 1e9).
//   - A value is naive when it has no Zone and aware when it has one. Naive
//     and aware values are never compared or subtracted; doing so returns a
//     TYPE error.
//   - Aware values compare and subtract by their UTC-equivalent instants.
//   - Results outside year 1..9999, or outside the Duration bound, are
//     reported as RANGE errors, never clamped.
//
// The engine never reads the wall clock. Constructors that need the current
// instant take a Clock.
package chrono
