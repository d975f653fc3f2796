// Package calendar implements proleptic Gregorian ordinal-day arithmetic.
//
// Every function here is pure integer math over (year, month, day) triples
// and ordinal day numbers. Ordinal 1 is January 1 of year 1; the calendar
// rules (leap years, month lengths) are extended backwards to that epoch.
//
// This package imports nothing internal. chrono builds its value types on
// top of it.
package calendar
