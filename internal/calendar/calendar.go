package calendar

import (
	"errors"
	"fmt"
)

// Supported year range.
const (
	MinYear = 1
	MaxYear = 9999
)

// MaxOrdinal is the ordinal of December 31, MaxYear.
const MaxOrdinal = 3652059

// Days in a given period of years.
const (
	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
)

// Weekday numbering, Monday first.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ErrOrdinalRange is returned when an ordinal maps outside [MinYear, MaxYear].
var ErrOrdinalRange = errors.New("ordinal out of range")

// FieldError reports a single out-of-range date field.
type FieldError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s must be in %d..%d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// daysIn[m] is the length of month m in a non-leap year; index 0 is unused.
var daysIn = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// daysBefore[m] counts the days in a non-leap year before month m.
var daysBefore = func() [14]int {
	var db [14]int
	for m := 1; m <= 12; m++ {
		db[m+1] = db[m] + daysIn[m]
	}
	return db
}()

// IsLeap reports whether year is a leap year: divisible by 4, except
// centuries that are not divisible by 400.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year (28-31).
// month must be in 1..12.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeap(year) {
		return 29
	}
	return daysIn[month]
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// DaysBeforeYear returns the number of days in all years before year.
// year must be >= 1.
func DaysBeforeYear(year int) int {
	y := year - 1
	return y*365 + y/4 - y/100 + y/400
}

// DaysBeforeMonth returns the number of days in year preceding the first
// day of month.
func DaysBeforeMonth(year, month int) int {
	n := daysBefore[month]
	if month > 2 && IsLeap(year) {
		n++
	}
	return n
}

// Validate checks that (year, month, day) names a real calendar date.
func Validate(year, month, day int) error {
	if year < MinYear || year > MaxYear {
		return &FieldError{Field: "year", Value: year, Min: MinYear, Max: MaxYear}
	}
	if month < 1 || month > 12 {
		return &FieldError{Field: "month", Value: month, Min: 1, Max: 12}
	}
	if dim := DaysInMonth(year, month); day < 1 || day > dim {
		return &FieldError{Field: "day", Value: day, Min: 1, Max: dim}
	}
	return nil
}

// ToOrdinal maps a valid date to its ordinal day number.
// The caller is responsible for validating the date first.
func ToOrdinal(year, month, day int) int {
	return DaysBeforeYear(year) + DaysBeforeMonth(year, month) + day
}

// FromOrdinal is the inverse of ToOrdinal. It returns ErrOrdinalRange when
// ordinal falls outside [1, MaxOrdinal].
func FromOrdinal(ordinal int) (year, month, day int, err error) {
	if ordinal < 1 || ordinal > MaxOrdinal {
		return 0, 0, 0, fmt.Errorf("ordinal %d: %w", ordinal, ErrOrdinalRange)
	}

	// n is a 0-based index with January 1 of year 1 at 0.
	n := ordinal - 1
	n400, n := n/daysPer400Years, n%daysPer400Years
	year = n400*400 + 1

	n100, n := n/daysPer100Years, n%daysPer100Years
	n4, n := n/daysPer4Years, n%daysPer4Years
	n1, n := n/365, n%365

	year += n100*100 + n4*4 + n1
	if n1 == 4 || n100 == 4 {
		// Last day of a 4-year or 400-year cycle.
		return year - 1, 12, 31, nil
	}

	leap := n1 == 3 && (n4 != 24 || n100 == 3)

	// Estimate the month, then correct by at most one.
	month = (n + 50) >> 5
	preceding := daysBefore[month]
	if month > 2 && leap {
		preceding++
	}
	if preceding > n {
		month--
		preceding -= daysIn[month]
		if month == 2 && leap {
			preceding--
		}
	}
	return year, month, n - preceding + 1, nil
}

// Weekday returns the day of the week, Monday == 0 ... Sunday == 6.
func Weekday(year, month, day int) int {
	return (ToOrdinal(year, month, day) + 6) % 7
}

// YearDay returns the 1-based day of the year.
func YearDay(year, month, day int) int {
	return DaysBeforeMonth(year, month) + day
}

// isoWeek1Monday returns the ordinal of the Monday starting ISO week 1 of
// year, which is the week containing the year's first Thursday.
func isoWeek1Monday(year int) int {
	first := DaysBeforeYear(year) + 1
	firstWeekday := (first + 6) % 7
	monday := first - firstWeekday
	if firstWeekday > Thursday {
		monday += 7
	}
	return monday
}

// ISOCalendar returns the ISO-8601 year, week number (1-53) and weekday
// (1 == Monday ... 7 == Sunday).
func ISOCalendar(year, month, day int) (isoYear, week, weekday int) {
	isoYear = year
	ord := ToOrdinal(year, month, day)
	monday := isoWeek1Monday(isoYear)
	diff := ord - monday
	if diff < 0 {
		isoYear--
		monday = isoWeek1Monday(isoYear)
		diff = ord - monday
	} else if diff >= 52*7 && ord >= isoWeek1Monday(isoYear+1) {
		isoYear++
		diff = ord - isoWeek1Monday(isoYear)
	}
	return isoYear, diff/7 + 1, diff%7 + 1
}

// FromISOCalendar returns the ordinal for an ISO year, week and weekday.
func FromISOCalendar(isoYear, week, weekday int) (int, error) {
	if isoYear < MinYear || isoYear > MaxYear {
		return 0, &FieldError{Field: "iso year", Value: isoYear, Min: MinYear, Max: MaxYear}
	}
	maxWeek := 52
	if w := weeksInISOYear(isoYear); w == 53 {
		maxWeek = 53
	}
	if week < 1 || week > maxWeek {
		return 0, &FieldError{Field: "iso week", Value: week, Min: 1, Max: maxWeek}
	}
	if weekday < 1 || weekday > 7 {
		return 0, &FieldError{Field: "iso weekday", Value: weekday, Min: 1, Max: 7}
	}
	ord := isoWeek1Monday(isoYear) + (week-1)*7 + weekday - 1
	if ord < 1 || ord > MaxOrdinal {
		return 0, fmt.Errorf("iso date %d-W%02d-%d: %w", isoYear, week, weekday, ErrOrdinalRange)
	}
	return ord, nil
}

// weeksInISOYear returns 52 or 53. A year has 53 ISO weeks when it starts on
// a Thursday, or is a leap year starting on a Wednesday.
func weeksInISOYear(year int) int {
	first := (DaysBeforeYear(year) + 1 + 6) % 7
	if first == Thursday || (first == Wednesday && IsLeap(year)) {
		return 53
	}
	return 52
}
