package chrono

import (
	"errors"
	"fmt"

	"github.com/roach88/datetimeng/internal/calendar"
)

// Weekday numbering, Monday first, as in package calendar.
const (
	Monday    = calendar.Monday
	Tuesday   = calendar.Tuesday
	Wednesday = calendar.Wednesday
	Thursday  = calendar.Thursday
	Friday    = calendar.Friday
	Saturday  = calendar.Saturday
	Sunday    = calendar.Sunday
)

// Month numbers.
const (
	January = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// Date is a proleptic Gregorian calendar date in year 1..9999.
// The zero value is not a valid date; construct with NewDate.
type Date struct {
	year  int16
	month uint8
	day   uint8
}

// MinDate and MaxDate are the earliest and latest representable dates.
var (
	MinDate = Date{year: calendar.MinYear, month: 1, day: 1}
	MaxDate = Date{year: calendar.MaxYear, month: 12, day: 31}
)

// NewDate validates and returns the date.
func NewDate(year, month, day int) (Date, error) {
	if err := calendar.Validate(year, month, day); err != nil {
		return Date{}, wrapValue("NewDate", err)
	}
	return Date{year: int16(year), month: uint8(month), day: uint8(day)}, nil
}

// DateFromOrdinal returns the date with the given ordinal (1 == 0001-01-01).
func DateFromOrdinal(ordinal int64) (Date, error) {
	return dateFromOrdinal("DateFromOrdinal", ordinal)
}

func dateFromOrdinal(op string, ordinal int64) (Date, error) {
	if ordinal < 1 || ordinal > calendar.MaxOrdinal {
		return Date{}, rangeError(op, "ordinal %d outside 1..%d", ordinal, calendar.MaxOrdinal)
	}
	y, m, d, err := calendar.FromOrdinal(int(ordinal))
	if err != nil {
		return Date{}, &Error{Kind: KindRange, Op: op, Message: "ordinal out of range", Err: err}
	}
	return Date{year: int16(y), month: uint8(m), day: uint8(d)}, nil
}

// DateFromISOCalendar is the inverse of Date.ISOCalendar.
func DateFromISOCalendar(isoYear, week, weekday int) (Date, error) {
	const op = "DateFromISOCalendar"
	ord, err := calendar.FromISOCalendar(isoYear, week, weekday)
	if err != nil {
		if errors.Is(err, calendar.ErrOrdinalRange) {
			return Date{}, &Error{Kind: KindRange, Op: op, Message: "date out of range", Err: err}
		}
		return Date{}, wrapValue(op, err)
	}
	return dateFromOrdinal(op, int64(ord))
}

func (d Date) Year() int  { return int(d.year) }
func (d Date) Month() int { return int(d.month) }
func (d Date) Day() int   { return int(d.day) }

// Ordinal returns the proleptic Gregorian ordinal, 1 for 0001-01-01.
func (d Date) Ordinal() int64 {
	return int64(calendar.ToOrdinal(int(d.year), int(d.month), int(d.day)))
}

// Weekday returns Monday == 0 ... Sunday == 6.
func (d Date) Weekday() int {
	return calendar.Weekday(int(d.year), int(d.month), int(d.day))
}

// ISOWeekday returns Monday == 1 ... Sunday == 7.
func (d Date) ISOWeekday() int {
	return d.Weekday() + 1
}

// ISOCalendar returns the ISO year, week and weekday.
func (d Date) ISOCalendar() (year, week, weekday int) {
	return calendar.ISOCalendar(int(d.year), int(d.month), int(d.day))
}

// YearDay returns the day of the year, 1..366.
func (d Date) YearDay() int {
	return calendar.YearDay(int(d.year), int(d.month), int(d.day))
}

// IsLeap reports whether d falls in a leap year.
func (d Date) IsLeap() bool {
	return calendar.IsLeap(int(d.year))
}

// DaysInMonth returns the length of d's month.
func (d Date) DaysInMonth() int {
	return calendar.DaysInMonth(int(d.year), int(d.month))
}

// DaysInYear returns 365, or 366 in a leap year.
func (d Date) DaysInYear() int {
	return calendar.DaysInYear(int(d.year))
}

// Replace returns d with the given fields overridden and re-validated.
// Time-of-day fields are rejected.
func (d Date) Replace(opts ...Field) (Date, error) {
	const op = "Date.Replace"
	f := fields{year: int(d.year), month: int(d.month), day: int(d.day)}
	f.apply(opts)
	if f.set&^dateMask != 0 {
		return Date{}, valueError(op, "a date has no time-of-day or zone fields")
	}
	if err := calendar.Validate(f.year, f.month, f.day); err != nil {
		return Date{}, wrapValue(op, err)
	}
	return Date{year: int16(f.year), month: uint8(f.month), day: uint8(f.day)}, nil
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int64) (Date, error) {
	return d.addDays("Date.AddDays", n)
}

func (d Date) addDays(op string, n int64) (Date, error) {
	if n > calendar.MaxOrdinal || n < -calendar.MaxOrdinal {
		return Date{}, rangeError(op, "%s shifted by %d days is out of range", d, n)
	}
	ord := d.Ordinal() + n
	if ord < 1 || ord > calendar.MaxOrdinal {
		return Date{}, rangeError(op, "%s shifted by %d days is out of range", d, n)
	}
	return dateFromOrdinal(op, ord)
}

// Add returns d+dur. A date cannot absorb a partial day, so dur must be a
// whole number of days.
func (d Date) Add(dur Duration) (Date, error) {
	const op = "Date.Add"
	if dur.secs != 0 || dur.nanos != 0 {
		return Date{}, valueError(op, "duration %s is not a whole number of days", dur)
	}
	return d.addDays(op, dur.days)
}

// SubDuration returns d-dur; dur must be a whole number of days.
func (d Date) SubDuration(dur Duration) (Date, error) {
	const op = "Date.SubDuration"
	if dur.secs != 0 || dur.nanos != 0 {
		return Date{}, valueError(op, "duration %s is not a whole number of days", dur)
	}
	return d.addDays(op, -dur.days)
}

// Sub returns the signed number of days from o to d as a Duration.
func (d Date) Sub(o Date) Duration {
	return Duration{days: d.Ordinal() - o.Ordinal()}
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt64(int64(d.year), int64(o.year))
	case d.month != o.month:
		return cmpInt64(int64(d.month), int64(o.month))
	default:
		return cmpInt64(int64(d.day), int64(o.day))
	}
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}
