package chrono

import (
	"fmt"
)

// Time is a time of day with nanosecond resolution and an optional Zone.
// The zero value is midnight, naive.
type Time struct {
	hour, minute, second uint8
	fold                 uint8
	nanos                int32
	zone                 Zone
}

// Midnight is 00:00:00, naive.
var Midnight = Time{}

// NewTime returns a naive time of day.
func NewTime(hour, minute, second, nanosecond int) (Time, error) {
	return newTime("NewTime", hour, minute, second, nanosecond, 0, nil)
}

// NewTimeIn returns a time of day attached to z (nil for naive).
func NewTimeIn(hour, minute, second, nanosecond int, z Zone) (Time, error) {
	return newTime("NewTimeIn", hour, minute, second, nanosecond, 0, z)
}

// MustTime panics if err is non-nil.
func MustTime(t Time, err error) Time {
	if err != nil {
		panic(err)
	}
	return t
}

func newTime(op string, hour, minute, second, nanos, fold int, z Zone) (Time, error) {
	switch {
	case hour < 0 || hour > 23:
		return Time{}, valueError(op, "hour must be in 0..23, got %d", hour)
	case minute < 0 || minute > 59:
		return Time{}, valueError(op, "minute must be in 0..59, got %d", minute)
	case second < 0 || second > 59:
		return Time{}, valueError(op, "second must be in 0..59, got %d", second)
	case nanos < 0 || nanos >= nanosPerSecond:
		return Time{}, valueError(op, "nanosecond must be in 0..999999999, got %d", nanos)
	case fold != 0 && fold != 1:
		return Time{}, valueError(op, "fold must be 0 or 1, got %d", fold)
	}
	return Time{
		hour:   uint8(hour),
		minute: uint8(minute),
		second: uint8(second),
		nanos:  int32(nanos),
		fold:   uint8(fold),
		zone:   z,
	}, nil
}

// timeFromNanos expands a nanosecond-of-day count, 0 <= n < nanosPerDay.
func timeFromNanos(n int64, z Zone) Time {
	secs := n / nanosPerSecond
	return Time{
		hour:   uint8(secs / 3600),
		minute: uint8(secs / 60 % 60),
		second: uint8(secs % 60),
		nanos:  int32(n % nanosPerSecond),
		zone:   z,
	}
}

func (t Time) Hour() int        { return int(t.hour) }
func (t Time) Minute() int      { return int(t.minute) }
func (t Time) Second() int      { return int(t.second) }
func (t Time) Nanosecond() int  { return int(t.nanos) }
func (t Time) Microsecond() int { return int(t.nanos) / nanosPerMicro }
func (t Time) Fold() int        { return int(t.fold) }
func (t Time) Zone() Zone       { return t.zone }

// IsAware reports whether t carries a Zone.
func (t Time) IsAware() bool { return t.zone != nil }

// NanosOfDay returns the nanoseconds since midnight.
func (t Time) NanosOfDay() int64 {
	return (int64(t.hour)*3600+int64(t.minute)*60+int64(t.second))*nanosPerSecond + int64(t.nanos)
}

// Replace returns t with the given fields overridden and re-validated.
// Date fields are rejected.
func (t Time) Replace(opts ...Field) (Time, error) {
	const op = "Time.Replace"
	f := fields{
		hour: int(t.hour), minute: int(t.minute), second: int(t.second),
		nanos: int(t.nanos), fold: int(t.fold), zone: t.zone,
	}
	f.apply(opts)
	if f.set&dateMask != 0 {
		return Time{}, valueError(op, "a time of day has no date fields")
	}
	return newTime(op, f.hour, f.minute, f.second, f.nanos, f.fold, f.zone)
}

// Naive returns t without its Zone.
func (t Time) Naive() Time {
	t.zone = nil
	return t
}

// UTCOffset asks the zone for its offset; ok is false for naive values or
// when the zone has no answer.
func (t Time) UTCOffset() (d Duration, ok bool, err error) {
	if t.zone == nil {
		return Duration{}, false, nil
	}
	off, ok, err := zoneOffset("Time.UTCOffset", t.zone, nil)
	if err != nil || !ok {
		return Duration{}, false, err
	}
	return off.Duration(), true, nil
}

// DST asks the zone for its daylight-saving adjustment.
func (t Time) DST() (d Duration, ok bool, err error) {
	if t.zone == nil {
		return Duration{}, false, nil
	}
	off, ok, err := zoneDST("Time.DST", t.zone, nil)
	if err != nil || !ok {
		return Duration{}, false, err
	}
	return off.Duration(), true, nil
}

// ZoneName asks the zone for its display name.
func (t Time) ZoneName() (string, bool) {
	if t.zone == nil {
		return "", false
	}
	return t.zone.Name(nil)
}

// Compare orders two times of day. Naive times compare by their fields;
// aware times compare after subtracting each one's UTC offset. Comparing a
// naive time with an aware one is a TYPE error.
func (t Time) Compare(o Time) (int, error) {
	const op = "Time.Compare"
	if t.IsAware() != o.IsAware() {
		return 0, typeError(op, "cannot compare naive and aware times")
	}
	a, b := t.NanosOfDay(), o.NanosOfDay()
	if t.IsAware() {
		ta, err := requireOffset(op, t.zone, nil)
		if err != nil {
			return 0, err
		}
		tb, err := requireOffset(op, o.zone, nil)
		if err != nil {
			return 0, err
		}
		a -= ta.nanos()
		b -= tb.nanos()
	}
	return cmpInt64(a, b), nil
}

// Equal reports whether t and o denote the same time. Naive and aware
// values are never equal.
func (t Time) Equal(o Time) bool {
	c, err := t.Compare(o)
	return err == nil && c == 0
}

// String formats t as "HH:MM:SS[.fraction][+HH:MM]".
func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d%s", t.hour, t.minute, t.second, fraction(int(t.nanos)))
	if t.zone != nil {
		if off, ok, err := zoneOffset("Time.String", t.zone, nil); err == nil && ok {
			s += off.String()
		}
	}
	return s
}
