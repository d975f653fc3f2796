package chrono

import (
	"fmt"
)

// unixEpochOrdinal is the ordinal of 1970-01-01.
const unixEpochOrdinal = 719163

// MaxResolveSteps bounds the candidate offsets tried by FromUTC.
const MaxResolveSteps = 4

// DateTime is a Date combined with a Time. It is naive when the Time has no
// Zone and aware when it has one.
type DateTime struct {
	date Date
	time Time
}

// NewDateTime validates every field and returns the value attached to z
// (nil for naive). The fold is 0; use Replace(WithFold(1)) for the second
// occurrence of a repeated local time.
func NewDateTime(year, month, day, hour, minute, second, nanosecond int, z Zone) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	t, err := newTime("NewDateTime", hour, minute, second, nanosecond, 0, z)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: t}, nil
}

// DateTimeFromLegacy builds a value from microsecond-resolution fields. The
// nanosecond digits below the microsecond are zero.
func DateTimeFromLegacy(year, month, day, hour, minute, second, microsecond int, z Zone) (DateTime, error) {
	if microsecond < 0 || microsecond > 999_999 {
		return DateTime{}, valueError("DateTimeFromLegacy", "microsecond must be in 0..999999, got %d", microsecond)
	}
	return NewDateTime(year, month, day, hour, minute, second, microsecond*nanosPerMicro, z)
}

// Combine joins a date and a time of day; the result takes t's zone and fold.
func Combine(d Date, t Time) DateTime {
	return DateTime{date: d, time: t}
}

// MustDateTime panics if err is non-nil.
func MustDateTime(dt DateTime, err error) DateTime {
	if err != nil {
		panic(err)
	}
	return dt
}

func (dt DateTime) Date() Date        { return dt.date }
func (dt DateTime) Year() int         { return dt.date.Year() }
func (dt DateTime) Month() int        { return dt.date.Month() }
func (dt DateTime) Day() int          { return dt.date.Day() }
func (dt DateTime) Hour() int         { return dt.time.Hour() }
func (dt DateTime) Minute() int       { return dt.time.Minute() }
func (dt DateTime) Second() int       { return dt.time.Second() }
func (dt DateTime) Nanosecond() int   { return dt.time.Nanosecond() }
func (dt DateTime) Microsecond() int  { return dt.time.Microsecond() }
func (dt DateTime) Fold() int         { return dt.time.Fold() }
func (dt DateTime) Zone() Zone        { return dt.time.zone }
func (dt DateTime) IsAware() bool     { return dt.time.zone != nil }
func (dt DateTime) Weekday() int      { return dt.date.Weekday() }
func (dt DateTime) Ordinal() int64    { return dt.date.Ordinal() }
func (dt DateTime) NanosOfDay() int64 { return dt.time.NanosOfDay() }

// Time returns the time of day without the zone.
func (dt DateTime) Time() Time { return dt.time.Naive() }

// TimeTZ returns the time of day with the zone.
func (dt DateTime) TimeTZ() Time { return dt.time }

// ISOCalendar returns the ISO year, week and weekday of the date.
func (dt DateTime) ISOCalendar() (year, week, weekday int) { return dt.date.ISOCalendar() }

// Replace returns dt with the given fields overridden and re-validated.
func (dt DateTime) Replace(opts ...Field) (DateTime, error) {
	const op = "DateTime.Replace"
	t := dt.time
	f := fields{
		year: dt.date.Year(), month: dt.date.Month(), day: dt.date.Day(),
		hour: int(t.hour), minute: int(t.minute), second: int(t.second),
		nanos: int(t.nanos), fold: int(t.fold), zone: t.zone,
	}
	f.apply(opts)
	d, err := NewDate(f.year, f.month, f.day)
	if err != nil {
		return DateTime{}, err
	}
	nt, err := newTime(op, f.hour, f.minute, f.second, f.nanos, f.fold, f.zone)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: nt}, nil
}

// WithZone attaches z without adjusting the fields; nil makes dt naive.
func (dt DateTime) WithZone(z Zone) DateTime {
	dt.time.zone = z
	return dt
}

// Naive returns dt without its zone.
func (dt DateTime) Naive() DateTime {
	return dt.WithZone(nil)
}

func (dt DateTime) withFold(fold int) DateTime {
	dt.time.fold = uint8(fold)
	return dt
}

// Legacy returns a copy truncated to microsecond resolution.
func (dt DateTime) Legacy() DateTime {
	dt.time.nanos -= dt.time.nanos % nanosPerMicro
	return dt
}

// UTCOffset asks the zone for the offset of dt; ok is false for naive values
// or when the zone has no answer.
func (dt DateTime) UTCOffset() (d Duration, ok bool, err error) {
	if dt.time.zone == nil {
		return Duration{}, false, nil
	}
	off, ok, err := zoneOffset("DateTime.UTCOffset", dt.time.zone, &dt)
	if err != nil || !ok {
		return Duration{}, false, err
	}
	return off.Duration(), true, nil
}

// DST asks the zone for the daylight-saving adjustment of dt.
func (dt DateTime) DST() (d Duration, ok bool, err error) {
	if dt.time.zone == nil {
		return Duration{}, false, nil
	}
	off, ok, err := zoneDST("DateTime.DST", dt.time.zone, &dt)
	if err != nil || !ok {
		return Duration{}, false, err
	}
	return off.Duration(), true, nil
}

// ZoneName asks the zone for its display name at dt.
func (dt DateTime) ZoneName() (string, bool) {
	if dt.time.zone == nil {
		return "", false
	}
	return dt.time.zone.Name(&dt)
}

// fromDayNanos normalizes an (ordinal, nanoseconds) pair, where nanoseconds
// may lie outside one day, into a value with fold 0.
func fromDayNanos(op string, ord, n int64, z Zone) (DateTime, error) {
	ord += floorDiv(n, nanosPerDay)
	n = floorMod(n, nanosPerDay)
	d, err := dateFromOrdinal(op, ord)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, time: timeFromNanos(n, z)}, nil
}

// Add returns dt+d. The zone is kept, the fields move by exactly d, and the
// fold is reset to 0.
func (dt DateTime) Add(d Duration) (DateTime, error) {
	return fromDayNanos("DateTime.Add", dt.Ordinal()+d.days, dt.NanosOfDay()+d.subDayNanos(), dt.time.zone)
}

// SubDuration returns dt-d.
func (dt DateTime) SubDuration(d Duration) (DateTime, error) {
	return fromDayNanos("DateTime.SubDuration", dt.Ordinal()-d.days, dt.NanosOfDay()-d.subDayNanos(), dt.time.zone)
}

// instant returns dt as (ordinal, nanoseconds) with the UTC offset removed
// for aware values. The nanoseconds are not normalized.
func (dt DateTime) instant(op string) (int64, int64, error) {
	ord, n := dt.Ordinal(), dt.NanosOfDay()
	if dt.IsAware() {
		off, err := requireOffset(op, dt.time.zone, &dt)
		if err != nil {
			return 0, 0, err
		}
		n -= off.nanos()
	}
	return ord, n, nil
}

// Sub returns dt-o. Aware values are both reduced to UTC first, so the
// result is the elapsed time between the two instants. Mixing a naive and an
// aware value is a TYPE error.
func (dt DateTime) Sub(o DateTime) (Duration, error) {
	const op = "DateTime.Sub"
	if dt.IsAware() != o.IsAware() {
		return Duration{}, typeError(op, "cannot subtract naive and aware values")
	}
	ao, an, err := dt.instant(op)
	if err != nil {
		return Duration{}, err
	}
	bo, bn, err := o.instant(op)
	if err != nil {
		return Duration{}, err
	}
	return fromParts(op, ao-bo, 0, an-bn)
}

// Compare orders dt and o: naive values by their fields, aware values by
// their UTC-equivalent instants. Mixing a naive and an aware value is a TYPE
// error.
func (dt DateTime) Compare(o DateTime) (int, error) {
	const op = "DateTime.Compare"
	if dt.IsAware() != o.IsAware() {
		return 0, typeError(op, "cannot compare naive and aware values")
	}
	ao, an, err := dt.instant(op)
	if err != nil {
		return 0, err
	}
	bo, bn, err := o.instant(op)
	if err != nil {
		return 0, err
	}
	ao, an = ao+floorDiv(an, nanosPerDay), floorMod(an, nanosPerDay)
	bo, bn = bo+floorDiv(bn, nanosPerDay), floorMod(bn, nanosPerDay)
	if ao != bo {
		return cmpInt64(ao, bo), nil
	}
	return cmpInt64(an, bn), nil
}

// Equal reports whether dt and o denote the same instant (aware) or the same
// fields (naive). Naive and aware values are never equal.
func (dt DateTime) Equal(o DateTime) bool {
	c, err := dt.Compare(o)
	return err == nil && c == 0
}

// UTCNaive returns the UTC-equivalent of an aware value as a naive value.
func (dt DateTime) UTCNaive() (DateTime, error) {
	const op = "DateTime.UTCNaive"
	if !dt.IsAware() {
		return DateTime{}, typeError(op, "naive value has no UTC equivalent")
	}
	ord, n, err := dt.instant(op)
	if err != nil {
		return DateTime{}, err
	}
	return fromDayNanos(op, ord, n, nil)
}

// UTCInstant returns the UTC instant of an aware value as an ordinal and
// nanoseconds of day. Unlike UTCNaive it is not limited to years 1..9999, so
// the ordinal may be 0 or one past the last date.
func (dt DateTime) UTCInstant() (ordinal, nanos int64, err error) {
	const op = "DateTime.UTCInstant"
	if !dt.IsAware() {
		return 0, 0, typeError(op, "naive value has no UTC equivalent")
	}
	ord, n, err := dt.instant(op)
	if err != nil {
		return 0, 0, err
	}
	return ord + floorDiv(n, nanosPerDay), floorMod(n, nanosPerDay), nil
}

// In converts an aware value to zone z, preserving the instant.
func (dt DateTime) In(z Zone) (DateTime, error) {
	const op = "DateTime.In"
	if !dt.IsAware() {
		return DateTime{}, typeError(op, "cannot convert a naive value")
	}
	if z == nil {
		return DateTime{}, typeError(op, "target zone is nil")
	}
	utc, err := dt.UTCNaive()
	if err != nil {
		return DateTime{}, err
	}
	return FromUTC(utc, z)
}

// FromUTC localizes the UTC wall time utc (its own zone is ignored) into z.
//
// The first offset is asked at the UTC-equivalent instant, never at a guessed
// local time. Each candidate local value L = utc + offset is accepted when
// L, read back with fold 0 or 1, maps to the same instant and L is not in a
// skipped hour; otherwise the offset z reports for L becomes the next
// candidate. After MaxResolveSteps candidates, or for zones with no
// consistent answer, the offset from the first query is applied as-is: the
// zone owns that decision.
func FromUTC(utc DateTime, z Zone) (DateTime, error) {
	const op = "FromUTC"
	if z == nil {
		return DateTime{}, typeError(op, "target zone is nil")
	}
	ord, n := utc.Ordinal(), utc.NanosOfDay()

	probe := utc.withFold(0).WithZone(z)
	first, err := requireOffset(op, z, &probe)
	if err != nil {
		return DateTime{}, err
	}

	off := first
	for step := 0; step < MaxResolveSteps; step++ {
		local, err := fromDayNanos(op, ord, n+off.nanos(), z)
		if err != nil {
			return DateTime{}, err
		}
		o0, err := requireOffset(op, z, &local)
		if err != nil {
			return DateTime{}, err
		}
		later := local.withFold(1)
		o1, err := requireOffset(op, z, &later)
		if err != nil {
			return DateTime{}, err
		}

		// o0 < o1 only happens in a skipped hour.
		if o0 >= o1 {
			if off == o0 {
				return local, nil
			}
			if off == o1 {
				return later, nil
			}
		}
		if off == o0 {
			off = o1
		} else {
			off = o0
		}
	}
	return fromDayNanos(op, ord, n+first.nanos(), z)
}

// FromUnix returns the instant sec seconds plus nsec nanoseconds after
// 1970-01-01T00:00:00Z, localized to z, or as naive UTC fields when z is nil.
func FromUnix(sec, nsec int64, z Zone) (DateTime, error) {
	const op = "FromUnix"
	sec += floorDiv(nsec, nanosPerSecond)
	nsec = floorMod(nsec, nanosPerSecond)
	days := floorDiv(sec, secondsPerDay)
	utc, err := fromDayNanos(op, unixEpochOrdinal+days, floorMod(sec, secondsPerDay)*nanosPerSecond+nsec, nil)
	if err != nil {
		return DateTime{}, err
	}
	if z == nil {
		return utc, nil
	}
	return FromUTC(utc, z)
}

// Unix returns the seconds and nanoseconds since the Unix epoch of an aware
// value.
func (dt DateTime) Unix() (sec, nsec int64, err error) {
	const op = "DateTime.Unix"
	if !dt.IsAware() {
		return 0, 0, typeError(op, "naive value has no defined instant")
	}
	ord, n, err := dt.instant(op)
	if err != nil {
		return 0, 0, err
	}
	sec = (ord-unixEpochOrdinal)*secondsPerDay + floorDiv(n, nanosPerSecond)
	return sec, floorMod(n, nanosPerSecond), nil
}

// TimeTuple mirrors the legacy struct_time view of a value.
type TimeTuple struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Weekday              int // Monday == 0
	YearDay              int // 1..366
	DST                  int // 1 in DST, 0 outside, -1 unknown
}

// TimeTuple returns the legacy tuple view of dt.
func (dt DateTime) TimeTuple() (TimeTuple, error) {
	tt := TimeTuple{
		Year: dt.Year(), Month: dt.Month(), Day: dt.Day(),
		Hour: dt.Hour(), Minute: dt.Minute(), Second: dt.Second(),
		Weekday: dt.Weekday(), YearDay: dt.date.YearDay(), DST: -1,
	}
	dst, ok, err := dt.DST()
	if err != nil {
		return TimeTuple{}, err
	}
	if ok {
		tt.DST = 0
		if !dst.IsZero() {
			tt.DST = 1
		}
	}
	return tt, nil
}

// String formats dt as "YYYY-MM-DD HH:MM:SS[.fraction][+HH:MM]".
func (dt DateTime) String() string {
	return fmt.Sprintf("%s %s", dt.date, dt.timeString())
}

func (dt DateTime) timeString() string {
	t := dt.time
	s := fmt.Sprintf("%02d:%02d:%02d%s", t.hour, t.minute, t.second, fraction(int(t.nanos)))
	if t.zone != nil {
		if off, ok, err := zoneOffset("DateTime.String", t.zone, &dt); err == nil && ok {
			s += off.String()
		}
	}
	return s
}
