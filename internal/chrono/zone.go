package chrono

import (
	"fmt"
)

// Offset is a signed whole number of minutes east of UTC.
type Offset int

// maxOffset bounds |Offset|: strictly less than one day.
const maxOffset = 24*60 - 1

// OffsetOf returns the offset for a signed hours/minutes pair. Both parts
// take the sign of hours when hours is non-zero, so OffsetOf(-5, 30) is
// -05:30.
func OffsetOf(hours, minutes int) Offset {
	if hours < 0 {
		return Offset(hours*60 - minutes)
	}
	return Offset(hours*60 + minutes)
}

// Duration returns the offset as a Duration.
func (o Offset) Duration() Duration {
	d, _ := fromParts("Offset.Duration", 0, int64(o)*60, 0)
	return d
}

func (o Offset) nanos() int64 {
	return int64(o) * 60 * nanosPerSecond
}

// String formats the offset as "+HH:MM" or "-HH:MM".
func (o Offset) String() string {
	sign := '+'
	m := int(o)
	if m < 0 {
		sign = '-'
		m = -m
	}
	return fmt.Sprintf("%c%02d:%02d", sign, m/60, m%60)
}

func (o Offset) valid() bool {
	return o >= -maxOffset && o <= maxOffset
}

// Zone is the capability a timezone provider implements.
//
// Every method is given the local value being asked about; dt is nil when the
// query comes from a bare Time with no date. Each method returns false when
// the answer is undefined for that value.
//
// Implementations must be deterministic and free of side effects for a given
// input, and safe for concurrent use: the engine calls them from whatever
// goroutine operates on a value and does no locking of its own.
//
// Fold-aware implementations follow one convention. In a repeated hour
// (clocks set back), fold 0 selects the earlier instant, which is the larger
// offset. In a skipped hour (clocks set forward), fold 0 selects the offset in
// force before the transition.
type Zone interface {
	// UTCOffset returns the offset of local time from UTC, DST included.
	UTCOffset(dt *DateTime) (Offset, bool)

	// DST returns the daylight-saving adjustment already included in
	// UTCOffset, or 0 outside DST.
	DST(dt *DateTime) (Offset, bool)

	// Name returns a display name such as "EST".
	Name(dt *DateTime) (string, bool)
}

// zoneOffset asks z for the offset of dt and validates the answer.
func zoneOffset(op string, z Zone, dt *DateTime) (Offset, bool, error) {
	off, ok := z.UTCOffset(dt)
	if !ok {
		return 0, false, nil
	}
	if !off.valid() {
		return 0, false, valueError(op, "zone returned offset %d minutes, must be within +/-%d", int(off), maxOffset)
	}
	return off, true, nil
}

// zoneDST asks z for the DST adjustment of dt and validates the answer.
func zoneDST(op string, z Zone, dt *DateTime) (Offset, bool, error) {
	off, ok := z.DST(dt)
	if !ok {
		return 0, false, nil
	}
	if !off.valid() {
		return 0, false, valueError(op, "zone returned dst %d minutes, must be within +/-%d", int(off), maxOffset)
	}
	return off, true, nil
}

// requireOffset is zoneOffset for contexts where an aware value must have an
// offset; a zone that answers "undefined" is reported as a TYPE error.
func requireOffset(op string, z Zone, dt *DateTime) (Offset, error) {
	off, ok, err := zoneOffset(op, z, dt)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, typeError(op, "zone reports no UTC offset")
	}
	return off, nil
}
