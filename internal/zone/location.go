package zone

import (
	"fmt"
	"time"

	"github.com/roach88/datetimeng/internal/chrono"
)

// probeWindow is how far either side of a wall time Location looks for the
// offsets in force. It assumes no two transitions fall within a day.
const probeWindow = 24 * time.Hour

// Location adapts a *time.Location (tz database or system zone).
type Location struct {
	loc *time.Location
}

// NewLocation wraps loc.
func NewLocation(loc *time.Location) *Location {
	return &Location{loc: loc}
}

// LoadLocation loads an IANA zone such as "America/New_York".
func LoadLocation(name string) (*Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return NewLocation(loc), nil
}

// Local is the operating system's zone.
var Local = NewLocation(time.Local)

func (z *Location) String() string { return z.loc.String() }

type reading struct {
	offset int // seconds east of UTC
	abbr   string
	isDST  bool
}

func readingAt(t time.Time) reading {
	abbr, off := t.Zone()
	return reading{offset: off, abbr: abbr, isDST: t.IsDST()}
}

// resolve finds the reading that applies to dt's wall-clock fields.
func (z *Location) resolve(dt *chrono.DateTime) (reading, reading, bool) {
	if dt == nil {
		return reading{}, reading{}, false
	}
	wall := time.Date(dt.Year(), time.Month(dt.Month()), dt.Day(),
		dt.Hour(), dt.Minute(), dt.Second(), dt.Nanosecond(), time.UTC)
	before := readingAt(wall.Add(-probeWindow).In(z.loc))
	after := readingAt(wall.Add(probeWindow).In(z.loc))

	var valid []reading
	for _, r := range []reading{before, after} {
		inst := wall.Add(-time.Duration(r.offset) * time.Second).In(z.loc)
		if got := readingAt(inst); got.offset == r.offset {
			if len(valid) == 0 || valid[0].offset != got.offset {
				valid = append(valid, got)
			}
		}
	}

	other := after
	switch len(valid) {
	case 0:
		// Skipped wall time.
		if dt.Fold() == 1 {
			return after, before, true
		}
		return before, after, true
	case 1:
		if other.offset == valid[0].offset {
			other = before
		}
		return valid[0], other, true
	}

	// Repeated wall time: fold 0 is the earlier instant, the larger offset.
	early, late := valid[0], valid[1]
	if early.offset < late.offset {
		early, late = late, early
	}
	if dt.Fold() == 1 {
		return late, early, true
	}
	return early, late, true
}

// UTCOffset implements chrono.Zone. A bare time of day has no offset.
func (z *Location) UTCOffset(dt *chrono.DateTime) (chrono.Offset, bool) {
	r, _, ok := z.resolve(dt)
	if !ok {
		return 0, false
	}
	return chrono.Offset(r.offset / 60), true
}

// DST implements chrono.Zone. The saving is measured against the nearby
// standard-time reading, or taken as one hour when none is in view.
func (z *Location) DST(dt *chrono.DateTime) (chrono.Offset, bool) {
	r, other, ok := z.resolve(dt)
	if !ok {
		return 0, false
	}
	if !r.isDST {
		return 0, true
	}
	if !other.isDST && other.offset != r.offset {
		return chrono.Offset((r.offset - other.offset) / 60), true
	}
	return dstSave, true
}

// Name implements chrono.Zone. A bare time of day reports the location name.
func (z *Location) Name(dt *chrono.DateTime) (string, bool) {
	r, _, ok := z.resolve(dt)
	if !ok {
		return z.loc.String(), true
	}
	return r.abbr, true
}
