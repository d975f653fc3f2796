package chrono

import (
	"time"
)

// Clock is the source of the current instant. The engine never reads the
// wall clock itself; constructors that need "now" take a Clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Now returns the clock's current instant localized to z, or as naive UTC
// fields when z is nil.
func Now(c Clock, z Zone) (DateTime, error) {
	t := c.Now()
	return FromUnix(t.Unix(), int64(t.Nanosecond()), z)
}

// Today returns the current date in z (UTC when z is nil).
func Today(c Clock, z Zone) (Date, error) {
	dt, err := Now(c, z)
	if err != nil {
		return Date{}, err
	}
	return dt.Date(), nil
}
