package chrono

// Test-only providers. Real providers live in package zone, which imports
// this package.

type fixedZone struct {
	off  Offset
	name string
}

func (z fixedZone) UTCOffset(*DateTime) (Offset, bool) { return z.off, true }
func (z fixedZone) DST(*DateTime) (Offset, bool)       { return 0, true }
func (z fixedZone) Name(*DateTime) (string, bool)      { return z.name, true }

var (
	utcZone = fixedZone{off: 0, name: "UTC"}
	cetZone = fixedZone{off: 60, name: "CET"}
)

// silentZone never knows its offset.
type silentZone struct{}

func (silentZone) UTCOffset(*DateTime) (Offset, bool) { return 0, false }
func (silentZone) DST(*DateTime) (Offset, bool)       { return 0, false }
func (silentZone) Name(*DateTime) (string, bool)      { return "", false }

// dstZone is UTC-5 with one daylight period: clocks go forward at 02:00 on
// start and back at 02:00 daylight time on end. Both are naive local values.
type dstZone struct {
	start, end DateTime
}

// eastern2002 follows the 1987 US rules for 2002 only.
var eastern2002 = dstZone{
	start: MustDateTime(NewDateTime(2002, 4, 7, 2, 0, 0, 0, nil)),
	end:   MustDateTime(NewDateTime(2002, 10, 27, 2, 0, 0, 0, nil)),
}

func (z dstZone) dst(dt *DateTime) Offset {
	if dt == nil {
		return 0
	}
	n := dt.Naive()
	startPlus := MustDateTime(z.start.Add(Hour))
	endMinus := MustDateTime(z.end.SubDuration(Hour))
	in := func(lo, hi DateTime) bool {
		a, _ := n.Compare(lo)
		b, _ := n.Compare(hi)
		return a >= 0 && b < 0
	}
	switch {
	case in(startPlus, endMinus):
		return 60
	case in(endMinus, z.end):
		if dt.Fold() == 1 {
			return 0
		}
		return 60
	case in(z.start, startPlus):
		if dt.Fold() == 1 {
			return 60
		}
		return 0
	}
	return 0
}

func (z dstZone) UTCOffset(dt *DateTime) (Offset, bool) { return -300 + z.dst(dt), true }
func (z dstZone) DST(dt *DateTime) (Offset, bool)       { return z.dst(dt), true }

func (z dstZone) Name(dt *DateTime) (string, bool) {
	if z.dst(dt) != 0 {
		return "EDT", true
	}
	return "EST", true
}
