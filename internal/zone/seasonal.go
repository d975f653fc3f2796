package zone

import (
	"fmt"

	"github.com/roach88/datetimeng/internal/chrono"
)

// dstSave is the daylight saving adjustment of every Seasonal zone.
const dstSave chrono.Offset = 60

// Seasonal is a zone with a standard offset and one hour of DST decided by
// a Rules set.
type Seasonal struct {
	std     chrono.Offset
	stdName string
	dstName string
	rules   Rules
}

// NewSeasonal returns a zone observing rules. A nil rules never observes
// DST.
func NewSeasonal(std chrono.Offset, stdName, dstName string, rules Rules) (*Seasonal, error) {
	if std < -maxOffsetMinutes+dstSave || std > maxOffsetMinutes-dstSave {
		return nil, fmt.Errorf("zone %q: standard offset %s out of range", stdName, std)
	}
	return &Seasonal{std: std, stdName: stdName, dstName: dstName, rules: rules}, nil
}

func mustSeasonal(std chrono.Offset, stdName, dstName string, rules Rules) *Seasonal {
	z, err := NewSeasonal(std, stdName, dstName, rules)
	if err != nil {
		panic(err)
	}
	return z
}

// US zones.
var (
	Eastern  = mustSeasonal(-5*60, "EST", "EDT", US)
	Central  = mustSeasonal(-6*60, "CST", "CDT", US)
	Mountain = mustSeasonal(-7*60, "MST", "MDT", US)
	Pacific  = mustSeasonal(-8*60, "PST", "PDT", US)
)

// European zones.
var (
	WesternEU = mustSeasonal(0, "WET", "WEST", EU)
	CentralEU = mustSeasonal(60, "CET", "CEST", EU)
	EasternEU = mustSeasonal(120, "EET", "EEST", EU)

	London    = WesternEU
	Amsterdam = CentralEU
	Berlin    = CentralEU
)

// Standard returns the standard-time offset.
func (z *Seasonal) Standard() chrono.Offset { return z.std }

// Rules returns the rule set, nil when the zone has no DST.
func (z *Seasonal) Rules() Rules { return z.rules }

// UTCOffset implements chrono.Zone. A bare time of day (dt == nil) reads as
// standard time.
func (z *Seasonal) UTCOffset(dt *chrono.DateTime) (chrono.Offset, bool) {
	return z.std + z.dst(dt), true
}

// DST implements chrono.Zone.
func (z *Seasonal) DST(dt *chrono.DateTime) (chrono.Offset, bool) {
	return z.dst(dt), true
}

// Name implements chrono.Zone.
func (z *Seasonal) Name(dt *chrono.DateTime) (string, bool) {
	if z.dst(dt) != 0 {
		return z.dstName, true
	}
	return z.stdName, true
}

func (z *Seasonal) String() string {
	if z.rules == nil {
		return z.stdName
	}
	return z.stdName + "/" + z.dstName
}

// dst evaluates the rules against dt's local fields. DST covers
// [start+1h, end-1h) outright. The hour before end is repeated and the hour
// after start is skipped; in both, the fold picks the reading.
func (z *Seasonal) dst(dt *chrono.DateTime) chrono.Offset {
	if dt == nil || z.rules == nil {
		return 0
	}
	start, end, ok := z.rules.Transitions(dt.Year(), z.std)
	if !ok {
		return 0
	}
	afterGap, err := start.Add(chrono.Hour)
	if err != nil {
		return 0
	}
	repeatFrom, err := end.SubDuration(chrono.Hour)
	if err != nil {
		return 0
	}

	local := dt.Naive()
	switch {
	case within(local, afterGap, repeatFrom):
		return dstSave
	case within(local, repeatFrom, end):
		if dt.Fold() == 1 {
			return 0
		}
		return dstSave
	case within(local, start, afterGap):
		if dt.Fold() == 1 {
			return dstSave
		}
		return 0
	}
	return 0
}

// within reports lo <= v < hi for naive values.
func within(v, lo, hi chrono.DateTime) bool {
	a, _ := v.Compare(lo)
	b, _ := v.Compare(hi)
	return a >= 0 && b < 0
}
