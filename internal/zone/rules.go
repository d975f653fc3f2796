package zone

import (
	"github.com/roach88/datetimeng/internal/chrono"
)

// Rules decides when daylight saving time starts and ends in a year.
type Rules interface {
	// Transitions returns the local wall-clock moments at which DST starts
	// (read in standard time) and ends (read in daylight time). ok is false
	// when the year has no DST.
	Transitions(year int, std chrono.Offset) (start, end chrono.DateTime, ok bool)

	// Name identifies the rule set in zone definitions.
	Name() string
}

type usPeriod struct {
	firstYear             int
	startMonth, startWeek int
	endMonth, endWeek     int
}

// usPeriods is newest first. Week indexes count Sundays as in
// Date.WeekdayOfMonth.
var usPeriods = []usPeriod{
	{firstYear: 2007, startMonth: chrono.March, startWeek: 1, endMonth: chrono.November, endWeek: 0},
	{firstYear: 1987, startMonth: chrono.April, startWeek: 0, endMonth: chrono.October, endWeek: -1},
}

type usRules struct{}

// US switches at 02:00 local time: from the second Sunday in March to the
// first Sunday in November since 2007, and from the first Sunday in April to
// the last Sunday in October from 1987 to 2006. Earlier years have no DST.
var US Rules = usRules{}

func (usRules) Name() string { return "us" }

func (usRules) Transitions(year int, _ chrono.Offset) (chrono.DateTime, chrono.DateTime, bool) {
	for _, p := range usPeriods {
		if year < p.firstYear {
			continue
		}
		start, ok1 := sundayAt(year, p.startMonth, p.startWeek, 2*60)
		end, ok2 := sundayAt(year, p.endMonth, p.endWeek, 2*60)
		return start, end, ok1 && ok2
	}
	return chrono.DateTime{}, chrono.DateTime{}, false
}

type euRules struct{}

// EU switches every zone at the same instant, 01:00 UTC on the last Sundays
// of March and October.
var EU Rules = euRules{}

func (euRules) Name() string { return "eu" }

func (euRules) Transitions(year int, std chrono.Offset) (chrono.DateTime, chrono.DateTime, bool) {
	start, ok1 := sundayAt(year, chrono.March, -1, 60+int(std))
	end, ok2 := sundayAt(year, chrono.October, -1, 60+int(std)+60)
	return start, end, ok1 && ok2
}

// sundayAt returns the index'th Sunday of month, plus minutes past its
// midnight (which may be negative or exceed a day).
func sundayAt(year, month, index, minutes int) (chrono.DateTime, bool) {
	first, err := chrono.NewDate(year, month, 1)
	if err != nil {
		return chrono.DateTime{}, false
	}
	day, err := first.WeekdayOfMonth(chrono.Sunday, index)
	if err != nil {
		return chrono.DateTime{}, false
	}
	shift, err := chrono.NewDuration(0, int64(minutes)*60, 0)
	if err != nil {
		return chrono.DateTime{}, false
	}
	at, err := chrono.Combine(day, chrono.Midnight).Add(shift)
	if err != nil {
		return chrono.DateTime{}, false
	}
	return at, true
}

// RulesByName returns the rule set for a definition's rules field. "" and
// "none" yield nil.
func RulesByName(name string) (Rules, bool) {
	switch name {
	case "us":
		return US, true
	case "eu":
		return EU, true
	case "", "none":
		return nil, true
	}
	return nil, false
}
