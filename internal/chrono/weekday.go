package chrono

// FirstWeekdayOnOrAfter returns the first date of the given weekday
// (Monday == 0) on or after d.
func (d Date) FirstWeekdayOnOrAfter(weekday int) (Date, error) {
	const op = "Date.FirstWeekdayOnOrAfter"
	if weekday < Monday || weekday > Sunday {
		return Date{}, valueError(op, "weekday must be in 0..6, got %d", weekday)
	}
	return d.addDays(op, floorMod(int64(weekday-d.Weekday()), 7))
}

// FirstWeekdayOnOrBefore returns the last date of the given weekday on or
// before d.
func (d Date) FirstWeekdayOnOrBefore(weekday int) (Date, error) {
	const op = "Date.FirstWeekdayOnOrBefore"
	if weekday < Monday || weekday > Sunday {
		return Date{}, valueError(op, "weekday must be in 0..6, got %d", weekday)
	}
	return d.addDays(op, -floorMod(int64(d.Weekday()-weekday), 7))
}

// WeekdayOfMonth returns the index'th date of the given weekday in d's month.
//
// Index 0 is the first such day and -1 the last, as with slice indexing from
// either end. An index past the end of the month spills into the
// neighbouring month: WeekdayOfMonth(Sunday, 4) in a month with four Sundays
// is the first Sunday of the next month.
func (d Date) WeekdayOfMonth(weekday, index int) (Date, error) {
	const op = "Date.WeekdayOfMonth"
	if index >= 0 {
		first := Date{year: d.year, month: d.month, day: 1}
		base, err := first.FirstWeekdayOnOrAfter(weekday)
		if err != nil {
			return Date{}, err
		}
		return base.addDays(op, int64(index)*7)
	}
	last := Date{year: d.year, month: d.month, day: uint8(d.DaysInMonth())}
	base, err := last.FirstWeekdayOnOrBefore(weekday)
	if err != nil {
		return Date{}, err
	}
	return base.addDays(op, int64(index+1)*7)
}
