package chrono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, y, m, d int) Date {
	t.Helper()
	v, err := NewDate(y, m, d)
	require.NoError(t, err)
	return v
}

func TestNewDateValidates(t *testing.T) {
	tests := []struct {
		name    string
		y, m, d int
	}{
		{"month 13", 2002, 13, 1},
		{"month 0", 2002, 0, 1},
		{"feb 29 common year", 2001, 2, 29},
		{"feb 29 1900", 1900, 2, 29},
		{"year 0", 0, 1, 1},
		{"year 10000", 10000, 1, 1},
		{"day 32", 2002, 1, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDate(tt.y, tt.m, tt.d)
			require.Error(t, err)
			assert.True(t, IsValueError(err))
		})
	}

	d := date(t, 2000, 2, 29)
	assert.True(t, d.IsLeap())
	assert.Equal(t, 29, d.DaysInMonth())
}

func TestDateOrdinalRoundTrip(t *testing.T) {
	for _, d := range []Date{MinDate, MaxDate, date(t, 1970, 1, 1), date(t, 2000, 2, 29)} {
		back, err := DateFromOrdinal(d.Ordinal())
		require.NoError(t, err)
		assert.Equal(t, d, back)
	}
	assert.Equal(t, int64(1), MinDate.Ordinal())
	assert.Equal(t, int64(719163), date(t, 1970, 1, 1).Ordinal())

	_, err := DateFromOrdinal(0)
	assert.True(t, IsRangeError(err))
}

func TestDateAddAtBounds(t *testing.T) {
	_, err := date(t, 9999, 12, 31).Add(Day)
	require.Error(t, err)
	assert.True(t, IsRangeError(err))

	_, err = date(t, 1, 1, 1).SubDuration(Day)
	require.Error(t, err)
	assert.True(t, IsRangeError(err))

	_, err = MinDate.AddDays(-1 << 40)
	assert.True(t, IsRangeError(err))

	got, err := date(t, 9999, 12, 30).Add(Day)
	require.NoError(t, err)
	assert.Equal(t, MaxDate, got)
}

func TestDateAddRejectsPartialDays(t *testing.T) {
	_, err := date(t, 2002, 1, 1).Add(Hour)
	require.Error(t, err)
	assert.True(t, IsValueError(err))

	_, err = date(t, 2002, 1, 1).SubDuration(Nanosecond)
	assert.True(t, IsValueError(err))
}

func TestDateArithmetic(t *testing.T) {
	d := date(t, 2002, 1, 1)

	got, err := d.Add(MustDuration(NewDuration(299, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, date(t, 2002, 10, 27), got)

	diff := date(t, 2002, 10, 27).Sub(d)
	assert.Equal(t, int64(299), diff.Days())
	assert.Equal(t, 0, diff.Seconds())
	assert.Equal(t, int64(-299), d.Sub(date(t, 2002, 10, 27)).Days())

	got, err = date(t, 2000, 3, 1).AddDays(-1)
	require.NoError(t, err)
	assert.Equal(t, date(t, 2000, 2, 29), got)

	got, err = date(t, 1900, 3, 1).AddDays(-1)
	require.NoError(t, err)
	assert.Equal(t, date(t, 1900, 2, 28), got)
}

func TestDateWeekdayAndISO(t *testing.T) {
	d := date(t, 2002, 10, 27)
	assert.Equal(t, Sunday, d.Weekday())
	assert.Equal(t, 7, d.ISOWeekday())
	assert.Equal(t, 300, d.YearDay())
	assert.Equal(t, 365, d.DaysInYear())
	assert.Equal(t, 366, date(t, 2000, 1, 1).DaysInYear())

	y, w, wd := date(t, 2005, 1, 2).ISOCalendar()
	assert.Equal(t, []int{2004, 53, 7}, []int{y, w, wd})

	back, err := DateFromISOCalendar(2004, 53, 7)
	require.NoError(t, err)
	assert.Equal(t, date(t, 2005, 1, 2), back)

	_, err = DateFromISOCalendar(2003, 53, 1)
	assert.True(t, IsValueError(err), "2003 has 52 ISO weeks")

	_, err = DateFromISOCalendar(9999, 52, 7)
	assert.True(t, IsRangeError(err))
}

func TestDateCompare(t *testing.T) {
	a, b := date(t, 2002, 3, 31), date(t, 2002, 4, 1)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, a.Compare(b), cmpInt64(a.Ordinal(), b.Ordinal()))
}

func TestDateReplace(t *testing.T) {
	d := date(t, 2002, 1, 31)

	got, err := d.Replace(WithMonth(3))
	require.NoError(t, err)
	assert.Equal(t, date(t, 2002, 3, 31), got)
	assert.Equal(t, date(t, 2002, 1, 31), d, "receiver is unchanged")

	_, err = d.Replace(WithMonth(2))
	assert.True(t, IsValueError(err))

	_, err = d.Replace(WithHour(1))
	assert.True(t, IsValueError(err))
}

func TestDateWeekdayHelpers(t *testing.T) {
	got, err := date(t, 2002, 4, 1).FirstWeekdayOnOrAfter(Sunday)
	require.NoError(t, err)
	assert.Equal(t, date(t, 2002, 4, 7), got)

	got, err = date(t, 2002, 4, 7).FirstWeekdayOnOrAfter(Sunday)
	require.NoError(t, err)
	assert.Equal(t, date(t, 2002, 4, 7), got)

	got, err = date(t, 2002, 10, 31).FirstWeekdayOnOrBefore(Sunday)
	require.NoError(t, err)
	assert.Equal(t, date(t, 2002, 10, 27), got)

	_, err = date(t, 2002, 10, 31).FirstWeekdayOnOrBefore(7)
	assert.True(t, IsValueError(err))
}

func TestDateWeekdayOfMonth(t *testing.T) {
	tests := []struct {
		name    string
		month   Date
		weekday int
		index   int
		want    Date
	}{
		{"second monday", date(t, 2008, 1, 20), Monday, 1, date(t, 2008, 1, 14)},
		{"first sunday", date(t, 2007, 11, 15), Sunday, 0, date(t, 2007, 11, 4)},
		{"last sunday", date(t, 2002, 3, 1), Sunday, -1, date(t, 2002, 3, 31)},
		{"second to last sunday", date(t, 2002, 3, 1), Sunday, -2, date(t, 2002, 3, 24)},
		{"spills into next month", date(t, 2002, 10, 1), Sunday, 4, date(t, 2002, 11, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.month.WeekdayOfMonth(tt.weekday, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "0001-01-01", MinDate.String())
	assert.Equal(t, "2002-10-27", date(t, 2002, 10, 27).String())
}
