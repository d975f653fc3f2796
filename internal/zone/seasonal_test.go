package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/datetimeng/internal/chrono"
)

func at(t *testing.T, y, mo, d, h, mi, s int, z chrono.Zone) chrono.DateTime {
	t.Helper()
	v, err := chrono.NewDateTime(y, mo, d, h, mi, s, 0, z)
	require.NoError(t, err)
	return v
}

func folded(t *testing.T, v chrono.DateTime) chrono.DateTime {
	t.Helper()
	f, err := v.Replace(chrono.WithFold(1))
	require.NoError(t, err)
	return f
}

func offsetOf(t *testing.T, v chrono.DateTime) chrono.Offset {
	t.Helper()
	off, ok := v.Zone().UTCOffset(&v)
	require.True(t, ok)
	return off
}

func nameOf(t *testing.T, v chrono.DateTime) string {
	t.Helper()
	name, ok := v.ZoneName()
	require.True(t, ok)
	return name
}

func TestUSTransitions(t *testing.T) {
	tests := []struct {
		year       int
		start, end string
	}{
		{1987, "1987-04-05 02:00:00", "1987-10-25 02:00:00"},
		{2002, "2002-04-07 02:00:00", "2002-10-27 02:00:00"},
		{2006, "2006-04-02 02:00:00", "2006-10-29 02:00:00"},
		{2007, "2007-03-11 02:00:00", "2007-11-04 02:00:00"},
		{2008, "2008-03-09 02:00:00", "2008-11-02 02:00:00"},
	}
	for _, tt := range tests {
		start, end, ok := US.Transitions(tt.year, -300)
		require.True(t, ok, "year %d", tt.year)
		assert.Equal(t, tt.start, start.String())
		assert.Equal(t, tt.end, end.String())
	}

	_, _, ok := US.Transitions(1986, -300)
	assert.False(t, ok)
}

func TestEUTransitionsFollowUTC(t *testing.T) {
	start, end, ok := EU.Transitions(2002, 60)
	require.True(t, ok)
	assert.Equal(t, "2002-03-31 02:00:00", start.String())
	assert.Equal(t, "2002-10-27 03:00:00", end.String())

	start, end, ok = EU.Transitions(2002, 0)
	require.True(t, ok)
	assert.Equal(t, "2002-03-31 01:00:00", start.String())
	assert.Equal(t, "2002-10-27 02:00:00", end.String())

	start, _, ok = EU.Transitions(2002, 120)
	require.True(t, ok)
	assert.Equal(t, "2002-03-31 03:00:00", start.String())
}

func TestEasternAroundSpringForward(t *testing.T) {
	before := at(t, 2002, 4, 7, 1, 59, 59, Eastern)
	assert.Equal(t, chrono.Offset(-300), offsetOf(t, before))
	assert.Equal(t, "EST", nameOf(t, before))

	// 02:xx does not exist; fold 0 reads it with the offset before the jump.
	gap := at(t, 2002, 4, 7, 2, 30, 0, Eastern)
	assert.Equal(t, chrono.Offset(-300), offsetOf(t, gap))
	assert.Equal(t, chrono.Offset(-240), offsetOf(t, folded(t, gap)))

	after := at(t, 2002, 4, 7, 3, 0, 0, Eastern)
	assert.Equal(t, chrono.Offset(-240), offsetOf(t, after))
	assert.Equal(t, "EDT", nameOf(t, after))

	d, err := after.Sub(before)
	require.NoError(t, err)
	assert.Equal(t, chrono.Second, d)
}

func TestEasternAroundFallBack(t *testing.T) {
	before := at(t, 2002, 10, 27, 0, 59, 59, Eastern)
	assert.Equal(t, "2002-10-27 00:59:59-04:00", before.String())

	first := at(t, 2002, 10, 27, 1, 0, 0, Eastern)
	second := folded(t, first)
	assert.Equal(t, "EDT", nameOf(t, first))
	assert.Equal(t, "EST", nameOf(t, second))

	d, err := first.Sub(before)
	require.NoError(t, err)
	assert.Equal(t, chrono.Second, d)

	d, err = second.Sub(before)
	require.NoError(t, err)
	assert.Equal(t, "1:00:01", d.String())

	after := at(t, 2002, 10, 27, 2, 0, 0, Eastern)
	assert.Equal(t, chrono.Offset(-300), offsetOf(t, after))
	assert.Equal(t, chrono.Offset(-300), offsetOf(t, folded(t, after)))
}

func TestEasternPost2007(t *testing.T) {
	before := at(t, 2007, 3, 11, 1, 59, 59, Eastern)
	assert.Equal(t, "2007-03-11 01:59:59-05:00", before.String())

	after := at(t, 2007, 3, 11, 3, 0, 0, Eastern)
	assert.Equal(t, "2007-03-11 03:00:00-04:00", after.String())

	// Under the old rules this would still be standard time.
	march := at(t, 2007, 3, 20, 12, 0, 0, Eastern)
	assert.Equal(t, "EDT", nameOf(t, march))
	old := at(t, 2006, 3, 20, 12, 0, 0, Eastern)
	assert.Equal(t, "EST", nameOf(t, old))
}

func TestSeasonalBeforeRules(t *testing.T) {
	summer := at(t, 1986, 7, 1, 12, 0, 0, Pacific)
	assert.Equal(t, chrono.Offset(-480), offsetOf(t, summer))
	dst, ok := Pacific.DST(&summer)
	require.True(t, ok)
	assert.Equal(t, chrono.Offset(0), dst)
}

func TestSeasonalBareTimeIsStandard(t *testing.T) {
	off, ok := Central.UTCOffset(nil)
	require.True(t, ok)
	assert.Equal(t, chrono.Offset(-360), off)

	name, ok := Central.Name(nil)
	require.True(t, ok)
	assert.Equal(t, "CST", name)
}

func TestAmsterdamDemo(t *testing.T) {
	sat := at(t, 2002, 10, 26, 12, 0, 0, Amsterdam)
	assert.Equal(t, chrono.Offset(120), offsetOf(t, sat))

	sun, err := sat.Add(chrono.Day)
	require.NoError(t, err)
	assert.Equal(t, chrono.Offset(60), offsetOf(t, sun))

	wed := at(t, 2002, 10, 23, 12, 0, 0, Amsterdam)
	assert.Equal(t, chrono.Offset(120), offsetOf(t, wed))
	nextWed, err := wed.Add(chrono.Week)
	require.NoError(t, err)
	assert.Equal(t, chrono.Offset(60), offsetOf(t, nextWed))

	late := at(t, 2002, 10, 27, 1, 59, 59, Amsterdam)
	assert.Equal(t, "CEST", nameOf(t, late))
	utc, err := late.In(UTC)
	require.NoError(t, err)
	assert.Equal(t, "2002-10-26 23:59:59+00:00", utc.String())

	london, err := late.In(London)
	require.NoError(t, err)
	assert.Equal(t, "2002-10-27 00:59:59+01:00", london.String())
	assert.Equal(t, "WEST", nameOf(t, london))
}

func TestAmsterdamRepeatedHour(t *testing.T) {
	tests := []struct {
		utc  chrono.DateTime
		want string
		fold int
	}{
		{at(t, 2002, 10, 26, 23, 0, 0, UTC), "2002-10-27 01:00:00+02:00", 0},
		{at(t, 2002, 10, 27, 0, 0, 0, UTC), "2002-10-27 02:00:00+02:00", 0},
		{at(t, 2002, 10, 27, 1, 0, 0, UTC), "2002-10-27 02:00:00+01:00", 1},
		{at(t, 2002, 10, 27, 2, 0, 0, UTC), "2002-10-27 03:00:00+01:00", 0},
	}
	for _, tt := range tests {
		local, err := tt.utc.In(Amsterdam)
		require.NoError(t, err)
		assert.Equal(t, tt.want, local.String())
		assert.Equal(t, tt.fold, local.Fold())

		back, err := local.In(UTC)
		require.NoError(t, err)
		assert.True(t, back.Equal(tt.utc))
	}

	// Every EU zone switches at the same instant.
	london, err := at(t, 2002, 10, 27, 1, 0, 0, UTC).In(London)
	require.NoError(t, err)
	assert.Equal(t, "2002-10-27 01:00:00+00:00", london.String())
	assert.Equal(t, "WET", nameOf(t, london))
}

func TestNewSeasonalRejectsHugeOffset(t *testing.T) {
	_, err := NewSeasonal(23*60+30, "X", "XD", EU)
	assert.Error(t, err)

	z, err := NewSeasonal(5*60+30, "IST", "", nil)
	require.NoError(t, err)
	v := at(t, 2002, 7, 1, 0, 0, 0, z)
	assert.Equal(t, chrono.Offset(330), offsetOf(t, v))
	assert.Equal(t, "IST", z.String())
}
