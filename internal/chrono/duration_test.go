package chrono

import (
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dur(t *testing.T, p Parts) Duration {
	t.Helper()
	d, err := p.Duration()
	require.NoError(t, err)
	return d
}

func TestDurationNormalization(t *testing.T) {
	tests := []struct {
		name  string
		parts Parts
		days  int64
		secs  int
		nanos int
	}{
		{"zero", Parts{}, 0, 0, 0},
		{"minus one nanosecond", Parts{Nanoseconds: -1}, -1, 86399, 999_999_999},
		{"hours carry into days", Parts{Hours: 25, Minutes: 1}, 1, 60, 0},
		{"weeks and negative days", Parts{Weeks: 1, Days: -1}, 6, 0, 0},
		{"mixed units", Parts{Seconds: 1, Milliseconds: 1, Microseconds: 1, Nanoseconds: 1}, 0, 1, 1_001_001},
		{"negative seconds", Parts{Seconds: -86401}, -2, 86399, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dur(t, tt.parts)
			assert.Equal(t, tt.days, d.Days())
			assert.Equal(t, tt.secs, d.Seconds())
			assert.Equal(t, tt.nanos, d.Nanoseconds())
		})
	}
}

func TestDurationCanonicalFormIsUnique(t *testing.T) {
	a := MustDuration(NewDuration(1, 0, 0))
	b := MustDuration(NewDuration(0, 86400, 0))
	c := MustDuration(NewDuration(0, 0, nanosPerDay))
	d := dur(t, Parts{Hours: 24})

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
	assert.Equal(t, a, d)
	assert.Equal(t, Day, a)
	assert.Equal(t, 0, a.Compare(d))
}

func TestDurationAddSubRoundTrip(t *testing.T) {
	values := []Duration{
		{},
		Nanosecond,
		dur(t, Parts{Nanoseconds: -1}),
		dur(t, Parts{Days: 3, Hours: 23, Nanoseconds: 999_999_999}),
		dur(t, Parts{Days: -400_000, Seconds: 12345, Microseconds: 678}),
		dur(t, Parts{Days: 500_000_000}),
		dur(t, Parts{Days: -499_999_999, Nanoseconds: -7}),
	}

	for _, d1 := range values {
		for _, d2 := range values {
			sum, err := d1.Add(d2)
			require.NoError(t, err)
			back, err := sum.Sub(d2)
			require.NoError(t, err)
			assert.Equal(t, d1, back, "(%s + %s) - %s", d1, d2, d2)
		}
	}
}

func TestDurationBounds(t *testing.T) {
	_, err := MaxDuration.Add(Nanosecond)
	require.Error(t, err)
	assert.True(t, IsRangeError(err))

	_, err = MinDuration.Sub(Nanosecond)
	assert.True(t, IsRangeError(err))

	_, err = MaxDuration.Neg()
	assert.True(t, IsRangeError(err), "-MaxDuration needs one day more than the bound")

	neg, err := MinDuration.Neg()
	require.NoError(t, err)
	assert.Equal(t, int64(MaxDays), neg.Days())

	_, err = NewDuration(MaxDays+1, 0, 0)
	assert.True(t, IsRangeError(err))

	_, err = Day.Mul(MaxDays + 1)
	assert.True(t, IsRangeError(err))
}

func TestDurationLegacyView(t *testing.T) {
	exact := dur(t, Parts{Nanoseconds: 123_456_000})
	days, secs, micros := exact.Legacy()
	assert.Equal(t, int64(0), days)
	assert.Equal(t, 0, secs)
	assert.Equal(t, 123456, micros)

	lossy := dur(t, Parts{Nanoseconds: 123_456_789})
	_, _, micros = lossy.Legacy()
	assert.Equal(t, 123456, micros, "789ns are dropped")

	// Truncation happens within the canonical second.
	days, secs, micros = dur(t, Parts{Nanoseconds: -1}).Legacy()
	assert.Equal(t, int64(-1), days)
	assert.Equal(t, 86399, secs)
	assert.Equal(t, 999999, micros)

	// No precision is invented on the way back.
	back, err := DurationFromLegacy(0, 0, 123456)
	require.NoError(t, err)
	assert.Equal(t, 123_456_000, back.Nanoseconds())
	assert.NotEqual(t, lossy, back)
}

func TestDurationNegAbsSign(t *testing.T) {
	d := dur(t, Parts{Hours: 1, Nanoseconds: 5})
	n, err := d.Neg()
	require.NoError(t, err)
	assert.Equal(t, -1, n.Sign())
	assert.Equal(t, int64(-1), n.Days())

	a, err := n.Abs()
	require.NoError(t, err)
	assert.Equal(t, d, a)

	assert.Equal(t, 0, Duration{}.Sign())
	assert.True(t, Duration{}.IsZero())
	assert.Equal(t, 1, Nanosecond.Sign())
}

func TestDurationMultiply(t *testing.T) {
	got, err := Hour.Mul(24)
	require.NoError(t, err)
	assert.Equal(t, Day, got)

	got, err = Minute.Mul(-3)
	require.NoError(t, err)
	assert.Equal(t, dur(t, Parts{Minutes: -3}), got)

	third := mustRational(t, 1, 3)
	got, err = Second.MulRational(third)
	require.NoError(t, err)
	assert.Equal(t, 333_333_333, got.Nanoseconds())

	// 2.5ns rounds to the even neighbour.
	half := mustRational(t, 1, 2)
	got, err = dur(t, Parts{Nanoseconds: 5}).MulRational(half)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Nanoseconds())

	factor, _, err := apd.NewFromString("1.5")
	require.NoError(t, err)
	got, err = Hour.MulDecimal(factor)
	require.NoError(t, err)
	assert.Equal(t, dur(t, Parts{Minutes: 90}), got)

	thousand, _, err := apd.NewFromString("1E3")
	require.NoError(t, err)
	got, err = Millisecond.MulDecimal(thousand)
	require.NoError(t, err)
	assert.Equal(t, Second, got)

	_, err = Hour.MulDecimal(nil)
	assert.True(t, IsValueError(err))
}

func TestDurationDivide(t *testing.T) {
	q, err := Day.Div(Hour)
	require.NoError(t, err)
	assert.True(t, q.IsInt())
	assert.Equal(t, "24", q.String())

	q, err = Second.Div(dur(t, Parts{Seconds: 3}))
	require.NoError(t, err)
	assert.Equal(t, "1/3", q.String())

	_, err = Second.Div(Duration{})
	assert.True(t, IsValueError(err))

	got, err := dur(t, Parts{Nanoseconds: 3}).DivInt(2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Nanoseconds(), "1.5 rounds to 2")

	got, err = dur(t, Parts{Nanoseconds: 5}).DivInt(2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Nanoseconds(), "2.5 rounds to 2")

	got, err = dur(t, Parts{Nanoseconds: -3}).FloorDivInt(2)
	require.NoError(t, err)
	assert.Equal(t, dur(t, Parts{Nanoseconds: -2}), got)

	_, err = Hour.DivInt(0)
	assert.True(t, IsValueError(err))
}

func TestDurationDivModRemainderFollowsDivisor(t *testing.T) {
	tests := []struct {
		name      string
		d, by     Duration
		quotient  int64
		remainder Duration
	}{
		{"positive", dur(t, Parts{Seconds: 7}), dur(t, Parts{Seconds: 2}), 3, Second},
		{"negative dividend", dur(t, Parts{Seconds: -7}), dur(t, Parts{Seconds: 2}), -4, Second},
		{"negative divisor", dur(t, Parts{Seconds: 7}), dur(t, Parts{Seconds: -2}), -4, dur(t, Parts{Seconds: -1})},
		{"exact", Day, Hour, 24, Duration{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, r, err := tt.d.DivMod(tt.by)
			require.NoError(t, err)
			assert.Equal(t, 0, q.Cmp(big.NewInt(tt.quotient)), "quotient %s", q)
			assert.Equal(t, tt.remainder, r)

			m, err := tt.d.Mod(tt.by)
			require.NoError(t, err)
			assert.Equal(t, r, m)
		})
	}
}

func TestDurationTruncate(t *testing.T) {
	got, err := dur(t, Parts{Minutes: 90}).Truncate(Hour)
	require.NoError(t, err)
	assert.Equal(t, Hour, got)

	got, err = dur(t, Parts{Minutes: -90}).Truncate(Hour)
	require.NoError(t, err)
	assert.Equal(t, dur(t, Parts{Hours: -2}), got)

	_, err = Hour.Truncate(Duration{})
	assert.True(t, IsValueError(err))
}

func TestDurationTotalSeconds(t *testing.T) {
	assert.Equal(t, "3/2", dur(t, Parts{Milliseconds: 1500}).TotalSeconds().String())
	assert.Equal(t, "86400", Day.TotalSeconds().String())
	assert.Equal(t, "-1/1000000000", dur(t, Parts{Nanoseconds: -1}).TotalSeconds().String())
}

func TestDurationCompare(t *testing.T) {
	minus := dur(t, Parts{Nanoseconds: -1})
	assert.Equal(t, -1, minus.Compare(Duration{}))
	assert.Equal(t, 1, Nanosecond.Compare(Duration{}))
	assert.Equal(t, -1, Hour.Compare(Day))
	assert.Equal(t, 1, dur(t, Parts{Days: -1, Seconds: 1}).Compare(dur(t, Parts{Days: -1})))
}

func TestDurationString(t *testing.T) {
	tests := []struct {
		parts Parts
		want  string
	}{
		{Parts{}, "0:00:00"},
		{Parts{Hours: 1, Minutes: 2, Seconds: 3}, "1:02:03"},
		{Parts{Days: 1}, "1 day, 0:00:00"},
		{Parts{Days: 2, Hours: 3, Microseconds: 5}, "2 days, 3:00:00.000005"},
		{Parts{Nanoseconds: -1}, "-1 day, 23:59:59.999999999"},
		{Parts{Days: -2, Seconds: 1}, "-2 days, 0:00:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dur(t, tt.parts).String())
	}
}

func mustRational(t *testing.T, num, den int64) Rational {
	t.Helper()
	q, err := NewRational(num, den)
	require.NoError(t, err)
	return q
}
