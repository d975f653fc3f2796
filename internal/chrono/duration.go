package chrono

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Canonical Duration bounds. MaxDays matches the legacy library's
// +/-999999999 day limit, which spans any difference between two dates in
// year 1..9999 with ample headroom and keeps every component in int64.
const (
	MaxDays = 999_999_999

	nanosPerMicro  = 1_000
	nanosPerMilli  = 1_000_000
	nanosPerSecond = 1_000_000_000
	secondsPerDay  = 86_400
	nanosPerDay    = secondsPerDay * nanosPerSecond
)

var (
	bigNanosPerSecond = big.NewInt(nanosPerSecond)
	bigNanosPerDay    = big.NewInt(nanosPerDay)
)

// Duration is a signed span of time in canonical (days, seconds, nanoseconds)
// form: days carries the sign, 0 <= seconds < 86400 and
// 0 <= nanoseconds < 1e9. Two Durations are equal iff their fields are equal,
// so == works.
type Duration struct {
	days  int64
	secs  int32
	nanos int32
}

// Common durations.
var (
	Nanosecond  = Duration{nanos: 1}
	Microsecond = Duration{nanos: nanosPerMicro}
	Millisecond = Duration{nanos: nanosPerMilli}
	Second      = Duration{secs: 1}
	Minute      = Duration{secs: 60}
	Hour        = Duration{secs: 3600}
	Day         = Duration{days: 1}
	Week        = Duration{days: 7}

	// MinDuration and MaxDuration bound every Duration.
	MinDuration = Duration{days: -MaxDays}
	MaxDuration = Duration{days: MaxDays, secs: secondsPerDay - 1, nanos: nanosPerSecond - 1}
)

// Parts lists Duration components that are summed and normalized by
// Parts.Duration. Any field may be negative or exceed its natural range.
type Parts struct {
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

// Duration sums the parts and normalizes them into canonical form.
func (p Parts) Duration() (Duration, error) {
	total := new(big.Int)
	add := func(n int64, unit int64) {
		total.Add(total, new(big.Int).Mul(big.NewInt(n), big.NewInt(unit)))
	}
	add(p.Weeks, 7*nanosPerDay)
	add(p.Days, nanosPerDay)
	add(p.Hours, 3600*nanosPerSecond)
	add(p.Minutes, 60*nanosPerSecond)
	add(p.Seconds, nanosPerSecond)
	add(p.Milliseconds, nanosPerMilli)
	add(p.Microseconds, nanosPerMicro)
	add(p.Nanoseconds, 1)
	return fromTotal("Parts.Duration", total)
}

// NewDuration normalizes (days, seconds, nanoseconds) into canonical form.
func NewDuration(days, seconds, nanoseconds int64) (Duration, error) {
	return Parts{Days: days, Seconds: seconds, Nanoseconds: nanoseconds}.Duration()
}

// DurationFromLegacy builds a Duration from the microsecond-resolution
// (days, seconds, microseconds) triple. The nanosecond digits below the
// microsecond are always zero.
func DurationFromLegacy(days, seconds, microseconds int64) (Duration, error) {
	return Parts{Days: days, Seconds: seconds, Microseconds: microseconds}.Duration()
}

// MustDuration panics if err is non-nil. It is intended for package-level
// variables and tests.
func MustDuration(d Duration, err error) Duration {
	if err != nil {
		panic(err)
	}
	return d
}

// fromParts normalizes components whose magnitudes are known not to
// overflow int64 arithmetic (days well under 2^62/86400, sub-day parts at
// most a few days' worth of nanoseconds).
func fromParts(op string, days, secs, nanos int64) (Duration, error) {
	secs += floorDiv(nanos, nanosPerSecond)
	nanos = floorMod(nanos, nanosPerSecond)
	days += floorDiv(secs, secondsPerDay)
	secs = floorMod(secs, secondsPerDay)
	if days < -MaxDays || days > MaxDays {
		return Duration{}, rangeError(op, "duration of %d days exceeds +/-%d days", days, MaxDays)
	}
	return Duration{days: days, secs: int32(secs), nanos: int32(nanos)}, nil
}

// fromTotal normalizes a total nanosecond count.
func fromTotal(op string, total *big.Int) (Duration, error) {
	days, rem := floorDivMod(total, bigNanosPerDay)
	if !days.IsInt64() || days.Int64() < -MaxDays || days.Int64() > MaxDays {
		return Duration{}, rangeError(op, "duration of %s days exceeds +/-%d days", days, MaxDays)
	}
	r := rem.Int64()
	return Duration{
		days:  days.Int64(),
		secs:  int32(r / nanosPerSecond),
		nanos: int32(r % nanosPerSecond),
	}, nil
}

// TotalNanoseconds returns the exact signed length in nanoseconds.
func (d Duration) TotalNanoseconds() *big.Int {
	t := new(big.Int).Mul(big.NewInt(d.days), bigNanosPerDay)
	t.Add(t, big.NewInt(int64(d.secs)*nanosPerSecond+int64(d.nanos)))
	return t
}

// Days returns the signed day component.
func (d Duration) Days() int64 { return d.days }

// Seconds returns the seconds component, 0..86399.
func (d Duration) Seconds() int { return int(d.secs) }

// Nanoseconds returns the nanosecond component, 0..999999999.
func (d Duration) Nanoseconds() int { return int(d.nanos) }

// Microseconds returns the nanosecond component truncated to microseconds.
func (d Duration) Microseconds() int { return int(d.nanos) / nanosPerMicro }

// IsZero reports whether d is the zero Duration.
func (d Duration) IsZero() bool { return d == Duration{} }

// Sign returns -1, 0 or +1.
func (d Duration) Sign() int {
	switch {
	case d.days < 0:
		return -1
	case d.IsZero():
		return 0
	default:
		return 1
	}
}

// subDayNanos returns the sub-day part in nanoseconds.
func (d Duration) subDayNanos() int64 {
	return int64(d.secs)*nanosPerSecond + int64(d.nanos)
}

// Legacy returns the microsecond-resolution view (days, seconds,
// microseconds). Nanoseconds are truncated within the canonical second, so
// this is lossy; DurationFromLegacy does not invent the dropped digits back.
func (d Duration) Legacy() (days int64, seconds, microseconds int) {
	return d.days, int(d.secs), int(d.nanos) / nanosPerMicro
}

// Add returns d+o.
func (d Duration) Add(o Duration) (Duration, error) {
	return fromParts("Duration.Add", d.days+o.days, int64(d.secs)+int64(o.secs), int64(d.nanos)+int64(o.nanos))
}

// Sub returns d-o.
func (d Duration) Sub(o Duration) (Duration, error) {
	return fromParts("Duration.Sub", d.days-o.days, int64(d.secs)-int64(o.secs), int64(d.nanos)-int64(o.nanos))
}

// Neg returns -d. Negating MaxDuration is out of range.
func (d Duration) Neg() (Duration, error) {
	return fromParts("Duration.Neg", -d.days, -int64(d.secs), -int64(d.nanos))
}

// Abs returns |d|.
func (d Duration) Abs() (Duration, error) {
	if d.days < 0 {
		return d.Neg()
	}
	return d, nil
}

// Mul returns d*k.
func (d Duration) Mul(k int64) (Duration, error) {
	t := d.TotalNanoseconds()
	return fromTotal("Duration.Mul", t.Mul(t, big.NewInt(k)))
}

// MulRational returns d*q rounded to the nearest nanosecond, ties to even.
func (d Duration) MulRational(q Rational) (Duration, error) {
	num := d.TotalNanoseconds()
	num.Mul(num, q.rat().Num())
	return fromTotal("Duration.MulRational", roundHalfEven(num, q.rat().Denom()))
}

// MulDecimal returns d*f rounded to the nearest nanosecond, ties to even.
// f must be finite.
func (d Duration) MulDecimal(f *apd.Decimal) (Duration, error) {
	const op = "Duration.MulDecimal"
	if f == nil || f.Form != apd.Finite {
		return Duration{}, valueError(op, "factor must be a finite decimal")
	}

	t := d.TotalNanoseconds()
	x := new(apd.Decimal)
	x.Coeff.SetMathBigInt(new(big.Int).Abs(t))
	x.Negative = t.Sign() < 0

	digits := int64(len(t.String())) + f.NumDigits() + 2
	if f.Exponent > 0 {
		digits += int64(f.Exponent)
	}
	ctx := apd.BaseContext.WithPrecision(uint32(digits))
	ctx.Rounding = apd.RoundHalfEven

	product := new(apd.Decimal)
	if _, err := ctx.Mul(product, x, f); err != nil {
		return Duration{}, &Error{Kind: KindValue, Op: op, Message: "multiplication failed", Err: err}
	}
	rounded := new(apd.Decimal)
	if _, err := ctx.Quantize(rounded, product, 0); err != nil {
		return Duration{}, &Error{Kind: KindRange, Op: op, Message: "rounding failed", Err: err}
	}

	n := rounded.Coeff.MathBigInt()
	if rounded.Negative {
		n.Neg(n)
	}
	return fromTotal(op, n)
}

// DivInt returns d/k rounded to the nearest nanosecond, ties to even.
func (d Duration) DivInt(k int64) (Duration, error) {
	if k == 0 {
		return Duration{}, valueError("Duration.DivInt", "division by zero")
	}
	num := d.TotalNanoseconds()
	den := big.NewInt(k)
	if k < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return fromTotal("Duration.DivInt", roundHalfEven(num, den))
}

// FloorDivInt returns floor(d/k) at nanosecond resolution.
func (d Duration) FloorDivInt(k int64) (Duration, error) {
	if k == 0 {
		return Duration{}, valueError("Duration.FloorDivInt", "division by zero")
	}
	q, _ := floorDivMod(d.TotalNanoseconds(), big.NewInt(k))
	return fromTotal("Duration.FloorDivInt", q)
}

// Div returns the exact quotient d/o.
func (d Duration) Div(o Duration) (Rational, error) {
	if o.IsZero() {
		return Rational{}, valueError("Duration.Div", "division by zero duration")
	}
	return RationalFromBig(d.TotalNanoseconds(), o.TotalNanoseconds())
}

// DivMod returns floor(d/o) and the remainder d - q*o. The remainder has the
// sign of o, as with floor division.
func (d Duration) DivMod(o Duration) (*big.Int, Duration, error) {
	if o.IsZero() {
		return nil, Duration{}, valueError("Duration.DivMod", "division by zero duration")
	}
	q, r := floorDivMod(d.TotalNanoseconds(), o.TotalNanoseconds())
	rem, err := fromTotal("Duration.DivMod", r)
	if err != nil {
		return nil, Duration{}, err
	}
	return q, rem, nil
}

// Mod returns the remainder of floor division by o.
func (d Duration) Mod(o Duration) (Duration, error) {
	_, r, err := d.DivMod(o)
	return r, err
}

// Truncate rounds d toward negative infinity to a multiple of m.
// m must be positive.
func (d Duration) Truncate(m Duration) (Duration, error) {
	if m.Sign() <= 0 {
		return Duration{}, valueError("Duration.Truncate", "multiple must be positive")
	}
	r, err := d.Mod(m)
	if err != nil {
		return Duration{}, err
	}
	return d.Sub(r)
}

// TotalSeconds returns the exact length in seconds.
func (d Duration) TotalSeconds() Rational {
	return Rational{r: new(big.Rat).SetFrac(d.TotalNanoseconds(), bigNanosPerSecond)}
}

// Compare returns -1, 0 or +1 as d is shorter, equal to or longer than o.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.days != o.days:
		return cmpInt64(d.days, o.days)
	case d.secs != o.secs:
		return cmpInt64(int64(d.secs), int64(o.secs))
	default:
		return cmpInt64(int64(d.nanos), int64(o.nanos))
	}
}

// String formats d like the legacy library: "[-]D day[s], H:MM:SS[.ffffff]".
// The fraction has six digits when the value has microsecond precision and
// nine otherwise.
func (d Duration) String() string {
	var b strings.Builder
	if d.days != 0 {
		plural := "s"
		if d.days == 1 || d.days == -1 {
			plural = ""
		}
		fmt.Fprintf(&b, "%d day%s, ", d.days, plural)
	}
	s := int(d.secs)
	fmt.Fprintf(&b, "%d:%02d:%02d", s/3600, s/60%60, s%60)
	b.WriteString(fraction(int(d.nanos)))
	return b.String()
}

// fraction renders a sub-second part: empty for 0, six digits when the
// value is a whole number of microseconds, otherwise nine.
func fraction(nanos int) string {
	switch {
	case nanos == 0:
		return ""
	case nanos%nanosPerMicro == 0:
		return fmt.Sprintf(".%06d", nanos/nanosPerMicro)
	default:
		return fmt.Sprintf(".%09d", nanos)
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
