package chrono

import (
	"math/big"
)

// Rational is an exact quotient, used where the legacy library fell back to
// floating point (Duration / Duration, total seconds).
//
// The zero value is 0. Rational values are immutable: accessors return copies.
type Rational struct {
	r *big.Rat
}

// NewRational returns num/den. den must not be zero.
func NewRational(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, valueError("NewRational", "zero denominator")
	}
	return Rational{r: big.NewRat(num, den)}, nil
}

// RationalFromBig returns num/den from big integers. den must not be zero.
func RationalFromBig(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, valueError("RationalFromBig", "zero denominator")
	}
	return Rational{r: new(big.Rat).SetFrac(num, den)}, nil
}

func (q Rational) rat() *big.Rat {
	if q.r == nil {
		return new(big.Rat)
	}
	return q.r
}

// Num returns the numerator in lowest terms. The sign lives here.
func (q Rational) Num() *big.Int {
	return new(big.Int).Set(q.rat().Num())
}

// Denom returns the positive denominator in lowest terms.
func (q Rational) Denom() *big.Int {
	return new(big.Int).Set(q.rat().Denom())
}

// Sign returns -1, 0 or +1.
func (q Rational) Sign() int {
	return q.rat().Sign()
}

// IsInt reports whether the denominator is 1.
func (q Rational) IsInt() bool {
	return q.rat().IsInt()
}

// Cmp compares q and o.
func (q Rational) Cmp(o Rational) int {
	return q.rat().Cmp(o.rat())
}

// Floor returns the greatest integer <= q.
func (q Rational) Floor() *big.Int {
	fq, _ := floorDivMod(q.rat().Num(), q.rat().Denom())
	return fq
}

// Float64 returns the nearest float64 and whether it is exact.
// Use only for display; arithmetic stays in Rational.
func (q Rational) Float64() (float64, bool) {
	return q.rat().Float64()
}

// String returns "num/den", or just "num" for integers.
func (q Rational) String() string {
	return q.rat().RatString()
}

var bigOne = big.NewInt(1)

// floorDivMod returns the floor quotient and the remainder carrying the sign
// of y.
func floorDivMod(x, y *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(x, y, r)
	if r.Sign() != 0 && (r.Sign() < 0) != (y.Sign() < 0) {
		q.Sub(q, bigOne)
		r.Add(r, y)
	}
	return q, r
}

// roundHalfEven returns num/den rounded to the nearest integer, ties to even.
// den must be positive.
func roundHalfEven(num, den *big.Int) *big.Int {
	q, r := floorDivMod(num, den)
	twice := new(big.Int).Lsh(r, 1)
	switch c := twice.Cmp(den); {
	case c > 0:
		q.Add(q, bigOne)
	case c == 0 && q.Bit(0) == 1:
		q.Add(q, bigOne)
	}
	return q
}
