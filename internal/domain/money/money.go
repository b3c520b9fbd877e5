// Package money provides the fixed-point arithmetic helpers shared by the
// split policies and the expense engine. All monetary values in the system
// are shopspring decimals; float64 is never used for money.
package money

import "github.com/shopspring/decimal"

// CentScale is the scale used for currency amounts.
const CentScale = 2

var (
	// CentTolerance is the maximum accepted deviation between a supplied
	// share sum and the expense total (one cent).
	CentTolerance = decimal.New(1, -2)

	// FractionTolerance is the maximum accepted deviation of a fractional
	// percentage sum from exactly one.
	FractionTolerance = decimal.New(1, -4)

	// One and Hundred are the expected percentage sums per format.
	One     = decimal.NewFromInt(1)
	Hundred = decimal.NewFromInt(100)
)

// RoundCents rounds to two decimal places, half-up.
// shopspring's Round is half away from zero, which matches half-up for the
// non-negative amounts handled here.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentScale)
}

// SplitEqually returns one participant's equal share of total over n,
// rounded to cents.
func SplitEqually(total decimal.Decimal, n int) decimal.Decimal {
	return RoundCents(total.Div(decimal.NewFromInt(int64(n))))
}

// FractionOf returns total multiplied by a 0..1 fraction, rounded to cents.
func FractionOf(total, fraction decimal.Decimal) decimal.Decimal {
	return RoundCents(total.Mul(fraction))
}

// EqualWithin reports whether a and b differ by at most tol.
func EqualWithin(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}

// Sum adds the given decimals, returning zero for an empty list.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
