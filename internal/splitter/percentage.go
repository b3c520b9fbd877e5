package splitter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitshare-service/internal/domain/expense"
	"github.com/splitshare-service/internal/domain/money"
)

// detectionThreshold separates the two percentage formats when the caller
// did not declare one: any value above 1.5 marks the whole set as 0-100.
// A heuristic, kept for callers that predate the explicit format field.
var detectionThreshold = decimal.RequireFromString("1.5")

// percentagePolicy derives share amounts from caller-supplied percentages.
// Percentages may be fractions in (0, 1] or values in (0, 100]; the format
// is taken from the input when declared and detected otherwise. Derived
// amounts reconstruct the total exactly: the last share absorbs the rounding
// remainder, same as the equal policy.
type percentagePolicy struct{}

func (percentagePolicy) Kind() expense.SplitKind {
	return expense.SplitPercentage
}

func (percentagePolicy) ValidateAndDerive(in Input) ([]ComputedShare, error) {
	if err := requireShares(in.Shares); err != nil {
		return nil, err
	}

	for i, share := range in.Shares {
		if share.Percentage == nil {
			return nil, expense.NewDomainError(
				expense.ErrorInvalidPercentageRange,
				fmt.Sprintf("shares[%d].percentage", i),
				"percentage is required",
			)
		}
	}

	format := in.PercentageFormat
	if format == "" || format == expense.FormatAuto {
		format = detectFormat(in.Shares)
	}

	expectedSum, tolerance := money.One, money.FractionTolerance
	if format == expense.FormatHundred {
		expectedSum, tolerance = money.Hundred, money.CentTolerance
	}

	sum := decimal.Zero
	for i, share := range in.Shares {
		p := *share.Percentage
		if !p.IsPositive() || p.GreaterThan(expectedSum) {
			return nil, expense.NewDomainError(
				expense.ErrorInvalidPercentageRange,
				fmt.Sprintf("shares[%d].percentage", i),
				fmt.Sprintf("percentage must be between 0 and %s", expectedSum),
			)
		}
		sum = sum.Add(p)
	}

	if !money.EqualWithin(sum, expectedSum, tolerance) {
		return nil, expense.NewDomainError(
			expense.ErrorPercentageSumMismatch,
			"shares",
			fmt.Sprintf("total percentage (%s) must sum up to %s", sum, expectedSum),
		)
	}

	n := len(in.Shares)
	out := make([]ComputedShare, n)
	allocated := decimal.Zero
	for i, share := range in.Shares {
		fraction := *share.Percentage
		if format == expense.FormatHundred {
			fraction = fraction.Div(money.Hundred)
		}

		amount := money.FractionOf(in.Total, fraction)
		if i == n-1 {
			amount = in.Total.Sub(allocated)
		}

		out[i] = ComputedShare{
			UserID:     share.UserID,
			Amount:     amount,
			Percentage: money.RoundCents(fraction),
		}
		allocated = allocated.Add(amount)
	}

	return out, nil
}

func detectFormat(shares []ShareInput) expense.PercentageFormat {
	for _, share := range shares {
		if share.Percentage != nil && share.Percentage.GreaterThan(detectionThreshold) {
			return expense.FormatHundred
		}
	}
	return expense.FormatFraction
}
