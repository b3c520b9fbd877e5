package splitter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitshare-service/internal/domain/expense"
	"github.com/splitshare-service/internal/domain/money"
)

// unequalPolicy accepts caller-supplied amounts per participant. The sum is
// compared against the total with a one-cent tolerance to absorb caller-side
// rounding; within tolerance the supplied amounts are kept untouched.
type unequalPolicy struct{}

func (unequalPolicy) Kind() expense.SplitKind {
	return expense.SplitUnequal
}

func (unequalPolicy) ValidateAndDerive(in Input) ([]ComputedShare, error) {
	if err := requireShares(in.Shares); err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for i, share := range in.Shares {
		if share.Amount == nil || !share.Amount.IsPositive() {
			return nil, expense.NewDomainError(
				expense.ErrorInvalidShareAmount,
				fmt.Sprintf("shares[%d].shareAmount", i),
				"share amount must be greater than 0",
			)
		}
		sum = sum.Add(*share.Amount)
	}

	if !money.EqualWithin(sum, in.Total, money.CentTolerance) {
		return nil, expense.NewDomainError(
			expense.ErrorShareSumMismatch,
			"shares",
			fmt.Sprintf("split amounts (%s) do not match the total amount (%s)", money.RoundCents(sum), money.RoundCents(in.Total)),
		)
	}

	out := make([]ComputedShare, len(in.Shares))
	for i, share := range in.Shares {
		// Coarse derived field for display; not re-validated for sum-to-one.
		percentage := money.RoundCents(share.Amount.Div(in.Total))
		out[i] = ComputedShare{
			UserID:     share.UserID,
			Amount:     *share.Amount,
			Percentage: percentage,
		}
	}

	return out, nil
}
