package splitter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitshare-service/internal/domain/expense"
	"github.com/splitshare-service/internal/domain/money"
)

// equalPolicy divides the total evenly across all shares. Because the total
// may not divide cleanly into cents, the last supplied share receives
// total - sum(others) instead of the rounded equal amount, so the amounts
// always reconstruct the total exactly. The tie-break is deliberate:
// order-dependent, last wins.
type equalPolicy struct{}

func (equalPolicy) Kind() expense.SplitKind {
	return expense.SplitEqual
}

func (equalPolicy) ValidateAndDerive(in Input) ([]ComputedShare, error) {
	if err := requireShares(in.Shares); err != nil {
		return nil, err
	}

	n := len(in.Shares)
	equalAmount := money.SplitEqually(in.Total, n)
	// Display-only approximation; not required to sum to one.
	equalPercentage := money.RoundCents(money.One.Div(decimal.NewFromInt(int64(n))))

	out := make([]ComputedShare, n)
	allocated := decimal.Zero
	for i, share := range in.Shares {
		amount := equalAmount
		if i == n-1 {
			amount = in.Total.Sub(allocated)
		}

		if share.Amount != nil && !share.Amount.Equal(amount) {
			return nil, expense.NewDomainError(
				expense.ErrorUnequalShareMismatch,
				fmt.Sprintf("shares[%d].shareAmount", i),
				fmt.Sprintf("each person should have an equal split of %s, got %s", amount, share.Amount),
			)
		}

		out[i] = ComputedShare{
			UserID:     share.UserID,
			Amount:     amount,
			Percentage: equalPercentage,
		}
		allocated = allocated.Add(amount)
	}

	return out, nil
}
