// Package splitter implements the share computation policies for the three
// split kinds. Each policy is a pure, stateless computation: it validates the
// supplied shares and derives the missing fields (amount from percentage or
// vice versa) so that the resulting amounts reconstruct the expense total
// exactly.
package splitter

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitshare-service/internal/domain/expense"
)

// ShareInput is one participant's share as supplied by the caller. Amount
// and Percentage are nil until supplied or derived, depending on the kind.
type ShareInput struct {
	UserID     uuid.UUID
	Amount     *decimal.Decimal
	Percentage *decimal.Decimal
}

// ComputedShare is the fully derived share for one participant.
type ComputedShare struct {
	UserID     uuid.UUID
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// Input carries everything a policy needs. Shares keep the order they were
// supplied in; the remainder-absorbing policies assign the rounding residue
// to the last share.
type Input struct {
	Total  decimal.Decimal
	Shares []ShareInput

	// PercentageFormat declares how percentages are expressed. Only the
	// percentage policy reads it; FormatAuto enables detection.
	PercentageFormat expense.PercentageFormat
}

// Policy validates a share set and derives the final amounts for one
// split kind.
type Policy interface {
	Kind() expense.SplitKind
	ValidateAndDerive(in Input) ([]ComputedShare, error)
}

var policies = map[expense.SplitKind]Policy{
	expense.SplitEqual:      equalPolicy{},
	expense.SplitUnequal:    unequalPolicy{},
	expense.SplitPercentage: percentagePolicy{},
}

// ForKind returns the policy for the given split kind.
func ForKind(kind expense.SplitKind) (Policy, error) {
	policy, ok := policies[kind]
	if !ok {
		return nil, expense.NewDomainError(expense.ErrorUnsupportedSplitKind, "splitKind", "unsupported split kind: "+string(kind))
	}
	return policy, nil
}

func requireShares(shares []ShareInput) error {
	if len(shares) == 0 {
		return expense.NewDomainError(expense.ErrorEmptyShareSet, "shares", "at least one share is required")
	}
	return nil
}
