package expense

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitKind selects the policy used to compute participant shares.
type SplitKind string

const (
	// SplitEqual divides the total evenly, the last share absorbing the
	// rounding remainder.
	SplitEqual SplitKind = "EQUAL"
	// SplitUnequal uses caller-supplied amounts per participant.
	SplitUnequal SplitKind = "UNEQUAL"
	// SplitPercentage derives amounts from caller-supplied percentages.
	SplitPercentage SplitKind = "PERCENTAGE"
)

// ParseSplitKind validates a split kind tag from an API request.
func ParseSplitKind(s string) (SplitKind, error) {
	switch kind := SplitKind(strings.ToUpper(strings.TrimSpace(s))); kind {
	case SplitEqual, SplitUnequal, SplitPercentage:
		return kind, nil
	default:
		return "", NewDomainError(ErrorUnsupportedSplitKind, "splitKind", "unsupported split kind: "+s)
	}
}

// PercentageFormat declares how percentage values are expressed.
type PercentageFormat string

const (
	// FormatAuto lets the percentage policy detect the format: any value
	// above 1.5 marks the whole set as 0-100, otherwise 0-1.
	FormatAuto PercentageFormat = "AUTO"
	// FormatFraction expects percentages in (0, 1].
	FormatFraction PercentageFormat = "FRACTION"
	// FormatHundred expects percentages in (0, 100].
	FormatHundred PercentageFormat = "HUNDRED"
)

// ParsePercentageFormat validates an optional percentage format tag.
// The empty string maps to FormatAuto for callers that rely on detection.
func ParsePercentageFormat(s string) (PercentageFormat, error) {
	switch format := PercentageFormat(strings.ToUpper(strings.TrimSpace(s))); format {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatFraction, FormatHundred:
		return format, nil
	default:
		return "", NewDomainError(ErrorInvalidInput, "percentageFormat", "unsupported percentage format: "+s)
	}
}

// Expense is a group expense with its computed participant shares.
// After creation the share amounts always sum exactly to Amount and the
// split kind never changes.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitKind   SplitKind       `json:"splitKind"`
	GroupID     uuid.UUID       `json:"groupId"`
	PaidByID    uuid.UUID       `json:"paidById"`
	OccurredAt  time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	Shares      []Share         `json:"shares"`
}

// Share is one participant's obligation within an expense. Shares are
// created together with their expense and mutate only via settlement.
type Share struct {
	ID          uuid.UUID       `json:"id"`
	ExpenseID   uuid.UUID       `json:"expenseId"`
	UserID      uuid.UUID       `json:"userId"`
	ShareAmount decimal.Decimal `json:"shareAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
	Settled     bool            `json:"settled"`
}

// NewExpense builds an expense header, validating the scalar fields.
// Shares are attached by the reconciliation engine after policy derivation.
func NewExpense(description string, amount decimal.Decimal, kind SplitKind, groupID, paidByID uuid.UUID) (*Expense, error) {
	if strings.TrimSpace(description) == "" {
		return nil, NewDomainError(ErrorInvalidInput, "description", "description is required")
	}
	if !amount.IsPositive() {
		return nil, NewDomainError(ErrorInvalidInput, "amount", "amount must be greater than zero")
	}

	now := time.Now()
	return &Expense{
		ID:          uuid.New(),
		Description: description,
		Amount:      amount.Round(2),
		SplitKind:   kind,
		GroupID:     groupID,
		PaidByID:    paidByID,
		OccurredAt:  now,
		CreatedAt:   now,
	}, nil
}

// Settle marks the share as settled. Settling an already-settled share is
// a no-op; there is no inverse operation.
func (s *Share) Settle() {
	s.Settled = true
}
