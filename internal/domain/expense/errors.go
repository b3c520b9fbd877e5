package expense

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorCode identifies a share validation failure. Validation errors are
// client-input errors: they are surfaced verbatim and are not retryable.
type ErrorCode string

const (
	// ErrorEmptyShareSet indicates an expense was submitted without shares.
	ErrorEmptyShareSet ErrorCode = "EMPTY_SHARE_SET"
	// ErrorInvalidShareAmount indicates a missing, zero, or negative share amount.
	ErrorInvalidShareAmount ErrorCode = "INVALID_SHARE_AMOUNT"
	// ErrorShareSumMismatch indicates supplied amounts do not add up to the total.
	ErrorShareSumMismatch ErrorCode = "SHARE_SUM_MISMATCH"
	// ErrorUnequalShareMismatch indicates a pre-populated equal share deviates
	// from the derived equal amount.
	ErrorUnequalShareMismatch ErrorCode = "UNEQUAL_SHARE_MISMATCH"
	// ErrorInvalidPercentageRange indicates a percentage outside the format's range.
	ErrorInvalidPercentageRange ErrorCode = "INVALID_PERCENTAGE_RANGE"
	// ErrorPercentageSumMismatch indicates percentages do not sum to the format total.
	ErrorPercentageSumMismatch ErrorCode = "PERCENTAGE_SUM_MISMATCH"
	// ErrorUnsupportedSplitKind indicates an unknown split kind tag.
	ErrorUnsupportedSplitKind ErrorCode = "UNSUPPORTED_SPLIT_KIND"
	// ErrorPayerNotGroupMember indicates the payer does not belong to the group.
	ErrorPayerNotGroupMember ErrorCode = "PAYER_NOT_GROUP_MEMBER"
	// ErrorShareUserNotGroupMember indicates a share references a non-member.
	ErrorShareUserNotGroupMember ErrorCode = "SHARE_USER_NOT_GROUP_MEMBER"
	// ErrorInvalidInput indicates a malformed expense field.
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
)

// DomainError is a structured share validation error carrying the offending
// field and a human-readable message with the expected and actual values.
type DomainError struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewDomainError creates a domain error with code, field, and message.
func NewDomainError(code ErrorCode, field, message string) error {
	return DomainError{Code: code, Field: field, Message: message}
}

// ErrExpenseNotFound indicates a missing expense.
type ErrExpenseNotFound struct {
	ExpenseID uuid.UUID
}

func (e ErrExpenseNotFound) Error() string {
	return "expense not found: " + e.ExpenseID.String()
}

// ErrNotShareOwner indicates a settle attempt by someone other than the
// user who owes the share.
type ErrNotShareOwner struct {
	ShareID uuid.UUID
	UserID  uuid.UUID
}

func (e ErrNotShareOwner) Error() string {
	return "user " + e.UserID.String() + " does not own share " + e.ShareID.String()
}

// ErrShareNotFound indicates a missing share.
type ErrShareNotFound struct {
	ShareID uuid.UUID
}

func (e ErrShareNotFound) Error() string {
	return "share not found: " + e.ShareID.String()
}
