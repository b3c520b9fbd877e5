package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/splitshare-service/internal/domain/activity"
	"github.com/splitshare-service/internal/domain/expense"
	"github.com/splitshare-service/internal/domain/group"
	"github.com/splitshare-service/internal/domain/user"
	"github.com/splitshare-service/internal/splitter"
)

// UserService defines the interface for registration and authentication
type UserService interface {
	// Register creates a new user and returns it with a signed token
	// Returns ErrDuplicateEmail if the email is already taken
	Register(ctx context.Context, name, email, password string) (*user.User, string, error)

	// Login verifies credentials and returns the user with a signed token
	// Returns auth.ErrInvalidCredentials on unknown email or wrong password
	Login(ctx context.Context, email, password string) (*user.User, string, error)

	// GetUserByID retrieves a user by its ID
	// Returns ErrUserNotFound if the user doesn't exist
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// GroupService defines the interface for group and membership operations
type GroupService interface {
	// CreateGroup creates a group with the creator as its first member
	CreateGroup(ctx context.Context, name, description string, createdBy uuid.UUID) (*group.Group, error)

	// GetGroupByID retrieves a group including its member set.
	// The requester must be a member; outsiders get ErrNotMember.
	GetGroupByID(ctx context.Context, id, requestedBy uuid.UUID) (*group.Group, error)

	// GetUserGroups retrieves every group the user belongs to
	GetUserGroups(ctx context.Context, userID uuid.UUID) ([]*group.Group, error)

	// AddMember adds a user to the group. The requester must be a member
	// and the new member must exist.
	AddMember(ctx context.Context, groupID, userID, requestedBy uuid.UUID) error

	// RemoveMember removes a user from the group. The requester must be
	// a member.
	RemoveMember(ctx context.Context, groupID, userID, requestedBy uuid.UUID) error

	// DeleteGroup deletes a group. Only the creator may delete it.
	DeleteGroup(ctx context.Context, groupID, requestedBy uuid.UUID) error
}

// CreateExpenseInput carries everything needed to reconcile a new expense
type CreateExpenseInput struct {
	GroupID          uuid.UUID
	PaidByID         uuid.UUID
	Description      string
	Amount           decimal.Decimal
	SplitKind        expense.SplitKind
	PercentageFormat expense.PercentageFormat
	Shares           []splitter.ShareInput
	CorrelationID    string
}

// ExpenseService defines the interface for expense reconciliation and
// settlement operations
type ExpenseService interface {
	// CreateExpense resolves the group, payer and share members, runs the
	// split policy for the requested kind, and persists the expense header
	// with its shares atomically. Validation failures surface as
	// expense.DomainError.
	CreateExpense(ctx context.Context, in *CreateExpenseInput) (*expense.Expense, error)

	// GetExpenseByID retrieves an expense with its shares. The requester
	// must be a member of the expense's group.
	// Returns ErrExpenseNotFound if the expense doesn't exist
	GetExpenseByID(ctx context.Context, id, requestedBy uuid.UUID) (*expense.Expense, error)

	// GetGroupExpenses retrieves the expenses of a group, newest first.
	// The requester must be a member; outsiders get ErrNotMember.
	GetGroupExpenses(ctx context.Context, groupID, requestedBy uuid.UUID) ([]*expense.Expense, error)

	// GetUserExpenses retrieves the expenses paid by a user
	GetUserExpenses(ctx context.Context, userID uuid.UUID) ([]*expense.Expense, error)

	// GetUserShares retrieves every share held by a user
	GetUserShares(ctx context.Context, userID uuid.UUID) ([]*expense.Share, error)

	// GetUserUnsettledShares retrieves a user's outstanding shares,
	// optionally scoped to one group
	GetUserUnsettledShares(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]*expense.Share, error)

	// SettleShare marks a share as settled. Only the share's owner may
	// settle it; others get ErrNotShareOwner. Settling an already-settled
	// share is a no-op success; there is no unsettle operation.
	SettleShare(ctx context.Context, shareID, requestedBy uuid.UUID, correlationID string) (*expense.Share, error)

	// DeleteExpense removes an expense and its shares. The requester must
	// be a member of the expense's group.
	DeleteExpense(ctx context.Context, expenseID, requestedBy uuid.UUID, correlationID string) error
}

// ActivityService defines the interface for the group activity feed
type ActivityService interface {
	// GetGroupActivity retrieves paginated activity entries for a group.
	// The requester must be a member; outsiders get ErrNotMember.
	// Returns entries, total count, and any error
	GetGroupActivity(ctx context.Context, groupID, requestedBy uuid.UUID, page, perPage int) ([]*activity.Entry, int64, error)
}
