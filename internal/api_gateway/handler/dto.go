package handler

import "github.com/shopspring/decimal"

// RegisterRequest represents a request to create a new user
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the authenticated user together with a signed token
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// CreateGroupRequest represents a request to create a new group
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// GroupResponse represents a group in API responses
type GroupResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	CreatedByID string   `json:"created_by_id"`
	MemberIDs   []string `json:"member_ids"`
	CreatedAt   string   `json:"created_at"`
}

// GroupListResponse represents a list of groups in API responses
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// ShareRequest represents one participant entry in an expense request.
// Amount is required for UNEQUAL splits, Percentage for PERCENTAGE splits;
// EQUAL splits need only the user ID.
type ShareRequest struct {
	UserID     string           `json:"userId" binding:"required,uuid"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// CreateExpenseRequest represents a request to create a new expense.
// The payer is the authenticated caller; the group comes from the path.
type CreateExpenseRequest struct {
	Description      string          `json:"description" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	SplitKind        string          `json:"splitKind" binding:"required"`
	PercentageFormat string          `json:"percentageFormat,omitempty"`
	Shares           []ShareRequest  `json:"shares" binding:"required"`
}

// ShareResponse represents an expense share in API responses
type ShareResponse struct {
	ID          string          `json:"id"`
	ExpenseID   string          `json:"expenseId"`
	UserID      string          `json:"userId"`
	ShareAmount decimal.Decimal `json:"shareAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
	Settled     bool            `json:"settled"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SplitKind   string          `json:"splitKind"`
	GroupID     string          `json:"groupId"`
	PaidByID    string          `json:"paidById"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"createdAt"`
	Shares      []ShareResponse `json:"shares"`
}

// ExpenseListResponse represents a list of expenses in API responses
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ShareListResponse represents a list of shares in API responses
type ShareListResponse struct {
	Shares []ShareResponse `json:"shares"`
}

// ActivityEntryResponse represents one activity feed entry in API responses
type ActivityEntryResponse struct {
	EventID     string `json:"event_id"`
	Type        string `json:"type"`
	GroupID     string `json:"group_id"`
	ExpenseID   string `json:"expense_id"`
	ActorID     string `json:"actor_id"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
	OccurredAt  string `json:"occurred_at"`
}

// ActivityListResponse represents the activity feed in API responses
type ActivityListResponse struct {
	Entries []ActivityEntryResponse `json:"entries"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
