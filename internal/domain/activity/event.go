package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType defines the group activity event kinds
type EventType string

const (
	EventExpenseCreated EventType = "expense.created"
	EventShareSettled   EventType = "share.settled"
	EventExpenseDeleted EventType = "expense.deleted"
)

// Event defines a Kafka message describing a group activity
type Event struct {
	EventID       uuid.UUID       `json:"event_id"`
	Type          EventType       `json:"type"`
	GroupID       uuid.UUID       `json:"group_id"`
	ExpenseID     uuid.UUID       `json:"expense_id"`
	ActorID       uuid.UUID       `json:"actor_id"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
