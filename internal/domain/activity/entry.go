package activity

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents a recorded activity document in the group feed
type Entry struct {
	EventID       uuid.UUID `json:"event_id" bson:"event_id"`
	Type          EventType `json:"type" bson:"type"`
	GroupID       uuid.UUID `json:"group_id" bson:"group_id"`
	ExpenseID     uuid.UUID `json:"expense_id" bson:"expense_id"`
	ActorID       uuid.UUID `json:"actor_id" bson:"actor_id"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Amount        string    `json:"amount" bson:"amount"` // Decimal rendered as string for storage
	CorrelationID string    `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at" bson:"occurred_at"`
	RecordedAt    time.Time `json:"recorded_at" bson:"recorded_at"`
}

// EntryFromEvent builds the stored document for a consumed event
func EntryFromEvent(ev *Event) *Entry {
	return &Entry{
		EventID:       ev.EventID,
		Type:          ev.Type,
		GroupID:       ev.GroupID,
		ExpenseID:     ev.ExpenseID,
		ActorID:       ev.ActorID,
		Description:   ev.Description,
		Amount:        ev.Amount.StringFixed(2),
		CorrelationID: ev.CorrelationID,
		OccurredAt:    ev.OccurredAt,
		RecordedAt:    time.Now().UTC(),
	}
}
