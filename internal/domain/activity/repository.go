package activity

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages activity entry persistence with pagination support
type Repository interface {
	// Record stores an entry, replaying the same event ID is a no-op
	Record(ctx context.Context, entry *Entry) error
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*Entry, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*Entry, error)
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error)
}

// ErrEntryNotFound indicates missing activity entry
type ErrEntryNotFound struct {
	EventID uuid.UUID
}

func (e ErrEntryNotFound) Error() string {
	return "activity entry not found: " + e.EventID.String()
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.EventID == uuid.Nil {
		return true
	}
	return e.EventID == t.EventID
}
