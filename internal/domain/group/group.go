package group

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyName = errors.New("group name cannot be empty")
)

// Group is a set of users who share expenses. The member set is the
// authoritative participant set for every expense created in the group.
type Group struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedByID uuid.UUID   `json:"created_by_id"`
	MemberIDs   []uuid.UUID `json:"member_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewGroup creates a group with its creator as the first member.
func NewGroup(name, description string, createdBy uuid.UUID) (*Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	return &Group{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedByID: createdBy,
		MemberIDs:   []uuid.UUID{createdBy},
		CreatedAt:   time.Now(),
	}, nil
}

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(userID uuid.UUID) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
