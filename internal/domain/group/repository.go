package group

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines group persistence operations. GetByID loads the group
// together with its member set.
type Repository interface {
	Create(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id uuid.UUID) (*Group, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*Group, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrGroupNotFound indicates a missing group
type ErrGroupNotFound struct {
	GroupID uuid.UUID
}

func (e ErrGroupNotFound) Error() string {
	return "group not found: " + e.GroupID.String()
}

// ErrAlreadyMember indicates the user already belongs to the group
type ErrAlreadyMember struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

func (e ErrAlreadyMember) Error() string {
	return "user " + e.UserID.String() + " is already a member of group " + e.GroupID.String()
}

// ErrNotCreator indicates the user did not create the group and may not
// perform creator-only operations on it
type ErrNotCreator struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

func (e ErrNotCreator) Error() string {
	return "user " + e.UserID.String() + " is not the creator of group " + e.GroupID.String()
}

// ErrNotMember indicates the user does not belong to the group
type ErrNotMember struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

func (e ErrNotMember) Error() string {
	return "user " + e.UserID.String() + " is not a member of group " + e.GroupID.String()
}
