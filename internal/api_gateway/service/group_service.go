package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/splitshare-service/internal/domain/group"
	"github.com/splitshare-service/internal/domain/user"
)

// GroupServiceImpl implements the GroupService interface
type GroupServiceImpl struct {
	groupRepo group.Repository
	userRepo  user.Repository
}

// NewGroupService creates a new group service
func NewGroupService(groupRepo group.Repository, userRepo user.Repository) GroupService {
	return &GroupServiceImpl{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroup creates a group with the creator as its first member
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, name, description string, createdBy uuid.UUID) (*group.Group, error) {
	g, err := group.NewGroup(name, description, createdBy)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Create(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// GetGroupByID retrieves a group with its member set, rejecting outsiders
func (s *GroupServiceImpl) GetGroupByID(ctx context.Context, id, requestedBy uuid.UUID) (*group.Group, error) {
	g, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !g.HasMember(requestedBy) {
		return nil, group.ErrNotMember{GroupID: id, UserID: requestedBy}
	}

	return g, nil
}

// GetUserGroups retrieves every group the user belongs to
func (s *GroupServiceImpl) GetUserGroups(ctx context.Context, userID uuid.UUID) ([]*group.Group, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}

// AddMember adds an existing user to the group on behalf of a current member
func (s *GroupServiceImpl) AddMember(ctx context.Context, groupID, userID, requestedBy uuid.UUID) error {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !g.HasMember(requestedBy) {
		return group.ErrNotMember{GroupID: groupID, UserID: requestedBy}
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	return s.groupRepo.AddMember(ctx, groupID, userID)
}

// RemoveMember removes a user from the group on behalf of a current member
func (s *GroupServiceImpl) RemoveMember(ctx context.Context, groupID, userID, requestedBy uuid.UUID) error {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !g.HasMember(requestedBy) {
		return group.ErrNotMember{GroupID: groupID, UserID: requestedBy}
	}

	return s.groupRepo.RemoveMember(ctx, groupID, userID)
}

// DeleteGroup deletes a group. Only the creator may delete it.
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, groupID, requestedBy uuid.UUID) error {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g.CreatedByID != requestedBy {
		return group.ErrNotCreator{GroupID: groupID, UserID: requestedBy}
	}

	return s.groupRepo.Delete(ctx, groupID)
}
