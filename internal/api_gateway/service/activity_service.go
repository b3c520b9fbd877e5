package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/splitshare-service/internal/domain/activity"
	"github.com/splitshare-service/internal/domain/group"
)

// ActivityServiceImpl implements the ActivityService interface
type ActivityServiceImpl struct {
	activityRepo activity.Repository
	groupRepo    group.Repository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo activity.Repository, groupRepo group.Repository) ActivityService {
	return &ActivityServiceImpl{
		activityRepo: activityRepo,
		groupRepo:    groupRepo,
	}
}

// GetGroupActivity retrieves paginated activity entries for a group. The
// requester must be a member of the group.
// Returns entries, total count, and any error
func (s *ActivityServiceImpl) GetGroupActivity(ctx context.Context, groupID, requestedBy uuid.UUID, page, perPage int) ([]*activity.Entry, int64, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}
	if !g.HasMember(requestedBy) {
		return nil, 0, group.ErrNotMember{GroupID: groupID, UserID: requestedBy}
	}

	offset := (page - 1) * perPage

	entries, err := s.activityRepo.ListByGroup(ctx, groupID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.activityRepo.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
