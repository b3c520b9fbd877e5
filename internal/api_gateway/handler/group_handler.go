package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/splitshare-service/internal/api_gateway/middleware"
	"github.com/splitshare-service/internal/api_gateway/service"
	"github.com/splitshare-service/internal/domain/group"
	"github.com/splitshare-service/internal/domain/user"
)

// GroupHandler handles HTTP requests for group and membership operations
type GroupHandler struct {
	groupService service.GroupService
	userService  service.UserService
	logger       *slog.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(logger *slog.Logger, groupService service.GroupService, userService service.UserService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		userService:  userService,
		logger:       logger,
	}
}

// Create handles creation of a new group with the caller as its creator
func (h *GroupHandler) Create(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	g, err := h.groupService.CreateGroup(c.Request.Context(), req.Name, req.Description, callerID)
	if err != nil {
		if errors.Is(err, group.ErrEmptyName) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create group", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapGroupToResponse(g))
}

// GetByID retrieves a group with its member set, returning 404 if not found
// and 403 if the caller is not a member
func (h *GroupHandler) GetByID(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid group ID")
		return
	}

	g, err := h.groupService.GetGroupByID(c.Request.Context(), groupID, callerID)
	if err != nil {
		h.respondGroupError(c, err)
		return
	}

	RespondOK(c, mapGroupToResponse(g))
}

// ListMine retrieves every group the caller belongs to
func (h *GroupHandler) ListMine(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	groups, err := h.groupService.GetUserGroups(c.Request.Context(), callerID)
	if err != nil {
		h.logger.Error("Failed to list groups", "user_id", callerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	response := GroupListResponse{Groups: make([]GroupResponse, 0, len(groups))}
	for _, g := range groups {
		response.Groups = append(response.Groups, mapGroupToResponse(g))
	}
	RespondOK(c, response)
}

// ListMembers retrieves the member profiles of a group
func (h *GroupHandler) ListMembers(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid group ID")
		return
	}

	g, err := h.groupService.GetGroupByID(c.Request.Context(), groupID, callerID)
	if err != nil {
		h.respondGroupError(c, err)
		return
	}

	members := make([]UserResponse, 0, len(g.MemberIDs))
	for _, memberID := range g.MemberIDs {
		u, err := h.userService.GetUserByID(c.Request.Context(), memberID)
		if err != nil {
			h.logger.Error("Failed to resolve group member", "group_id", groupID.String(), "user_id", memberID.String(), "error", err)
			RespondInternalError(c)
			return
		}
		members = append(members, mapUserToResponse(u))
	}

	RespondOK(c, members)
}

// AddMember adds a user to the group on behalf of the caller
func (h *GroupHandler) AddMember(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid group ID")
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	if err := h.groupService.AddMember(c.Request.Context(), groupID, userID, callerID); err != nil {
		var alreadyErr group.ErrAlreadyMember
		if errors.As(err, &alreadyErr) {
			RespondConflict(c, "User is already a member of this group")
			return
		}
		h.respondGroupError(c, err)
		return
	}

	RespondNoContent(c)
}

// RemoveMember removes a user from the group on behalf of the caller
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid group ID")
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		RespondBadRequest(c, "Invalid user ID")
		return
	}

	if err := h.groupService.RemoveMember(c.Request.Context(), groupID, userID, callerID); err != nil {
		h.respondGroupError(c, err)
		return
	}

	RespondNoContent(c)
}

// Delete deletes a group, allowed only for its creator
func (h *GroupHandler) Delete(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid group ID")
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), groupID, callerID); err != nil {
		var notCreatorErr group.ErrNotCreator
		if errors.As(err, &notCreatorErr) {
			RespondForbidden(c, "Only the group creator can delete the group")
			return
		}
		h.respondGroupError(c, err)
		return
	}

	RespondNoContent(c)
}

// respondGroupError maps shared group/user errors onto HTTP responses
func (h *GroupHandler) respondGroupError(c *gin.Context, err error) {
	var (
		groupNotFoundErr group.ErrGroupNotFound
		userNotFoundErr  user.ErrUserNotFound
		notMemberErr     group.ErrNotMember
	)
	switch {
	case errors.As(err, &groupNotFoundErr):
		RespondNotFound(c, "Group not found")
	case errors.As(err, &userNotFoundErr):
		RespondNotFound(c, "User not found")
	case errors.As(err, &notMemberErr):
		RespondForbidden(c, "You are not a member of this group")
	default:
		h.logger.Error("Group operation failed", "error", err)
		RespondInternalError(c)
	}
}

// mapGroupToResponse maps a group entity to a group response DTO
func mapGroupToResponse(g *group.Group) GroupResponse {
	memberIDs := make([]string, 0, len(g.MemberIDs))
	for _, id := range g.MemberIDs {
		memberIDs = append(memberIDs, id.String())
	}

	return GroupResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Description: g.Description,
		CreatedByID: g.CreatedByID.String(),
		MemberIDs:   memberIDs,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
}
