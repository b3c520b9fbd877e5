package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/splitshare-service/internal/api_gateway/middleware"
	"github.com/splitshare-service/internal/api_gateway/service"
	"github.com/splitshare-service/internal/domain/activity"
	"github.com/splitshare-service/internal/domain/group"
)

// ActivityHandler handles HTTP requests for the group activity feed
type ActivityHandler struct {
	activityService service.ActivityService
	logger          *slog.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(logger *slog.Logger, activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// GetGroupActivity retrieves the recorded activity of a group, newest first.
// The caller must be a member of the group.
func (h *ActivityHandler) GetGroupActivity(c *gin.Context) {
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

	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	entries, total, err := h.activityService.GetGroupActivity(c.Request.Context(), groupID, callerID, params.Page, params.PerPage)
	if err != nil {
		var notFoundErr group.ErrGroupNotFound
		var notMemberErr group.ErrNotMember
		switch {
		case errors.As(err, &notFoundErr):
			RespondNotFound(c, "Group not found")
		case errors.As(err, &notMemberErr):
			RespondForbidden(c, "You are not a member of this group")
		default:
			h.logger.Error("Failed to retrieve group activity", "group_id", groupID.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	response := ActivityListResponse{Entries: make([]ActivityEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		response.Entries = append(response.Entries, mapEntryToResponse(entry))
	}

	RespondWithPaginatedData(c, http.StatusOK, response, params.Page, params.PerPage, int(total))
}

// mapEntryToResponse maps an activity entry to its response DTO
func mapEntryToResponse(entry *activity.Entry) ActivityEntryResponse {
	return ActivityEntryResponse{
		EventID:     entry.EventID.String(),
		Type:        string(entry.Type),
		GroupID:     entry.GroupID.String(),
		ExpenseID:   entry.ExpenseID.String(),
		ActorID:     entry.ActorID.String(),
		Description: entry.Description,
		Amount:      entry.Amount,
		OccurredAt:  entry.OccurredAt.Format(time.RFC3339),
	}
}
