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
	"github.com/splitshare-service/internal/domain/expense"
	"github.com/splitshare-service/internal/domain/group"
	"github.com/splitshare-service/internal/domain/user"
	"github.com/splitshare-service/internal/splitter"
)

// ExpenseHandler handles HTTP requests for expenses, shares and settlement
type ExpenseHandler struct {
	expenseService service.ExpenseService
	logger         *slog.Logger
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(logger *slog.Logger, expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// Create handles creation of a new expense in a group. The caller is the
// payer; shares are validated and derived by the configured split policy.
func (h *ExpenseHandler) Create(c *gin.Context) {
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

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	in, err := h.buildCreateInput(groupID, callerID, &req)
	if err != nil {
		h.respondExpenseError(c, err)
		return
	}
	in.CorrelationID = middleware.GetCorrelationID(c)

	exp, err := h.expenseService.CreateExpense(c.Request.Context(), in)
	if err != nil {
		h.respondExpenseError(c, err)
		return
	}

	RespondCreated(c, mapExpenseToResponse(exp))
}

// GetByID retrieves a single expense with its shares
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid expense ID")
		return
	}

	exp, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID, callerID)
	if err != nil {
		h.respondExpenseError(c, err)
		return
	}

	RespondOK(c, mapExpenseToResponse(exp))
}

// ListByGroup retrieves the expenses of a group, newest first
func (h *ExpenseHandler) ListByGroup(c *gin.Context) {
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

	expenses, err := h.expenseService.GetGroupExpenses(c.Request.Context(), groupID, callerID)
	if err != nil {
		h.respondExpenseError(c, err)
		return
	}

	response := ExpenseListResponse{Expenses: make([]ExpenseResponse, 0, len(expenses))}
	for _, exp := range expenses {
		response.Expenses = append(response.Expenses, mapExpenseToResponse(exp))
	}
	RespondOK(c, response)
}

// ListMine retrieves the expenses paid by the caller
func (h *ExpenseHandler) ListMine(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	expenses, err := h.expenseService.GetUserExpenses(c.Request.Context(), callerID)
	if err != nil {
		h.logger.Error("Failed to list user expenses", "user_id", callerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	response := ExpenseListResponse{Expenses: make([]ExpenseResponse, 0, len(expenses))}
	for _, exp := range expenses {
		response.Expenses = append(response.Expenses, mapExpenseToResponse(exp))
	}
	RespondOK(c, response)
}

// Delete removes an expense and its shares
func (h *ExpenseHandler) Delete(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID, callerID, middleware.GetCorrelationID(c)); err != nil {
		h.respondExpenseError(c, err)
		return
	}

	RespondNoContent(c)
}

// SharesMine retrieves every share held by the caller
func (h *ExpenseHandler) SharesMine(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	shares, err := h.expenseService.GetUserShares(c.Request.Context(), callerID)
	if err != nil {
		h.logger.Error("Failed to list user shares", "user_id", callerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapSharesToResponse(shares))
}

// SharesUnsettled retrieves the caller's outstanding shares, optionally
// scoped to one group via the group_id query parameter
func (h *ExpenseHandler) SharesUnsettled(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var groupID *uuid.UUID
	if raw := c.Query("group_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondBadRequest(c, "Invalid group ID")
			return
		}
		groupID = &id
	}

	shares, err := h.expenseService.GetUserUnsettledShares(c.Request.Context(), callerID, groupID)
	if err != nil {
		h.logger.Error("Failed to list unsettled shares", "user_id", callerID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapSharesToResponse(shares))
}

// Settle marks a share as settled. Settling twice succeeds without change.
func (h *ExpenseHandler) Settle(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	shareID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid share ID")
		return
	}

	sh, err := h.expenseService.SettleShare(c.Request.Context(), shareID, callerID, middleware.GetCorrelationID(c))
	if err != nil {
		h.respondExpenseError(c, err)
		return
	}

	RespondOK(c, mapShareToResponse(sh))
}

// buildCreateInput converts the request DTO into the engine's input
func (h *ExpenseHandler) buildCreateInput(groupID, payerID uuid.UUID, req *CreateExpenseRequest) (*service.CreateExpenseInput, error) {
	kind, err := expense.ParseSplitKind(req.SplitKind)
	if err != nil {
		return nil, err
	}
	format, err := expense.ParsePercentageFormat(req.PercentageFormat)
	if err != nil {
		return nil, err
	}

	shares := make([]splitter.ShareInput, 0, len(req.Shares))
	for _, sh := range req.Shares {
		userID, err := uuid.Parse(sh.UserID)
		if err != nil {
			return nil, expense.NewDomainError(expense.ErrorInvalidInput, "shares", "invalid user ID: "+sh.UserID)
		}
		shares = append(shares, splitter.ShareInput{
			UserID:     userID,
			Amount:     sh.Amount,
			Percentage: sh.Percentage,
		})
	}

	return &service.CreateExpenseInput{
		GroupID:          groupID,
		PaidByID:         payerID,
		Description:      req.Description,
		Amount:           req.Amount,
		SplitKind:        kind,
		PercentageFormat: format,
		Shares:           shares,
	}, nil
}

// respondExpenseError maps engine errors onto HTTP responses. Split
// validation failures carry their domain code; membership rejections map
// to 403 since the caller is the outsider.
func (h *ExpenseHandler) respondExpenseError(c *gin.Context, err error) {
	var (
		domainErr          expense.DomainError
		expenseNotFoundErr expense.ErrExpenseNotFound
		shareNotFoundErr   expense.ErrShareNotFound
		groupNotFoundErr   group.ErrGroupNotFound
		userNotFoundErr    user.ErrUserNotFound
		notMemberErr       group.ErrNotMember
		notOwnerErr        expense.ErrNotShareOwner
	)
	switch {
	case errors.As(err, &domainErr):
		status := http.StatusBadRequest
		if domainErr.Code == expense.ErrorPayerNotGroupMember || domainErr.Code == expense.ErrorShareUserNotGroupMember {
			status = http.StatusForbidden
		}
		RespondWithError(c, status, string(domainErr.Code), domainErr.Message)
	case errors.As(err, &expenseNotFoundErr):
		RespondNotFound(c, "Expense not found")
	case errors.As(err, &shareNotFoundErr):
		RespondNotFound(c, "Share not found")
	case errors.As(err, &groupNotFoundErr):
		RespondNotFound(c, "Group not found")
	case errors.As(err, &userNotFoundErr):
		RespondNotFound(c, "User not found")
	case errors.As(err, &notMemberErr):
		RespondForbidden(c, "You are not a member of this group")
	case errors.As(err, &notOwnerErr):
		RespondForbidden(c, "Only the user who owes this share can settle it")
	default:
		h.logger.Error("Expense operation failed", "error", err)
		RespondInternalError(c)
	}
}

// mapExpenseToResponse maps an expense entity to an expense response DTO
func mapExpenseToResponse(exp *expense.Expense) ExpenseResponse {
	shares := make([]ShareResponse, 0, len(exp.Shares))
	for i := range exp.Shares {
		shares = append(shares, mapShareToResponse(&exp.Shares[i]))
	}

	return ExpenseResponse{
		ID:          exp.ID.String(),
		Description: exp.Description,
		Amount:      exp.Amount,
		SplitKind:   string(exp.SplitKind),
		GroupID:     exp.GroupID.String(),
		PaidByID:    exp.PaidByID.String(),
		Date:        exp.OccurredAt.Format(time.RFC3339),
		CreatedAt:   exp.CreatedAt.Format(time.RFC3339),
		Shares:      shares,
	}
}

// mapShareToResponse maps a share entity to a share response DTO
func mapShareToResponse(sh *expense.Share) ShareResponse {
	return ShareResponse{
		ID:          sh.ID.String(),
		ExpenseID:   sh.ExpenseID.String(),
		UserID:      sh.UserID.String(),
		ShareAmount: sh.ShareAmount,
		Percentage:  sh.Percentage,
		Settled:     sh.Settled,
	}
}

func mapSharesToResponse(shares []*expense.Share) ShareListResponse {
	response := ShareListResponse{Shares: make([]ShareResponse, 0, len(shares))}
	for _, sh := range shares {
		response.Shares = append(response.Shares, mapShareToResponse(sh))
	}
	return response
}
