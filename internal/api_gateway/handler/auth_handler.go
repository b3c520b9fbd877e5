package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/splitshare-service/internal/api_gateway/service"
	"github.com/splitshare-service/internal/auth"
	"github.com/splitshare-service/internal/domain/user"
)

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, userService service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register handles creation of a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, token, err := h.userService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var dupErr user.ErrDuplicateEmail
		switch {
		case errors.As(err, &dupErr):
			h.logger.Warn("Attempt to register with duplicate email", "email", dupErr.Email)
			RespondConflict(c, "User with this email already exists")
		case errors.Is(err, auth.ErrWeakPassword):
			RespondBadRequest(c, auth.ErrWeakPassword.Error())
		case errors.Is(err, user.ErrEmptyName), errors.Is(err, user.ErrInvalidEmail):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to register user", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, AuthResponse{User: mapUserToResponse(u), Token: token})
}

// Login verifies credentials and returns a signed token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	u, token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			RespondUnauthorized(c, auth.ErrInvalidCredentials.Error())
			return
		}
		h.logger.Error("Failed to log user in", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, AuthResponse{User: mapUserToResponse(u), Token: token})
}

// mapUserToResponse maps a user entity to a user response DTO
func mapUserToResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
