package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/splitshare-service/internal/api_gateway/handler"
	"github.com/splitshare-service/internal/api_gateway/middleware"
	"github.com/splitshare-service/internal/auth"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	tokens *auth.TokenManager,
	authHandler *handler.AuthHandler,
	groupHandler *handler.GroupHandler,
	expenseHandler *handler.ExpenseHandler,
	activityHandler *handler.ActivityHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Registration and login are the only unauthenticated endpoints
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		protected := v1.Group("")
		protected.Use(middleware.Auth(tokens))
		{
			// Group and membership operations
			groups := protected.Group("/groups")
			{
				groups.POST("", groupHandler.Create)
				groups.GET("", groupHandler.ListMine)
				groups.GET("/:id", groupHandler.GetByID)
				groups.DELETE("/:id", groupHandler.Delete)
				groups.GET("/:id/members", groupHandler.ListMembers)
				groups.POST("/:id/members/:userId", groupHandler.AddMember)
				groups.DELETE("/:id/members/:userId", groupHandler.RemoveMember)
				groups.POST("/:id/expenses", expenseHandler.Create)
				groups.GET("/:id/expenses", expenseHandler.ListByGroup)
				groups.GET("/:id/activity", activityHandler.GetGroupActivity)
			}

			// Expense operations
			expenses := protected.Group("/expenses")
			{
				expenses.GET("/mine", expenseHandler.ListMine)
				expenses.GET("/:id", expenseHandler.GetByID)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			// Share and settlement operations
			shares := protected.Group("/shares")
			{
				shares.GET("/mine", expenseHandler.SharesMine)
				shares.GET("/unsettled", expenseHandler.SharesUnsettled)
				shares.POST("/:id/settle", expenseHandler.Settle)
			}
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
