package handler

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/splitshare-service/internal/api_gateway/middleware"
	"github.com/splitshare-service/internal/api_gateway/service"
	"github.com/splitshare-service/internal/domain/activity"
	"github.com/splitshare-service/internal/domain/expense"
	"github.com/splitshare-service/internal/domain/group"
	"github.com/splitshare-service/internal/domain/user"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

// setupAuthedRouter injects callerID the way the auth middleware would
func setupAuthedRouter(callerID uuid.UUID) *gin.Engine {
	r := setupTestRouter()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, callerID)
		c.Next()
	})
	return r
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*user.User, string, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*user.User), args.String(1), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*user.User), args.String(1), args.Error(2)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, name, description string, createdBy uuid.UUID) (*group.Group, error) {
	args := m.Called(ctx, name, description, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Group), args.Error(1)
}

func (m *MockGroupService) GetGroupByID(ctx context.Context, id, requestedBy uuid.UUID) (*group.Group, error) {
	args := m.Called(ctx, id, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Group), args.Error(1)
}

func (m *MockGroupService) GetUserGroups(ctx context.Context, userID uuid.UUID) ([]*group.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*group.Group), args.Error(1)
}

func (m *MockGroupService) AddMember(ctx context.Context, groupID, userID, requestedBy uuid.UUID) error {
	args := m.Called(ctx, groupID, userID, requestedBy)
	return args.Error(0)
}

func (m *MockGroupService) RemoveMember(ctx context.Context, groupID, userID, requestedBy uuid.UUID) error {
	args := m.Called(ctx, groupID, userID, requestedBy)
	return args.Error(0)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, groupID, requestedBy uuid.UUID) error {
	args := m.Called(ctx, groupID, requestedBy)
	return args.Error(0)
}

type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, in *service.CreateExpenseInput) (*expense.Expense, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpenseByID(ctx context.Context, id, requestedBy uuid.UUID) (*expense.Expense, error) {
	args := m.Called(ctx, id, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Expense), args.Error(1)
}

func (m *MockExpenseService) GetGroupExpenses(ctx context.Context, groupID, requestedBy uuid.UUID) ([]*expense.Expense, error) {
	args := m.Called(ctx, groupID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Expense), args.Error(1)
}

func (m *MockExpenseService) GetUserExpenses(ctx context.Context, userID uuid.UUID) ([]*expense.Expense, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Expense), args.Error(1)
}

func (m *MockExpenseService) GetUserShares(ctx context.Context, userID uuid.UUID) ([]*expense.Share, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Share), args.Error(1)
}

func (m *MockExpenseService) GetUserUnsettledShares(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]*expense.Share, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expense.Share), args.Error(1)
}

func (m *MockExpenseService) SettleShare(ctx context.Context, shareID, requestedBy uuid.UUID, correlationID string) (*expense.Share, error) {
	args := m.Called(ctx, shareID, requestedBy, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expense.Share), args.Error(1)
}

func (m *MockExpenseService) DeleteExpense(ctx context.Context, expenseID, requestedBy uuid.UUID, correlationID string) error {
	args := m.Called(ctx, expenseID, requestedBy, correlationID)
	return args.Error(0)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) GetGroupActivity(ctx context.Context, groupID, requestedBy uuid.UUID, page, perPage int) ([]*activity.Entry, int64, error) {
	args := m.Called(ctx, groupID, requestedBy, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*activity.Entry), args.Get(1).(int64), args.Error(2)
}

var (
	_ service.UserService     = (*MockUserService)(nil)
	_ service.GroupService    = (*MockGroupService)(nil)
	_ service.ExpenseService  = (*MockExpenseService)(nil)
	_ service.ActivityService = (*MockActivityService)(nil)
)
