package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/splitshare-service/internal/domain/activity"
)

// MockActivityRepository mocks the activity.Repository interface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Record(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockActivityRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*activity.Entry, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activity.Entry), args.Error(1)
}

func (m *MockActivityRepository) ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*activity.Entry, error) {
	args := m.Called(ctx, groupID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*activity.Entry), args.Error(1)
}

func (m *MockActivityRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

var _ activity.Repository = (*MockActivityRepository)(nil)

func validEvent() *activity.Event {
	return &activity.Event{
		EventID:       uuid.New(),
		Type:          activity.EventExpenseCreated,
		GroupID:       uuid.New(),
		ExpenseID:     uuid.New(),
		ActorID:       uuid.New(),
		Description:   "Dinner",
		Amount:        decimal.RequireFromString("100.00"),
		CorrelationID: "corr1",
		OccurredAt:    time.Now().UTC(),
	}
}

func TestRecordingService_RecordEvent(t *testing.T) {
	logger := slog.Default()

	t.Run("records valid event", func(t *testing.T) {
		mockRepo := &MockActivityRepository{}
		svc := NewRecordingService(mockRepo, logger)

		event := validEvent()
		mockRepo.On("Record", mock.Anything, mock.MatchedBy(func(entry *activity.Entry) bool {
			return entry.EventID == event.EventID &&
				entry.Type == event.Type &&
				entry.Amount == "100.00" &&
				!entry.RecordedAt.IsZero()
		})).Return(nil).Once()

		err := svc.RecordEvent(context.Background(), event)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects event without event ID", func(t *testing.T) {
		mockRepo := &MockActivityRepository{}
		svc := NewRecordingService(mockRepo, logger)

		event := validEvent()
		event.EventID = uuid.Nil

		err := svc.RecordEvent(context.Background(), event)
		assert.ErrorIs(t, err, ErrInvalidEvent)
		mockRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("rejects event without group ID", func(t *testing.T) {
		mockRepo := &MockActivityRepository{}
		svc := NewRecordingService(mockRepo, logger)

		event := validEvent()
		event.GroupID = uuid.Nil

		err := svc.RecordEvent(context.Background(), event)
		assert.ErrorIs(t, err, ErrInvalidEvent)
		mockRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown event type", func(t *testing.T) {
		mockRepo := &MockActivityRepository{}
		svc := NewRecordingService(mockRepo, logger)

		event := validEvent()
		event.Type = activity.EventType("expense.materialized")

		err := svc.RecordEvent(context.Background(), event)
		assert.ErrorIs(t, err, ErrInvalidEvent)
		mockRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		mockRepo := &MockActivityRepository{}
		svc := NewRecordingService(mockRepo, logger)

		event := validEvent()
		mockRepo.On("Record", mock.Anything, mock.Anything).Return(errors.New("mongo unavailable")).Once()

		err := svc.RecordEvent(context.Background(), event)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidEvent)
		mockRepo.AssertExpectations(t)
	})
}
