package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/splitshare-service/internal/domain/activity"
)

// ErrInvalidEvent marks an event that can never be recorded, regardless of
// retries. Callers should acknowledge the message instead of redelivering it.
var ErrInvalidEvent = errors.New("activity event is invalid")

type RecordingServiceImpl struct {
	activityRepo activity.Repository
	logger       *slog.Logger
}

func NewRecordingService(activityRepo activity.Repository, logger *slog.Logger) RecordingService {
	return &RecordingServiceImpl{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// RecordEvent validates a consumed event and records it in the activity
// store. Recording is idempotent on the event ID, so redelivered events
// leave the stored entry untouched.
func (s *RecordingServiceImpl) RecordEvent(ctx context.Context, event *activity.Event) error {
	logger := s.logger
	if event.CorrelationID != "" {
		logger = s.logger.With("correlation_id", event.CorrelationID)
	}

	if err := validateEvent(event); err != nil {
		logger.Error("Discarding invalid activity event", "event_id", event.EventID.String(), "error", err)
		return err
	}

	entry := activity.EntryFromEvent(event)
	if err := s.activityRepo.Record(ctx, entry); err != nil {
		logger.Error("Failed to record activity entry",
			"event_id", event.EventID.String(),
			"group_id", event.GroupID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to record activity entry %s: %w", event.EventID.String(), err)
	}

	logger.Info("Recorded activity entry",
		"event_id", event.EventID.String(),
		"type", string(event.Type),
		"group_id", event.GroupID.String(),
	)
	return nil
}

func validateEvent(event *activity.Event) error {
	if event.EventID == uuid.Nil {
		return fmt.Errorf("%w: missing event ID", ErrInvalidEvent)
	}
	if event.GroupID == uuid.Nil {
		return fmt.Errorf("%w: missing group ID", ErrInvalidEvent)
	}
	switch event.Type {
	case activity.EventExpenseCreated, activity.EventShareSettled, activity.EventExpenseDeleted:
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, event.Type)
	}
	return nil
}
