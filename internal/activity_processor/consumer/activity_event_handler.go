package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/splitshare-service/internal/activity_processor/service"
	"github.com/splitshare-service/internal/domain/activity"
)

// ActivityEventHandler handles incoming activity event messages from Kafka
type ActivityEventHandler struct {
	recordingService service.RecordingService
	logger           *slog.Logger
}

// NewActivityEventHandler creates a new handler
func NewActivityEventHandler(logger *slog.Logger, recordingService service.RecordingService) *ActivityEventHandler {
	return &ActivityEventHandler{
		recordingService: recordingService,
		logger:           logger,
	}
}

// HandleMessage processes Kafka messages. Malformed or invalid messages are
// logged and acknowledged; they would fail identically on every redelivery.
func (h *ActivityEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event activity.Event
	if err := json.Unmarshal(value, &event); err != nil {
		h.logger.Error("Failed to unmarshal activity event from Kafka message",
			"error", err,
			"message_key", string(key),
		)
		return nil // Commit offset, the payload will never parse
	}

	// Add correlation ID to logger
	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Received activity event for recording",
		"event_id", event.EventID.String(),
		"type", string(event.Type),
		"group_id", event.GroupID.String(),
	)

	if err := h.recordingService.RecordEvent(ctx, &event); err != nil {
		if errors.Is(err, service.ErrInvalidEvent) {
			// Invalid events are not retryable, commit the offset
			return nil
		}
		logger.Error("Failed to record activity event",
			"event_id", event.EventID.String(),
			"error", err,
		)
		return fmt.Errorf("recording activity event %s failed: %w", event.EventID.String(), err)
	}

	logger.Info("Successfully recorded activity event", "event_id", event.EventID.String())
	return nil // Success, commit offset
}
