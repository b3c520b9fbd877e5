package service

import (
	"context"

	"github.com/splitshare-service/internal/domain/activity"
)

// RecordingService defines the interface for recording consumed activity events.
type RecordingService interface {
	RecordEvent(ctx context.Context, event *activity.Event) error
}
