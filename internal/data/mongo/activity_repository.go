package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/splitshare-service/internal/domain/activity"
)

const (
	// ActivityCollectionName is the name of the activity collection in MongoDB
	ActivityCollectionName = "activity_entries"
)

// ActivityRepository implements the activity.Repository interface for MongoDB
type ActivityRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewActivityRepository creates a new MongoDB activity repository
func NewActivityRepository(logger *slog.Logger, db *mongo.Database) activity.Repository {
	return &ActivityRepository{
		db:     db,
		logger: logger,
	}
}

// Record stores an activity entry keyed by its event ID. Consuming the same
// event twice leaves the first document untouched, which makes redelivered
// Kafka messages safe to replay.
func (r *ActivityRepository) Record(ctx context.Context, entry *activity.Entry) error {
	collection := r.db.Collection(ActivityCollectionName)

	filter := bson.M{"event_id": entry.EventID}
	update := bson.M{"$setOnInsert": entry}
	opts := options.Update().SetUpsert(true)

	_, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		r.logger.Error("Failed to record activity entry",
			"event_id", entry.EventID.String(),
			"error", err)
		return fmt.Errorf("failed to record activity entry: %w", err)
	}

	return nil
}

// GetByEventID retrieves an activity entry by its event ID.
// Returns ErrEntryNotFound if no entry exists for the given event.
func (r *ActivityRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*activity.Entry, error) {
	collection := r.db.Collection(ActivityCollectionName)

	filter := bson.M{"event_id": eventID}
	var entry activity.Entry
	err := collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, activity.ErrEntryNotFound{EventID: eventID}
		}
		r.logger.Error("Failed to get activity entry",
			"event_id", eventID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get activity entry: %w", err)
	}

	return &entry, nil
}

// ListByGroup retrieves paginated activity entries for a group.
// Results are sorted by occurrence time in descending order (newest first).
func (r *ActivityRepository) ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*activity.Entry, error) {
	collection := r.db.Collection(ActivityCollectionName)

	filter := bson.M{"group_id": groupID}
	opts := options.Find().
		SetSort(bson.M{"occurred_at": -1}). // Sort by occurred_at in descending order
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list activity entries",
			"group_id", groupID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list activity entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*activity.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		r.logger.Error("Failed to decode activity entries",
			"group_id", groupID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode activity entries: %w", err)
	}

	return entries, nil
}

// CountByGroup counts the total number of activity entries for a group
func (r *ActivityRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	collection := r.db.Collection(ActivityCollectionName)

	filter := bson.M{"group_id": groupID}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count activity entries",
			"group_id", groupID.String(),
			"error", err)
		return 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	return count, nil
}
