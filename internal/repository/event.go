package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dashboard-service/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const eventsCollection = "history_events"

type mongoEventRepository struct {
	coll *mongo.Collection
}

func NewMongoEventRepository(db *mongo.Database) *mongoEventRepository {
	return &mongoEventRepository{coll: db.Collection(eventsCollection)}
}

// EnsureIndexes creates the query and TTL indexes. The TTL index
// (expireAfterSeconds=0 on expires_at) makes Mongo purge expired documents
// within its sweep interval (~60s); visibility is additionally guarded at
// query time, so an expired event is never returned even before the sweep.
func (r *mongoEventRepository) EnsureIndexes(ctx context.Context) error {
	zero := int32(0)
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: &options.IndexOptions{ExpireAfterSeconds: &zero}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "related_workflow_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create history indexes: %w", err)
	}
	return nil
}

func (r *mongoEventRepository) Create(ctx context.Context, event *domain.HistoryEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	log.WithFields(log.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"user_id":    event.UserID,
	}).Info("Appending history event")

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEventExists
		}
		log.WithError(err).WithField("event_id", event.ID).Error("Failed to append history event")
		return fmt.Errorf("failed to append history event: %w", err)
	}
	return nil
}

func (r *mongoEventRepository) GetByID(ctx context.Context, id string) (*domain.HistoryEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var event domain.HistoryEvent
	query := bson.M{"_id": id, "expires_at": bson.M{"$gt": time.Now().UTC()}}
	if err := r.coll.FindOne(ctx, query).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		log.WithError(err).WithField("event_id", id).Error("Failed to get history event")
		return nil, fmt.Errorf("failed to get history event: %w", err)
	}
	return &event, nil
}

func (r *mongoEventRepository) Find(ctx context.Context, filter domain.EventFilter) ([]domain.HistoryEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{"expires_at": bson.M{"$gt": time.Now().UTC()}}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Severity != "" {
		query["severity"] = filter.Severity
	}
	if filter.RelatedWorkflowID != "" {
		query["related_workflow_id"] = filter.RelatedWorkflowID
	}
	if filter.RelatedTaskID != "" {
		query["related_task_id"] = filter.RelatedTaskID
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$in": filter.Tags}
	}
	if filter.Start != nil || filter.End != nil {
		ts := bson.M{}
		if filter.Start != nil {
			ts["$gte"] = *filter.Start
		}
		if filter.End != nil {
			ts["$lte"] = *filter.End
		}
		query["timestamp"] = ts
	}

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		log.WithError(err).Error("Failed to query history events")
		return nil, fmt.Errorf("failed to query history events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.HistoryEvent
	if err := cur.All(ctx, &events); err != nil {
		log.WithError(err).Error("Failed to decode history events")
		return nil, fmt.Errorf("failed to decode history events: %w", err)
	}
	return events, nil
}
