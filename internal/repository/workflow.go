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

const workflowsCollection = "workflows"

type mongoWorkflowRepository struct {
	coll *mongo.Collection
}

func NewMongoWorkflowRepository(db *mongo.Database) *mongoWorkflowRepository {
	return &mongoWorkflowRepository{coll: db.Collection(workflowsCollection)}
}

func (r *mongoWorkflowRepository) Create(ctx context.Context, wf *domain.Workflow) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	log.WithFields(log.Fields{
		"workflow_id": wf.ID,
		"name":        wf.Name,
	}).Info("Creating workflow")

	if _, err := r.coll.InsertOne(ctx, wf); err != nil {
		log.WithError(err).WithField("workflow_id", wf.ID).Error("Failed to create workflow")
		return fmt.Errorf("failed to create workflow: %w", err)
	}
	return nil
}

func (r *mongoWorkflowRepository) GetByID(ctx context.Context, id string) (*domain.Workflow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wf domain.Workflow
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&wf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkflowNotFound
		}
		log.WithError(err).WithField("workflow_id", id).Error("Failed to get workflow")
		return nil, fmt.Errorf("failed to get workflow: %w", err)
	}
	return &wf, nil
}

func (r *mongoWorkflowRepository) List(ctx context.Context) ([]domain.Workflow, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.WithError(err).Error("Failed to list workflows")
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer cur.Close(ctx)

	var workflows []domain.Workflow
	if err := cur.All(ctx, &workflows); err != nil {
		log.WithError(err).Error("Failed to decode workflows")
		return nil, fmt.Errorf("failed to decode workflows: %w", err)
	}
	return workflows, nil
}

func (r *mongoWorkflowRepository) Update(ctx context.Context, id string, req domain.UpdateWorkflowRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Build the update set from provided fields only.
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.TaskPrompt != nil {
		set["task_prompt"] = *req.TaskPrompt
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		log.WithError(err).WithField("workflow_id", id).Error("Failed to update workflow")
		return fmt.Errorf("failed to update workflow: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrWorkflowNotFound
	}

	log.WithField("workflow_id", id).Info("Workflow successfully updated")
	return nil
}

func (r *mongoWorkflowRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.WithError(err).WithField("workflow_id", id).Error("Failed to delete workflow")
		return fmt.Errorf("failed to delete workflow: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrWorkflowNotFound
	}

	log.WithField("workflow_id", id).Info("Workflow successfully deleted")
	return nil
}
