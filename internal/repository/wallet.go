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

const walletsCollection = "wallets"

type mongoWalletRepository struct {
	coll *mongo.Collection
}

func NewMongoWalletRepository(db *mongo.Database) *mongoWalletRepository {
	return &mongoWalletRepository{coll: db.Collection(walletsCollection)}
}

func (r *mongoWalletRepository) Create(ctx context.Context, entry *domain.WalletEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	log.WithFields(log.Fields{
		"wallet_id": entry.ID,
		"name":      entry.Name,
	}).Info("Creating wallet entry")

	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		log.WithError(err).WithField("wallet_id", entry.ID).Error("Failed to create wallet entry")
		return fmt.Errorf("failed to create wallet entry: %w", err)
	}
	return nil
}

func (r *mongoWalletRepository) GetByID(ctx context.Context, id string) (*domain.WalletEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entry domain.WalletEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWalletNotFound
		}
		log.WithError(err).WithField("wallet_id", id).Error("Failed to get wallet entry")
		return nil, fmt.Errorf("failed to get wallet entry: %w", err)
	}
	return &entry, nil
}

func (r *mongoWalletRepository) List(ctx context.Context) ([]domain.WalletEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.WithError(err).Error("Failed to list wallet entries")
		return nil, fmt.Errorf("failed to list wallet entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.WalletEntry
	if err := cur.All(ctx, &entries); err != nil {
		log.WithError(err).Error("Failed to decode wallet entries")
		return nil, fmt.Errorf("failed to decode wallet entries: %w", err)
	}
	return entries, nil
}

func (r *mongoWalletRepository) Update(ctx context.Context, id string, req domain.UpdateWalletEntryRequest) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Username != nil {
		set["username"] = *req.Username
	}
	if req.Secret != nil {
		set["secret"] = *req.Secret
	}
	if req.Domain != nil {
		set["domain"] = *req.Domain
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		log.WithError(err).WithField("wallet_id", id).Error("Failed to update wallet entry")
		return fmt.Errorf("failed to update wallet entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrWalletNotFound
	}

	log.WithField("wallet_id", id).Info("Wallet entry successfully updated")
	return nil
}

func (r *mongoWalletRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.WithError(err).WithField("wallet_id", id).Error("Failed to delete wallet entry")
		return fmt.Errorf("failed to delete wallet entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrWalletNotFound
	}

	log.WithField("wallet_id", id).Info("Wallet entry successfully deleted")
	return nil
}
