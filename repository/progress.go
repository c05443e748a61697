package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProgressRepo stores one UserProgress document per user. Every Save is a
// compare-and-swap on the document's version field; a lost race surfaces as
// model.ErrConflict and the caller re-runs its read-modify-write.
type ProgressRepo struct {
	MongoCollection *mongo.Collection
	Cache           *services.ProgressCache // optional
}

func GetProgressRepo(client *mongo.Client) *ProgressRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("PROGRESS_COLLECTION")
	if collectionName == "" {
		collectionName = "progress"
	}
	return &ProgressRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Get returns the user's aggregate, trying the cache first.
func (r *ProgressRepo) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required: %w", model.ErrValidation)
	}

	if r.Cache != nil {
		if cached, err := r.Cache.Get(ctx, userID); err == nil && cached != nil {
			return cached, nil
		}
	}

	var progress model.UserProgress
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&progress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("progress for user %s: %w", userID, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		_ = r.Cache.Set(ctx, &progress)
	}
	return &progress, nil
}

// Create inserts a fresh aggregate with version 1. A concurrent first-write
// for the same user surfaces as model.ErrConflict.
func (r *ProgressRepo) Create(ctx context.Context, progress *model.UserProgress) error {
	if progress.UserID == "" {
		return fmt.Errorf("user ID is required: %w", model.ErrValidation)
	}

	progress.Version = 1
	now := time.Now()
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = now
	}
	progress.UpdatedAt = now

	_, err := r.MongoCollection.InsertOne(ctx, progress)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("progress for user %s already exists: %w", progress.UserID, model.ErrConflict)
	}
	return err
}

// Save replaces the document only if the stored version still matches the
// version the caller read. On success the in-memory version is bumped and
// the cache refreshed; on a lost race the version is left untouched so the
// caller can retry from a fresh Get.
func (r *ProgressRepo) Save(ctx context.Context, progress *model.UserProgress) error {
	if progress.UserID == "" {
		return fmt.Errorf("user ID is required: %w", model.ErrValidation)
	}

	readVersion := progress.Version
	progress.Version = readVersion + 1
	progress.UpdatedAt = time.Now()

	filter := bson.M{"_id": progress.UserID, "version": readVersion}

	if r.Cache != nil {
		// Drop the cached snapshot before the write so a concurrent
		// reader cannot re-populate it with the about-to-be-stale copy.
		_ = r.Cache.Invalidate(ctx, progress.UserID)
	}

	result, err := r.MongoCollection.ReplaceOne(ctx, filter, progress)
	if err != nil {
		progress.Version = readVersion
		return err
	}
	if result.MatchedCount == 0 {
		progress.Version = readVersion
		utils.IncrementCASConflicts()
		return fmt.Errorf("progress for user %s was modified concurrently: %w", progress.UserID, model.ErrConflict)
	}

	if r.Cache != nil {
		_ = r.Cache.Set(ctx, progress)
	}
	return nil
}

// Delete removes the aggregate; used on account deletion only.
func (r *ProgressRepo) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required: %w", model.ErrValidation)
	}
	if r.Cache != nil {
		_ = r.Cache.Invalidate(ctx, userID)
	}
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("progress for user %s: %w", userID, model.ErrNotFound)
	}
	return nil
}
