package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tasksCollection := db.Collection("tasks")
	templatesCollection := db.Collection("challenge_templates")

	taskIndexes := []mongo.IndexModel{
		// Duplicate-detector scans project titles, optionally per creator
		{
			Keys: bson.D{
				{Key: "created_by", Value: 1},
				{Key: "title", Value: 1},
			},
			Options: options.Index().
				SetName("task_creator_title"),
		},
		{
			Keys: bson.D{
				{Key: "type", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().
				SetName("task_type_status"),
		},
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().
				SetName("task_text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "description", Value: 5},
					{Key: "tags", Value: 3},
				}),
		},
	}

	templateIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "categories", Value: 1},
				{Key: "difficulty", Value: 1},
			},
			Options: options.Index().
				SetName("template_category_difficulty"),
		},
	}

	if _, err := tasksCollection.Indexes().CreateMany(ctx, taskIndexes); err != nil {
		return fmt.Errorf("failed to create task indexes: %w", err)
	}
	if _, err := templatesCollection.Indexes().CreateMany(ctx, templateIndexes); err != nil {
		return fmt.Errorf("failed to create challenge template indexes: %w", err)
	}

	// The progress collection is keyed by user id (_id); the version CAS
	// filter uses _id plus version and needs no extra index.

	log.Println("Successfully created all indexes")
	return nil
}
