package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepo holds the read-shared catalog entities: task templates and
// challenge templates. Templates are never mutated by the engines.
type CatalogRepo struct {
	Tasks              *mongo.Collection
	ChallengeTemplates *mongo.Collection
}

func GetCatalogRepo(client *mongo.Client) *CatalogRepo {
	dbName := os.Getenv("MONGO_DB")
	tasksName := os.Getenv("TASKS_COLLECTION")
	if tasksName == "" {
		tasksName = "tasks"
	}
	templatesName := os.Getenv("CHALLENGE_TEMPLATES_COLLECTION")
	if templatesName == "" {
		templatesName = "challenge_templates"
	}
	db := client.Database(dbName)
	return &CatalogRepo{
		Tasks:              db.Collection(tasksName),
		ChallengeTemplates: db.Collection(templatesName),
	}
}

func (r *CatalogRepo) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	var task model.Task
	err := r.Tasks.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *CatalogRepo) CreateTask(ctx context.Context, task *model.Task) error {
	if task.TaskID == "" {
		return fmt.Errorf("task ID is required: %w", model.ErrValidation)
	}
	_, err := r.Tasks.InsertOne(ctx, task)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("task %s already exists: %w", task.TaskID, model.ErrDuplicate)
	}
	return err
}

// DeleteUserTask removes a user-generated task owned by userID. Catalog
// tasks written by the privileged writer are not deletable this way.
func (r *CatalogRepo) DeleteUserTask(ctx context.Context, taskID, userID string) error {
	result, err := r.Tasks.DeleteOne(ctx, bson.M{
		"_id":        taskID,
		"created_by": userID,
		"type":       model.TaskUserGenerated,
	})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user task %s: %w", taskID, model.ErrNotFound)
	}
	return nil
}

// ListTaskTitles returns every catalog task title, used by the duplicate
// detector gate.
func (r *CatalogRepo) ListTaskTitles(ctx context.Context) ([]string, error) {
	return r.listTitles(ctx, bson.M{})
}

// ListUserTaskTitles returns the titles of a user's own prior submissions.
func (r *CatalogRepo) ListUserTaskTitles(ctx context.Context, userID string) ([]string, error) {
	return r.listTitles(ctx, bson.M{"created_by": userID})
}

func (r *CatalogRepo) listTitles(ctx context.Context, filter bson.M) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"title": 1})
	cursor, err := r.Tasks.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Title string `bson:"title"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(docs))
	for _, d := range docs {
		titles = append(titles, d.Title)
	}
	return titles, nil
}

func (r *CatalogRepo) GetChallengeTemplate(ctx context.Context, challengeID string) (*model.ChallengeTemplate, error) {
	var template model.ChallengeTemplate
	err := r.ChallengeTemplates.FindOne(ctx, bson.M{"_id": challengeID}).Decode(&template)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("challenge %s: %w", challengeID, model.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *CatalogRepo) ListChallengeTemplates(ctx context.Context) ([]*model.ChallengeTemplate, error) {
	cursor, err := r.ChallengeTemplates.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []*model.ChallengeTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}
