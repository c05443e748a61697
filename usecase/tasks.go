package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/model"
	"main/services"
	"main/utils"
)

// TaskService owns the one-off task lifecycle: evaluator-gated creation of
// user-generated tasks, assignment, exactly-once completion and deletion.
type TaskService struct {
	store     ProgressStore
	catalog   Catalog
	evaluator services.TaskEvaluator
	limiter   *services.RateLimiter
	detector  *services.DuplicateDetector
	leveling  *LevelingService
	newID     func() string
	now       func() time.Time
}

func NewTaskService(store ProgressStore, catalog Catalog, evaluator services.TaskEvaluator,
	limiter *services.RateLimiter, detector *services.DuplicateDetector, leveling *LevelingService) *TaskService {
	return &TaskService{
		store:     store,
		catalog:   catalog,
		evaluator: evaluator,
		limiter:   limiter,
		detector:  detector,
		leveling:  leveling,
		newID:     utils.NewID,
		now:       time.Now,
	}
}

// CreateUserTask runs the full gate for a user-submitted task: duplicate
// check against the catalog and the user's own submissions, then the
// external evaluator. Nothing is persisted unless every gate passes, so a
// failed evaluation leaves no partial state.
func (svc *TaskService) CreateUserTask(ctx context.Context, userID, title, description string) (*model.Task, *model.TaskEvaluation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil, fmt.Errorf("task title is required: %w", model.ErrValidation)
	}

	catalogTitles, err := svc.catalog.ListTaskTitles(ctx)
	if err != nil {
		return nil, nil, err
	}
	userTitles, err := svc.catalog.ListUserTaskTitles(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if match, found := svc.detector.FindMatch(title, catalogTitles, userTitles); found {
		return nil, nil, fmt.Errorf("task too similar to %q: %w", match, model.ErrDuplicate)
	}

	// The limiter is the only intentional blocking point in the engine.
	if err := svc.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}
	eval, err := svc.evaluator.Evaluate(ctx, title, description)
	if err != nil {
		return nil, nil, err
	}

	if eval.SafetyCheck != nil && !eval.SafetyCheck.Passed {
		return nil, eval, fmt.Errorf("task rejected: %w", model.ErrSafetyRejected)
	}
	if !eval.IsValid {
		return nil, eval, fmt.Errorf("evaluator rejected task: %w", model.ErrValidation)
	}

	categoryXP := make(map[string]int, len(eval.CategoryXP))
	for category, xp := range eval.CategoryXP {
		categoryXP[category] = ClampXP(xp)
	}

	task := &model.Task{
		TaskID:      svc.newID(),
		Title:       eval.Title,
		Description: eval.Description,
		CategoryXP:  categoryXP,
		Tags:        eval.Tags,
		Type:        model.TaskUserGenerated,
		Status:      model.TaskStatusActive,
		CreatedBy:   userID,
		CreatedAt:   svc.now(),
	}
	if err := svc.catalog.CreateTask(ctx, task); err != nil {
		return nil, eval, err
	}

	if _, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		addActiveTask(p, task.TaskID)
		return nil
	}); err != nil {
		return nil, eval, err
	}

	return task, eval, nil
}

// AssignActive adds an existing catalog task to the user's active set.
func (svc *TaskService) AssignActive(ctx context.Context, userID, taskID string) error {
	if _, err := svc.catalog.GetTask(ctx, taskID); err != nil {
		return err
	}
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		addActiveTask(p, taskID)
		return nil
	})
	return err
}

// GetActiveTasks resolves the user's active task ids to full templates.
// Ids whose template has since been deleted are skipped.
func (svc *TaskService) GetActiveTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	progress, err := ensureProgress(ctx, svc.store, userID, svc.now)
	if err != nil {
		return nil, err
	}

	tasks := make([]*model.Task, 0, len(progress.ActiveTasks))
	for _, taskID := range progress.ActiveTasks {
		task, err := svc.catalog.GetTask(ctx, taskID)
		if err != nil {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Complete records a completion exactly once per (task, type, calendar day).
// The completion record, stats increments, active-set removal and XP award
// all land in one compare-and-swap write; a retry that finds the record
// already present fails with ErrDuplicate instead of double-awarding.
func (svc *TaskService) Complete(ctx context.Context, userID, taskID string) (*model.CompletionRecord, error) {
	task, err := svc.catalog.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var record model.CompletionRecord
	_, err = withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		now := svc.now()
		if hasCompletion(p, taskID, task.Type, now) {
			return fmt.Errorf("task %s already completed today: %w", taskID, model.ErrDuplicate)
		}

		record = model.CompletionRecord{
			TaskID:      taskID,
			Type:        task.Type,
			CompletedAt: now,
		}
		recordCompletion(p, record)
		removeActiveTask(p, taskID)
		svc.leveling.Apply(p, task.CategoryXP)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a user-generated task and any dangling active reference.
// XP already awarded for past completions is never revoked.
func (svc *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := svc.catalog.DeleteUserTask(ctx, taskID, userID); err != nil {
		return err
	}
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		removeActiveTask(p, taskID)
		return nil
	})
	return err
}
