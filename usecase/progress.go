package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/utils"
)

// ProgressStore is the persistence contract for the per-user aggregate.
// Save must be a compare-and-swap keyed on the version read by Get and
// return model.ErrConflict when it loses a race.
type ProgressStore interface {
	Get(ctx context.Context, userID string) (*model.UserProgress, error)
	Create(ctx context.Context, progress *model.UserProgress) error
	Save(ctx context.Context, progress *model.UserProgress) error
}

// Catalog is the read-only view of the task and challenge template
// collections the engines resolve references against.
type Catalog interface {
	GetTask(ctx context.Context, taskID string) (*model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) error
	DeleteUserTask(ctx context.Context, taskID, userID string) error
	ListTaskTitles(ctx context.Context) ([]string, error)
	ListUserTaskTitles(ctx context.Context, userID string) ([]string, error)
	GetChallengeTemplate(ctx context.Context, challengeID string) (*model.ChallengeTemplate, error)
	ListChallengeTemplates(ctx context.Context) ([]*model.ChallengeTemplate, error)
}

// maxSaveAttempts bounds the optimistic retry loop. Conflicts under normal
// load resolve on the first retry; persistent conflict is surfaced to the
// caller as model.ErrConflict for retry with backoff.
const maxSaveAttempts = 3

// errSkipSave signals from a mutation func that the aggregate is already in
// the desired state and no write is needed (idempotent no-op).
var errSkipSave = errors.New("skip save")

// withProgress runs fn as an optimistic read-modify-write against the
// user's aggregate, creating an empty aggregate on first access. fn may
// return errSkipSave to finish without writing.
func withProgress(ctx context.Context, store ProgressStore, userID string, now func() time.Time, fn func(p *model.UserProgress) error) (*model.UserProgress, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		if attempt > 0 {
			utils.IncrementCASRetries()
		}

		progress, err := ensureProgress(ctx, store, userID, now)
		if err != nil {
			return nil, err
		}

		if err := fn(progress); err != nil {
			if errors.Is(err, errSkipSave) {
				return progress, nil
			}
			return nil, err
		}

		if err := store.Save(ctx, progress); err != nil {
			if errors.Is(err, model.ErrConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return progress, nil
	}
	return nil, lastErr
}

func ensureProgress(ctx context.Context, store ProgressStore, userID string, now func() time.Time) (*model.UserProgress, error) {
	progress, err := store.Get(ctx, userID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	progress = model.NewUserProgress(userID, now())
	if createErr := store.Create(ctx, progress); createErr != nil {
		if errors.Is(createErr, model.ErrConflict) {
			// Lost the first-write race; the other writer's document wins.
			return store.Get(ctx, userID)
		}
		return nil, createErr
	}
	return progress, nil
}

// ProgressService exposes the aggregate read API.
type ProgressService struct {
	store ProgressStore
	now   func() time.Time
}

func NewProgressService(store ProgressStore) *ProgressService {
	return &ProgressService{store: store, now: time.Now}
}

func (svc *ProgressService) GetProgress(ctx context.Context, userID string) (*model.UserProgress, error) {
	return ensureProgress(ctx, svc.store, userID, svc.now)
}

func (svc *ProgressService) GetStats(ctx context.Context, userID string) (*model.Stats, error) {
	progress, err := ensureProgress(ctx, svc.store, userID, svc.now)
	if err != nil {
		return nil, err
	}
	return &progress.Stats, nil
}
