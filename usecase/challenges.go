package usecase

import (
	"context"
	"fmt"
	"time"

	"main/model"
)

// ChallengeService owns the multi-task, multi-day challenge lifecycle.
type ChallengeService struct {
	store    ProgressStore
	catalog  Catalog
	leveling *LevelingService
	now      func() time.Time
}

func NewChallengeService(store ProgressStore, catalog Catalog, leveling *LevelingService) *ChallengeService {
	return &ChallengeService{store: store, catalog: catalog, leveling: leveling, now: time.Now}
}

// ListTemplates exposes the read-only challenge catalog.
func (svc *ChallengeService) ListTemplates(ctx context.Context) ([]*model.ChallengeTemplate, error) {
	return svc.catalog.ListChallengeTemplates(ctx)
}

// Join creates a fresh instance of the template for the user. Rejoining a
// challenge that is already active is a duplicate. Any of today's
// completions recorded under this challenge id are cleared so the rejoined
// attempt starts the day clean.
func (svc *ChallengeService) Join(ctx context.Context, userID, challengeID string) (*model.ChallengeInstance, error) {
	template, err := svc.catalog.GetChallengeTemplate(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	var instance model.ChallengeInstance
	_, err = withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		if existing := p.FindChallenge(challengeID); existing != nil && existing.Active {
			return fmt.Errorf("challenge %s already active: %w", challengeID, model.ErrDuplicate)
		}

		now := svc.now()
		instance = model.ChallengeInstance{
			ChallengeTemplate: *template,
			StartDate:         now,
			Active:            true,
			TaskProgress:      newTaskProgress(template),
			Attempts:          1,
			JoinedAt:          now,
		}
		p.Challenges = append(p.Challenges, instance)

		filtered := p.CompletedTasks[:0]
		for _, rec := range p.CompletedTasks {
			if rec.ChallengeID == challengeID && sameDay(rec.CompletedAt, now) {
				continue
			}
			filtered = append(filtered, rec)
		}
		p.CompletedTasks = filtered
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

func newTaskProgress(template *model.ChallengeTemplate) []model.TaskProgress {
	progress := make([]model.TaskProgress, 0, len(template.Tasks))
	for _, task := range template.Tasks {
		progress = append(progress, model.TaskProgress{TaskID: task.TaskID, CompletedDates: []time.Time{}})
	}
	return progress
}

// GetTodaysTasks lists, for every active instance, the templated tasks not
// yet completed today under that challenge, resolved to full task objects
// tagged with challenge metadata.
func (svc *ChallengeService) GetTodaysTasks(ctx context.Context, userID string) ([]model.TodayChallengeTask, error) {
	progress, err := ensureProgress(ctx, svc.store, userID, svc.now)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	tasks := []model.TodayChallengeTask{}
	for i := range progress.Challenges {
		instance := &progress.Challenges[i]
		if !instance.Active {
			continue
		}
		for _, challengeTask := range instance.Tasks {
			if hasChallengeCompletion(progress, instance.ChallengeID, challengeTask.TaskID, now) {
				continue
			}
			task, err := svc.catalog.GetTask(ctx, challengeTask.TaskID)
			if err != nil {
				continue
			}
			tasks = append(tasks, model.TodayChallengeTask{
				Task:           *task,
				ChallengeID:    instance.ChallengeID,
				ChallengeTitle: instance.Title,
				Frequency:      challengeTask.Frequency,
			})
		}
	}
	return tasks, nil
}

// CompleteTask records one challenge task completion and re-evaluates full
// challenge completion from current task progress. A same-day repeat for
// the same challenge task is absorbed as a no-op.
func (svc *ChallengeService) CompleteTask(ctx context.Context, userID, challengeID, taskID string) (*model.ChallengeInstance, error) {
	task, err := svc.catalog.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	var result model.ChallengeInstance
	_, err = withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		instance := p.FindChallenge(challengeID)
		if instance == nil || !instance.Active {
			return fmt.Errorf("active challenge %s: %w", challengeID, model.ErrNotFound)
		}
		taskProgress := instance.FindTaskProgress(taskID)
		if taskProgress == nil {
			return fmt.Errorf("task %s not part of challenge %s: %w", taskID, challengeID, model.ErrNotFound)
		}

		now := svc.now()
		if hasChallengeCompletion(p, challengeID, taskID, now) {
			result = *instance
			return errSkipSave
		}

		taskProgress.CompletedDates = append(taskProgress.CompletedDates, now)
		taskProgress.StreakCount++
		taskProgress.LastCompleted = now

		recordCompletion(p, model.CompletionRecord{
			TaskID:      taskID,
			Type:        task.Type,
			CompletedAt: now,
			ChallengeID: challengeID,
		})
		svc.leveling.Apply(p, task.CategoryXP)

		// Full completion is recomputed from current task progress on
		// every completion; the stats entry is set-union so later
		// completions cannot re-credit it.
		if challengeSatisfied(instance) && !p.HasChallengeCompleted(challengeID) {
			p.Stats.ChallengesCompleted = append(p.Stats.ChallengesCompleted, challengeID)
		}

		result = *instance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// challengeSatisfied reports whether every templated task meets its
// frequency contract: daily needs one completion per challenge day, weekly
// one per challenge week.
func challengeSatisfied(instance *model.ChallengeInstance) bool {
	for _, challengeTask := range instance.Tasks {
		taskProgress := instance.FindTaskProgress(challengeTask.TaskID)
		if taskProgress == nil {
			return false
		}
		required := instance.Duration
		if challengeTask.Frequency == model.FrequencyWeekly {
			required = ceilDiv(instance.Duration, 7)
		}
		if len(taskProgress.CompletedDates) < required {
			return false
		}
	}
	return len(instance.Tasks) > 0
}

// ProgressPercent derives the elapsed-time progress of an instance,
// capped at 100.
func (svc *ChallengeService) ProgressPercent(instance *model.ChallengeInstance) int {
	if instance.Duration <= 0 {
		return 0
	}
	elapsed := daysBetween(instance.StartDate, svc.now())
	percent := elapsed * 100 / instance.Duration
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return percent
}

// CheckFailed surfaces instances whose cadence lapsed (any task progress
// entry last completed more than one day ago). The decision to restart or
// quit stays with the caller; nothing is auto-resolved here.
func (svc *ChallengeService) CheckFailed(ctx context.Context, userID string) ([]model.ChallengeInstance, error) {
	progress, err := ensureProgress(ctx, svc.store, userID, svc.now)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	failed := []model.ChallengeInstance{}
	for _, instance := range progress.Challenges {
		if !instance.Active {
			continue
		}
		for _, taskProgress := range instance.TaskProgress {
			// A task never completed is measured from the start date.
			reference := taskProgress.LastCompleted
			if reference.IsZero() {
				reference = instance.StartDate
			}
			if daysBetween(reference, now) > 1 {
				failed = append(failed, instance)
				break
			}
		}
	}
	return failed, nil
}

// ResetProgress restarts an instance in place: task progress is cleared,
// the clock restarts and the attempt counter grows. Active state is
// untouched.
func (svc *ChallengeService) ResetProgress(ctx context.Context, userID, challengeID string) (*model.ChallengeInstance, error) {
	var result model.ChallengeInstance
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		instance := p.FindChallenge(challengeID)
		if instance == nil {
			return fmt.Errorf("challenge %s: %w", challengeID, model.ErrNotFound)
		}
		instance.TaskProgress = newTaskProgress(&instance.ChallengeTemplate)
		instance.StartDate = svc.now()
		instance.Attempts++
		result = *instance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Quit removes the instance from the active set and records the challenge
// in stats with set-union semantics.
func (svc *ChallengeService) Quit(ctx context.Context, userID, challengeID string) error {
	return svc.retire(ctx, userID, challengeID)
}

// Complete removes the instance from the active set and records the
// challenge in stats exactly once.
func (svc *ChallengeService) Complete(ctx context.Context, userID, challengeID string) error {
	return svc.retire(ctx, userID, challengeID)
}

func (svc *ChallengeService) retire(ctx context.Context, userID, challengeID string) error {
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		found := false
		remaining := p.Challenges[:0]
		for _, instance := range p.Challenges {
			if instance.ChallengeID == challengeID {
				found = true
				continue
			}
			remaining = append(remaining, instance)
		}
		if !found {
			return fmt.Errorf("challenge %s: %w", challengeID, model.ErrNotFound)
		}
		p.Challenges = remaining

		if !p.HasChallengeCompleted(challengeID) {
			p.Stats.ChallengesCompleted = append(p.Stats.ChallengesCompleted, challengeID)
		}
		return nil
	})
	return err
}

// ListActive returns the user's active challenge instances.
func (svc *ChallengeService) ListActive(ctx context.Context, userID string) ([]model.ChallengeInstance, error) {
	progress, err := ensureProgress(ctx, svc.store, userID, svc.now)
	if err != nil {
		return nil, err
	}
	active := []model.ChallengeInstance{}
	for _, instance := range progress.Challenges {
		if instance.Active {
			active = append(active, instance)
		}
	}
	return active, nil
}
