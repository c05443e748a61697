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

// establishmentBonusXP is the one-time grant per task category when a habit
// reaches the established milestone.
const establishmentBonusXP = 100

// HabitService owns the 66-day habit lifecycle.
type HabitService struct {
	store    ProgressStore
	detector *services.DuplicateDetector
	leveling *LevelingService
	newID    func() string
	now      func() time.Time
}

func NewHabitService(store ProgressStore, detector *services.DuplicateDetector, leveling *LevelingService) *HabitService {
	return &HabitService{
		store:    store,
		detector: detector,
		leveling: leveling,
		newID:    utils.NewID,
		now:      time.Now,
	}
}

// Create stores a new habit after the duplicate gate: a habit is rejected
// only when an existing one matches the candidate title AND wraps the same
// underlying task.
func (svc *HabitService) Create(ctx context.Context, userID, title, reason string, task *model.Task) (*model.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("habit title is required: %w", model.ErrValidation)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("habit reason is required: %w", model.ErrValidation)
	}
	if task == nil || task.TaskID == "" {
		return nil, fmt.Errorf("habit task is required: %w", model.ErrValidation)
	}

	var habit model.Habit
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		for _, existing := range p.Habits {
			if svc.detector.IsDuplicate(title, existing.Title) && existing.Task.TaskID == task.TaskID {
				return fmt.Errorf("habit %q already exists: %w", existing.Title, model.ErrDuplicate)
			}
		}

		habit = model.Habit{
			HabitID:       svc.newID(),
			UserID:        userID,
			Title:         title,
			Reason:        reason,
			Task:          model.HabitTask{Task: *task},
			CompletedDays: []model.HabitDay{},
			CreatedAt:     svc.now(),
		}
		habit.Task.Type = model.TaskHabit
		p.Habits[habit.HabitID] = habit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// CompleteToday marks the habit whose embedded task matches taskID as done
// for the current day. Completing an already-completed habit is an
// intentional idempotent no-op, not an error: the existing state is
// returned unchanged.
func (svc *HabitService) CompleteToday(ctx context.Context, userID, taskID string) (*model.Habit, error) {
	var habit model.Habit
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		habitID, ok := p.HabitIDByTaskID(taskID)
		if !ok {
			return fmt.Errorf("habit for task %s: %w", taskID, model.ErrNotFound)
		}
		habit = p.Habits[habitID]

		now := svc.now()
		if habit.CompletedToday || hasCompletion(p, taskID, model.TaskHabit, now) {
			return errSkipSave
		}

		habit.Streak++
		if habit.Streak > habit.LongestStreak {
			habit.LongestStreak = habit.Streak
		}
		habit.CompletedDays = append(habit.CompletedDays, model.HabitDay{Date: now, Completed: true})
		habit.CompletedToday = true
		habit.Task.Complete = true
		habit.Task.CompletedAt = now

		recordCompletion(p, model.CompletionRecord{
			TaskID:      taskID,
			Type:        model.TaskHabit,
			CompletedAt: now,
			HabitID:     habit.HabitID,
		})
		svc.leveling.Apply(p, habit.Task.CategoryXP)

		// Establishment fires exactly once per habit, guarded by the
		// established_at timestamp.
		if habit.CompletedDayCount() >= model.EstablishDays && !habit.Established() {
			habit.EstablishedAt = now
			bonus := make(map[string]int, len(habit.Task.CategoryXP))
			for category := range habit.Task.CategoryXP {
				bonus[category] = establishmentBonusXP
			}
			svc.leveling.Apply(p, bonus)
		}

		p.Habits[habitID] = habit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

// ResetDailyStatus clears every habit's per-day completion state so the
// next day's completion can land. It runs opportunistically on access and
// is a no-op when already run for the current calendar day.
func (svc *HabitService) ResetDailyStatus(ctx context.Context, userID string) error {
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		now := svc.now()
		if !p.LastDailyReset.IsZero() && sameDay(p.LastDailyReset, now) {
			return errSkipSave
		}

		for id, habit := range p.Habits {
			habit.CompletedToday = false
			habit.Task.Complete = false
			habit.Task.CompletedAt = time.Time{}
			p.Habits[id] = habit
		}
		p.Stats.TodayCompletedTasks = 0
		p.LastDailyReset = now
		return nil
	})
	return err
}

// CheckAndHandleMissedDays resets forward progress for every habit with a
// gap of more than one calendar day since its last completed entry. The
// historical completed days already counted toward establishment are kept;
// only streak and establishment state restart.
func (svc *HabitService) CheckAndHandleMissedDays(ctx context.Context, userID string) error {
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		now := svc.now()
		changed := false

		for id, habit := range p.Habits {
			last, ok := habit.LastCompletedDay()
			if !ok {
				continue
			}
			if daysBetween(last, now) > 1 {
				habit.Streak = 0
				habit.CompletedToday = false
				habit.EstablishedAt = time.Time{}
				p.Habits[id] = habit
				changed = true
			}
		}

		// The user-level streak lapses on the same boundary rule.
		if !p.Stats.LastCompletionAt.IsZero() && daysBetween(p.Stats.LastCompletionAt, now) > 1 && p.Stats.CurrentStreak != 0 {
			p.Stats.CurrentStreak = 0
			changed = true
		}

		if !changed {
			return errSkipSave
		}
		return nil
	})
	return err
}

// List returns the user's habits.
func (svc *HabitService) List(ctx context.Context, userID string) ([]model.Habit, error) {
	progress, err := ensureProgress(ctx, svc.store, userID, svc.now)
	if err != nil {
		return nil, err
	}
	habits := make([]model.Habit, 0, len(progress.Habits))
	for _, habit := range progress.Habits {
		habits = append(habits, habit)
	}
	return habits, nil
}

// Delete destroys a habit. Completion history on the progress record stays.
func (svc *HabitService) Delete(ctx context.Context, userID, habitID string) error {
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		if _, ok := p.Habits[habitID]; !ok {
			return fmt.Errorf("habit %s: %w", habitID, model.ErrNotFound)
		}
		delete(p.Habits, habitID)
		return nil
	})
	return err
}
