package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"main/model"
	"main/utils"
)

// archiveReasonExpired is recorded when lazy expiry archives a goal.
const archiveReasonExpired = "period ended"

// GoalService owns the timeframe-scoped goal lifecycle. Expiry is enforced
// lazily on read against calendar boundaries, not by a background clock.
type GoalService struct {
	store ProgressStore
	newID func() string
	now   func() time.Time
}

func NewGoalService(store ProgressStore) *GoalService {
	return &GoalService{store: store, newID: utils.NewID, now: time.Now}
}

// CreateGoalInput carries the optional fields; they are stored only when
// supplied.
type CreateGoalInput struct {
	Description  string
	Timeframe    model.GoalTimeframe
	Measurable   string
	Category     string
	Steps        []string
	ParentGoalID string
}

func (svc *GoalService) Create(ctx context.Context, userID string, input CreateGoalInput) (*model.Goal, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("goal description is required: %w", model.ErrValidation)
	}
	if !model.ValidTimeframe(input.Timeframe) {
		return nil, fmt.Errorf("invalid goal timeframe %q: %w", input.Timeframe, model.ErrValidation)
	}

	goal := model.Goal{
		GoalID:       svc.newID(),
		UserID:       userID,
		Description:  input.Description,
		Timeframe:    input.Timeframe,
		Status:       model.GoalNotStarted,
		Measurable:   input.Measurable,
		Category:     input.Category,
		Steps:        input.Steps,
		ParentGoalID: input.ParentGoalID,
		CreatedAt:    svc.now(),
	}

	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		p.Goals[goal.GoalID] = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateProgress sets the goal's progress and derives status from it as a
// pure function: >=100 completed, >0 in progress, <=0 not started.
// Completion stamps completed_at and recomputes goal stats.
func (svc *GoalService) UpdateProgress(ctx context.Context, userID, goalID string, progress int) (*model.Goal, error) {
	var result model.Goal
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		goal, ok := p.Goals[goalID]
		if !ok {
			return fmt.Errorf("goal %s: %w", goalID, model.ErrNotFound)
		}
		if goal.Status == model.GoalArchived {
			return fmt.Errorf("goal %s is archived: %w", goalID, model.ErrInvalidState)
		}

		if progress > 100 {
			progress = 100
		}
		if progress < 0 {
			progress = 0
		}
		goal.Progress = progress

		switch {
		case progress >= 100:
			goal.Status = model.GoalCompleted
			if goal.CompletedAt.IsZero() {
				goal.CompletedAt = svc.now()
			}
		case progress > 0:
			goal.Status = model.GoalInProgress
			goal.CompletedAt = time.Time{}
		default:
			goal.Status = model.GoalNotStarted
			goal.CompletedAt = time.Time{}
		}

		p.Goals[goalID] = goal
		recomputeGoalStats(p)
		result = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// IsExpired reports whether the goal's creation calendar unit has passed.
// This is a boundary crossing, not a rolling duration: a daily goal created
// at 23:59 expires one minute later at midnight.
func IsExpired(goal *model.Goal, now time.Time) bool {
	switch goal.Timeframe {
	case model.TimeframeDaily:
		return !sameDay(goal.CreatedAt, now)
	case model.TimeframeMonthly:
		return !sameMonth(goal.CreatedAt, now)
	case model.TimeframeYearly:
		return goal.CreatedAt.Year() != now.Year()
	}
	return false
}

// GetByTimeframe archives every expired, non-completed goal of the
// timeframe before returning the remaining live set. Archival is lazy,
// idempotent and irreversible.
func (svc *GoalService) GetByTimeframe(ctx context.Context, userID string, timeframe model.GoalTimeframe) ([]model.Goal, error) {
	if !model.ValidTimeframe(timeframe) {
		return nil, fmt.Errorf("invalid goal timeframe %q: %w", timeframe, model.ErrValidation)
	}

	var goals []model.Goal
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		now := svc.now()
		changed := false
		goals = goals[:0]

		for id, goal := range p.Goals {
			if goal.Timeframe != timeframe {
				continue
			}
			if goal.Status != model.GoalCompleted && goal.Status != model.GoalArchived && IsExpired(&goal, now) {
				goal.Status = model.GoalArchived
				goal.ArchivedReason = archiveReasonExpired
				p.Goals[id] = goal
				changed = true
			}
			if goal.Status != model.GoalArchived && !IsExpired(&goal, now) {
				goals = append(goals, goal)
			}
		}

		if changed {
			recomputeGoalStats(p)
			return nil
		}
		return errSkipSave
	})
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// AddReflection attaches a reflection to a terminal goal. A success
// reflection requires the goal to be completed; a failure reflection
// forces the goal into the archived state.
func (svc *GoalService) AddReflection(ctx context.Context, userID, goalID, content string, outcome model.ReflectionOutcome) (*model.Goal, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("reflection content is required: %w", model.ErrValidation)
	}
	if outcome != model.OutcomeSuccess && outcome != model.OutcomeFailure {
		return nil, fmt.Errorf("invalid reflection outcome %q: %w", outcome, model.ErrValidation)
	}

	var result model.Goal
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		goal, ok := p.Goals[goalID]
		if !ok {
			return fmt.Errorf("goal %s: %w", goalID, model.ErrNotFound)
		}

		if outcome == model.OutcomeSuccess && goal.Status != model.GoalCompleted {
			return fmt.Errorf("success reflection requires a completed goal: %w", model.ErrInvalidState)
		}

		goal.Reflection = &model.Reflection{
			Content:   content,
			Outcome:   outcome,
			CreatedAt: svc.now(),
		}
		if outcome == model.OutcomeFailure {
			goal.Status = model.GoalArchived
			if goal.ArchivedReason == "" {
				goal.ArchivedReason = "reflected as failure"
			}
		}

		p.Goals[goalID] = goal
		recomputeGoalStats(p)
		result = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Archive archives a goal explicitly with a reason. Archiving an archived
// goal is a no-op.
func (svc *GoalService) Archive(ctx context.Context, userID, goalID, reason string) (*model.Goal, error) {
	var result model.Goal
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		goal, ok := p.Goals[goalID]
		if !ok {
			return fmt.Errorf("goal %s: %w", goalID, model.ErrNotFound)
		}
		if goal.Status == model.GoalArchived {
			result = goal
			return errSkipSave
		}

		goal.Status = model.GoalArchived
		goal.ArchivedReason = reason
		p.Goals[goalID] = goal
		recomputeGoalStats(p)
		result = goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a goal outright.
func (svc *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	_, err := withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		if _, ok := p.Goals[goalID]; !ok {
			return fmt.Errorf("goal %s: %w", goalID, model.ErrNotFound)
		}
		delete(p.Goals, goalID)
		recomputeGoalStats(p)
		return nil
	})
	return err
}

// recomputeGoalStats refreshes the completed count and completion rate
// (completed / all non-archived, as a percentage).
func recomputeGoalStats(p *model.UserProgress) {
	completed := 0
	active := 0
	for _, goal := range p.Goals {
		if goal.Status == model.GoalCompleted {
			completed++
		}
		if goal.Status != model.GoalArchived {
			active++
		}
	}
	p.Stats.GoalsCompleted = completed
	if active > 0 {
		p.Stats.GoalCompletionRate = float64(completed) / float64(active) * 100
	} else {
		p.Stats.GoalCompletionRate = 0
	}
}
