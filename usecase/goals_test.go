package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"
)

func setupGoalTest(start time.Time) (*GoalService, *memoryStore, *fakeClock) {
	store := newMemoryStore()
	clock := newFakeClock(start)

	svc := NewGoalService(store)
	svc.now = clock.Now

	counter := 0
	svc.newID = func() string {
		counter++
		return "goal-" + string(rune('a'+counter))
	}
	return svc, store, clock
}

func TestGoalExpiryBoundaries(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"

	tests := []struct {
		name      string
		timeframe model.GoalTimeframe
		createdAt time.Time
		stillLive time.Time
		expired   time.Time
	}{
		{
			name:      "Daily Goal Expires At Midnight",
			timeframe: model.TimeframeDaily,
			createdAt: time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			stillLive: time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC),
			expired:   time.Date(2025, 3, 11, 0, 0, 1, 0, time.UTC),
		},
		{
			name:      "Monthly Goal Expires At Month Rollover",
			timeframe: model.TimeframeMonthly,
			createdAt: time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC),
			stillLive: time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC),
			expired:   time.Date(2025, 4, 1, 0, 0, 1, 0, time.UTC),
		},
		{
			name:      "Yearly Goal Expires At Year Rollover",
			timeframe: model.TimeframeYearly,
			createdAt: time.Date(2025, 12, 31, 18, 0, 0, 0, time.UTC),
			stillLive: time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
			expired:   time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, clock := setupGoalTest(tt.createdAt)

			goal, err := svc.Create(ctx, userID, CreateGoalInput{
				Description: "test goal",
				Timeframe:   tt.timeframe,
			})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			clock.Set(tt.stillLive)
			goals, err := svc.GetByTimeframe(ctx, userID, tt.timeframe)
			if err != nil {
				t.Fatalf("GetByTimeframe failed: %v", err)
			}
			if len(goals) != 1 {
				t.Fatalf("Goal should still be live, got %d goals", len(goals))
			}

			clock.Set(tt.expired)
			goals, err = svc.GetByTimeframe(ctx, userID, tt.timeframe)
			if err != nil {
				t.Fatalf("GetByTimeframe failed: %v", err)
			}
			if len(goals) != 0 {
				t.Fatalf("Goal should have expired, got %d goals", len(goals))
			}

			progress, _ := store.Get(ctx, userID)
			archived := progress.Goals[goal.GoalID]
			if archived.Status != model.GoalArchived {
				t.Errorf("Expected archived status, got %s", archived.Status)
			}
			if archived.ArchivedReason != "period ended" {
				t.Errorf("Unexpected archive reason: %q", archived.ArchivedReason)
			}

			// Expired goals may not be mutated afterwards.
			if _, err := svc.UpdateProgress(ctx, userID, goal.GoalID, 50); !errors.Is(err, model.ErrInvalidState) {
				t.Errorf("Expected ErrInvalidState updating an archived goal, got %v", err)
			}
		})
	}
}

func TestGoalProgressAndStatus(t *testing.T) {
	ctx := context.Background()
	userID := "user-1"
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "Status Is A Pure Function Of Progress",
			run: func(t *testing.T) {
				svc, _, _ := setupGoalTest(start)
				goal, err := svc.Create(ctx, userID, CreateGoalInput{Description: "learn Go", Timeframe: model.TimeframeMonthly})
				if err != nil {
					t.Fatalf("Create failed: %v", err)
				}
				if goal.Status != model.GoalNotStarted {
					t.Errorf("New goal should be not_started, got %s", goal.Status)
				}

				updated, _ := svc.UpdateProgress(ctx, userID, goal.GoalID, 40)
				if updated.Status != model.GoalInProgress {
					t.Errorf("Expected in_progress at 40, got %s", updated.Status)
				}

				updated, _ = svc.UpdateProgress(ctx, userID, goal.GoalID, 150)
				if updated.Status != model.GoalCompleted || updated.Progress != 100 {
					t.Errorf("Expected completed/100, got %s/%d", updated.Status, updated.Progress)
				}
				if updated.CompletedAt.IsZero() {
					t.Error("Completion must stamp completed_at")
				}

				// Walking progress back reopens the goal.
				updated, _ = svc.UpdateProgress(ctx, userID, goal.GoalID, 10)
				if updated.Status != model.GoalInProgress || !updated.CompletedAt.IsZero() {
					t.Errorf("Expected reopened goal, got %s completedAt=%v", updated.Status, updated.CompletedAt)
				}

				updated, _ = svc.UpdateProgress(ctx, userID, goal.GoalID, -5)
				if updated.Status != model.GoalNotStarted || updated.Progress != 0 {
					t.Errorf("Expected not_started/0, got %s/%d", updated.Status, updated.Progress)
				}
			},
		},
		{
			name: "Goal Stats Track Completion Rate",
			run: func(t *testing.T) {
				svc, store, _ := setupGoalTest(start)
				g1, _ := svc.Create(ctx, userID, CreateGoalInput{Description: "one", Timeframe: model.TimeframeMonthly})
				g2, _ := svc.Create(ctx, userID, CreateGoalInput{Description: "two", Timeframe: model.TimeframeMonthly})
				g3, _ := svc.Create(ctx, userID, CreateGoalInput{Description: "three", Timeframe: model.TimeframeMonthly})

				if _, err := svc.UpdateProgress(ctx, userID, g1.GoalID, 100); err != nil {
					t.Fatalf("UpdateProgress failed: %v", err)
				}
				if _, err := svc.Archive(ctx, userID, g3.GoalID, "changed my mind"); err != nil {
					t.Fatalf("Archive failed: %v", err)
				}

				progress, _ := store.Get(ctx, userID)
				if progress.Stats.GoalsCompleted != 1 {
					t.Errorf("Expected 1 completed goal, got %d", progress.Stats.GoalsCompleted)
				}
				// 1 of 2 non-archived goals.
				if progress.Stats.GoalCompletionRate != 50 {
					t.Errorf("Expected 50%% completion rate, got %v", progress.Stats.GoalCompletionRate)
				}

				if err := svc.Delete(ctx, userID, g2.GoalID); err != nil {
					t.Fatalf("Delete failed: %v", err)
				}
				progress, _ = store.Get(ctx, userID)
				if progress.Stats.GoalCompletionRate != 100 {
					t.Errorf("Expected 100%% after deleting the open goal, got %v", progress.Stats.GoalCompletionRate)
				}
			},
		},
		{
			name: "Success Reflection Requires Completion",
			run: func(t *testing.T) {
				svc, _, _ := setupGoalTest(start)
				goal, _ := svc.Create(ctx, userID, CreateGoalInput{Description: "ship it", Timeframe: model.TimeframeMonthly})

				if _, err := svc.AddReflection(ctx, userID, goal.GoalID, "went great", model.OutcomeSuccess); !errors.Is(err, model.ErrInvalidState) {
					t.Errorf("Expected ErrInvalidState, got %v", err)
				}

				if _, err := svc.UpdateProgress(ctx, userID, goal.GoalID, 100); err != nil {
					t.Fatalf("UpdateProgress failed: %v", err)
				}
				reflected, err := svc.AddReflection(ctx, userID, goal.GoalID, "went great", model.OutcomeSuccess)
				if err != nil {
					t.Fatalf("AddReflection failed: %v", err)
				}
				if reflected.Reflection == nil || reflected.Reflection.Outcome != model.OutcomeSuccess {
					t.Errorf("Reflection not recorded: %+v", reflected.Reflection)
				}
			},
		},
		{
			name: "Failure Reflection Archives The Goal",
			run: func(t *testing.T) {
				svc, _, _ := setupGoalTest(start)
				goal, _ := svc.Create(ctx, userID, CreateGoalInput{Description: "too ambitious", Timeframe: model.TimeframeMonthly})

				reflected, err := svc.AddReflection(ctx, userID, goal.GoalID, "not this month", model.OutcomeFailure)
				if err != nil {
					t.Fatalf("AddReflection failed: %v", err)
				}
				if reflected.Status != model.GoalArchived {
					t.Errorf("Failure reflection should archive, got %s", reflected.Status)
				}
			},
		},
		{
			name: "Archive Is Idempotent",
			run: func(t *testing.T) {
				svc, _, _ := setupGoalTest(start)
				goal, _ := svc.Create(ctx, userID, CreateGoalInput{Description: "later", Timeframe: model.TimeframeYearly})

				first, err := svc.Archive(ctx, userID, goal.GoalID, "postponed")
				if err != nil {
					t.Fatalf("Archive failed: %v", err)
				}
				second, err := svc.Archive(ctx, userID, goal.GoalID, "different reason")
				if err != nil {
					t.Fatalf("Second archive failed: %v", err)
				}
				if second.ArchivedReason != first.ArchivedReason {
					t.Errorf("Re-archiving must not overwrite the reason: %q vs %q", second.ArchivedReason, first.ArchivedReason)
				}
			},
		},
		{
			name: "Invalid Input Is Rejected",
			run: func(t *testing.T) {
				svc, _, _ := setupGoalTest(start)
				if _, err := svc.Create(ctx, userID, CreateGoalInput{Description: "x", Timeframe: "weekly"}); !errors.Is(err, model.ErrValidation) {
					t.Errorf("Expected ErrValidation for unknown timeframe, got %v", err)
				}
				if _, err := svc.Create(ctx, userID, CreateGoalInput{Description: "  ", Timeframe: model.TimeframeDaily}); !errors.Is(err, model.ErrValidation) {
					t.Errorf("Expected ErrValidation for blank description, got %v", err)
				}
				if _, err := svc.GetByTimeframe(ctx, userID, "weekly"); !errors.Is(err, model.ErrValidation) {
					t.Errorf("Expected ErrValidation for unknown timeframe, got %v", err)
				}
				goal, _ := svc.Create(ctx, userID, CreateGoalInput{Description: "ok", Timeframe: model.TimeframeDaily})
				if _, err := svc.AddReflection(ctx, userID, goal.GoalID, "text", "meh"); !errors.Is(err, model.ErrValidation) {
					t.Errorf("Expected ErrValidation for unknown outcome, got %v", err)
				}
			},
		},
		{
			name: "Completed Goals Survive Their Period",
			run: func(t *testing.T) {
				svc, store, clock := setupGoalTest(start)
				goal, _ := svc.Create(ctx, userID, CreateGoalInput{Description: "done today", Timeframe: model.TimeframeDaily})
				if _, err := svc.UpdateProgress(ctx, userID, goal.GoalID, 100); err != nil {
					t.Fatalf("UpdateProgress failed: %v", err)
				}

				clock.Advance(48 * time.Hour)
				if _, err := svc.GetByTimeframe(ctx, userID, model.TimeframeDaily); err != nil {
					t.Fatalf("GetByTimeframe failed: %v", err)
				}

				progress, _ := store.Get(ctx, userID)
				if progress.Goals[goal.GoalID].Status != model.GoalCompleted {
					t.Errorf("Completed goal must not be archived by expiry, got %s", progress.Goals[goal.GoalID].Status)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}
