package usecase

import (
	"testing"
	"time"

	"main/model"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "Same Day",
			a:    time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "Across Midnight",
			a:    time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 11, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "Two Boundaries",
			a:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 3, 12, 1, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "Month Rollover",
			a:    time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 4, 1, 2, 0, 0, 0, time.UTC),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("daysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRecordCompletionStreaks(t *testing.T) {
	p := model.NewUserProgress("user-1", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	day := func(d, hour int) time.Time {
		return time.Date(2025, 3, d, hour, 0, 0, 0, time.UTC)
	}
	complete := func(at time.Time) {
		recordCompletion(p, model.CompletionRecord{TaskID: "t1", Type: model.TaskNormal, CompletedAt: at})
	}

	complete(day(10, 9))
	if p.Stats.CurrentStreak != 1 || p.Stats.TodayCompletedTasks != 1 {
		t.Fatalf("After first completion: streak=%d today=%d", p.Stats.CurrentStreak, p.Stats.TodayCompletedTasks)
	}

	// A second completion the same day counts toward today but not the streak.
	complete(day(10, 20))
	if p.Stats.CurrentStreak != 1 || p.Stats.TodayCompletedTasks != 2 {
		t.Errorf("Same-day completion: streak=%d today=%d", p.Stats.CurrentStreak, p.Stats.TodayCompletedTasks)
	}

	// Next day extends the streak; a late-night to early-morning pair still
	// counts as consecutive days.
	complete(day(11, 0))
	if p.Stats.CurrentStreak != 2 {
		t.Errorf("Consecutive day: streak=%d", p.Stats.CurrentStreak)
	}
	if p.Stats.TodayCompletedTasks != 1 {
		t.Errorf("Day rollover should reset today's count, got %d", p.Stats.TodayCompletedTasks)
	}

	// Skipping a day restarts the streak at 1 but keeps the longest.
	complete(day(13, 9))
	if p.Stats.CurrentStreak != 1 {
		t.Errorf("Gap day: streak=%d", p.Stats.CurrentStreak)
	}
	if p.Stats.LongestStreak != 2 {
		t.Errorf("Longest streak should persist, got %d", p.Stats.LongestStreak)
	}
	if p.Stats.TotalTasksCompleted != 4 {
		t.Errorf("Total completions: %d", p.Stats.TotalTasksCompleted)
	}
}

func TestActiveTaskSet(t *testing.T) {
	p := model.NewUserProgress("user-1", time.Now())

	addActiveTask(p, "a")
	addActiveTask(p, "b")
	addActiveTask(p, "a") // set union
	if len(p.ActiveTasks) != 2 {
		t.Errorf("Expected 2 active tasks, got %v", p.ActiveTasks)
	}

	removeActiveTask(p, "a")
	removeActiveTask(p, "missing")
	if len(p.ActiveTasks) != 1 || p.ActiveTasks[0] != "b" {
		t.Errorf("Expected only b, got %v", p.ActiveTasks)
	}
}
