package usecase

import (
	"time"

	"main/model"
)

// Calendar-boundary helpers. Expiry and missed-day detection compare
// wall-clock day/month/year rollovers, never rolling durations.

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// daysBetween counts calendar-day boundaries crossed between a and b.
// 23:59 to 00:01 the next day is 1.
func daysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Hours() / 24)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// hasCompletion checks the same-day idempotency key (taskID, type, day).
func hasCompletion(p *model.UserProgress, taskID string, taskType model.TaskType, day time.Time) bool {
	for _, rec := range p.CompletedTasks {
		if rec.TaskID == taskID && rec.Type == taskType && sameDay(rec.CompletedAt, day) {
			return true
		}
	}
	return false
}

// hasChallengeCompletion checks for a completion of taskID under a specific
// challenge on the given day.
func hasChallengeCompletion(p *model.UserProgress, challengeID, taskID string, day time.Time) bool {
	for _, rec := range p.CompletedTasks {
		if rec.ChallengeID == challengeID && rec.TaskID == taskID && sameDay(rec.CompletedAt, day) {
			return true
		}
	}
	return false
}

// recordCompletion appends the completion record and maintains the shared
// completion stats, including the user-level daily streak.
func recordCompletion(p *model.UserProgress, rec model.CompletionRecord) {
	now := rec.CompletedAt

	// The user-level streak advances on the first completion of a calendar
	// day; a >1 day gap since the last completion restarts it.
	if p.Stats.LastCompletionAt.IsZero() || !sameDay(p.Stats.LastCompletionAt, now) {
		if !p.Stats.LastCompletionAt.IsZero() && daysBetween(p.Stats.LastCompletionAt, now) == 1 {
			p.Stats.CurrentStreak++
		} else {
			p.Stats.CurrentStreak = 1
		}
		if p.Stats.CurrentStreak > p.Stats.LongestStreak {
			p.Stats.LongestStreak = p.Stats.CurrentStreak
		}
		p.Stats.TodayCompletedTasks = 0
	}

	p.CompletedTasks = append(p.CompletedTasks, rec)
	p.Stats.TotalTasksCompleted++
	p.Stats.TodayCompletedTasks++
	p.Stats.LastCompletionAt = now
}

// removeActiveTask pulls taskID from the active set, if present.
func removeActiveTask(p *model.UserProgress, taskID string) {
	for i, id := range p.ActiveTasks {
		if id == taskID {
			p.ActiveTasks = append(p.ActiveTasks[:i], p.ActiveTasks[i+1:]...)
			return
		}
	}
}

// addActiveTask adds taskID to the active set with set-union semantics.
func addActiveTask(p *model.UserProgress, taskID string) {
	for _, id := range p.ActiveTasks {
		if id == taskID {
			return
		}
	}
	p.ActiveTasks = append(p.ActiveTasks, taskID)
}
