package model

import "time"

type CategoryProgress struct {
	Level int `bson:"level" json:"level"`
	XP    int `bson:"xp" json:"xp"`
}

type OverallProgress struct {
	Level    int `bson:"level" json:"level"`
	XP       int `bson:"xp" json:"xp"`
	Prestige int `bson:"prestige" json:"prestige"`
}

// CompletionRecord is append-only evidence of one discrete completion event.
// The uniqueness key for same-day idempotency is (task id, type, calendar day).
type CompletionRecord struct {
	TaskID      string    `bson:"task_id" json:"task_id"`
	Type        TaskType  `bson:"type" json:"type"`
	CompletedAt time.Time `bson:"completed_at" json:"completed_at"`
	ChallengeID string    `bson:"challenge_id,omitempty" json:"challenge_id,omitempty"`
	HabitID     string    `bson:"habit_id,omitempty" json:"habit_id,omitempty"`
}

type Stats struct {
	TotalTasksCompleted int       `bson:"total_tasks_completed" json:"total_tasks_completed"`
	CurrentStreak       int       `bson:"current_streak" json:"current_streak"`
	LongestStreak       int       `bson:"longest_streak" json:"longest_streak"`
	TodayCompletedTasks int       `bson:"today_completed_tasks" json:"today_completed_tasks"`
	ChallengesCompleted []string  `bson:"challenges_completed" json:"challenges_completed"`
	GoalsCompleted      int       `bson:"goals_completed" json:"goals_completed"`
	GoalCompletionRate  float64   `bson:"goal_completion_rate" json:"goal_completion_rate"`
	LastCompletionAt    time.Time `bson:"last_completion_at,omitempty" json:"last_completion_at,omitempty"`
}

// UserProgress is the per-user aggregate. It is the only shared mutable
// resource in the engine; every write goes through a version
// compare-and-swap, so Version must round-trip untouched between Get and Save.
type UserProgress struct {
	UserID         string                      `bson:"_id" json:"user_id"`
	Version        int64                       `bson:"version" json:"-"`
	Categories     map[string]CategoryProgress `bson:"categories" json:"categories"`
	Overall        OverallProgress             `bson:"overall" json:"overall"`
	CompletedTasks []CompletionRecord          `bson:"completed_tasks" json:"completed_tasks"`
	ActiveTasks    []string                    `bson:"active_tasks" json:"active_tasks"`
	Habits         map[string]Habit            `bson:"habits" json:"habits"`
	Challenges     []ChallengeInstance         `bson:"challenges" json:"challenges"`
	Goals          map[string]Goal             `bson:"goals" json:"goals"`
	Stats          Stats                       `bson:"stats" json:"stats"`
	LastDailyReset time.Time                   `bson:"last_daily_reset,omitempty" json:"-"`
	CreatedAt      time.Time                   `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time                   `bson:"updated_at" json:"updated_at"`
}

// NewUserProgress returns an empty aggregate for a user seen for the
// first time.
func NewUserProgress(userID string, now time.Time) *UserProgress {
	return &UserProgress{
		UserID:     userID,
		Categories: make(map[string]CategoryProgress),
		Overall:    OverallProgress{Level: 1},
		Habits:     make(map[string]Habit),
		Goals:      make(map[string]Goal),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// FindChallenge returns the instance with the given challenge id, or nil.
func (p *UserProgress) FindChallenge(challengeID string) *ChallengeInstance {
	for i := range p.Challenges {
		if p.Challenges[i].ChallengeID == challengeID {
			return &p.Challenges[i]
		}
	}
	return nil
}

// HabitIDByTaskID locates the habit whose embedded task matches taskID.
// Callers mutate a copy and write it back under the returned key.
func (p *UserProgress) HabitIDByTaskID(taskID string) (string, bool) {
	for id, h := range p.Habits {
		if h.Task.TaskID == taskID {
			return id, true
		}
	}
	return "", false
}

// HasChallengeCompleted reports whether the challenge id is already recorded
// in stats (set-union semantics, never appended twice).
func (p *UserProgress) HasChallengeCompleted(challengeID string) bool {
	for _, id := range p.Stats.ChallengesCompleted {
		if id == challengeID {
			return true
		}
	}
	return false
}
