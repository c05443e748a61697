package model

import "time"

type ChallengeFrequency string

const (
	FrequencyDaily  ChallengeFrequency = "daily"
	FrequencyWeekly ChallengeFrequency = "weekly"
)

type ChallengeTask struct {
	TaskID    string             `bson:"task_id" json:"task_id"`
	Frequency ChallengeFrequency `bson:"frequency" json:"frequency"`
}

// ChallengeTemplate is a read-only catalog entity.
type ChallengeTemplate struct {
	ChallengeID string          `bson:"_id" json:"id"`
	Title       string          `bson:"title" json:"title"`
	Description string          `bson:"description,omitempty" json:"description,omitempty"`
	Tasks       []ChallengeTask `bson:"tasks" json:"tasks"`
	Duration    int             `bson:"duration" json:"duration"` // days
	Difficulty  string          `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Categories  []string        `bson:"categories,omitempty" json:"categories,omitempty"`
}

type TaskProgress struct {
	TaskID         string      `bson:"task_id" json:"task_id"`
	CompletedDates []time.Time `bson:"completed_dates" json:"completed_dates"`
	StreakCount    int         `bson:"streak_count" json:"streak_count"`
	LastCompleted  time.Time   `bson:"last_completed,omitempty" json:"last_completed,omitempty"`
}

// ChallengeInstance is one user's attempt at a challenge template. The
// template fields are embedded as a snapshot taken at join time.
type ChallengeInstance struct {
	ChallengeTemplate `bson:",inline"`
	StartDate         time.Time      `bson:"start_date" json:"start_date"`
	Active            bool           `bson:"active" json:"active"`
	TaskProgress      []TaskProgress `bson:"task_progress" json:"task_progress"`
	Attempts          int            `bson:"attempts" json:"attempts"`
	JoinedAt          time.Time      `bson:"joined_at" json:"joined_at"`
}

// FindTaskProgress returns the progress entry for a templated task.
func (c *ChallengeInstance) FindTaskProgress(taskID string) *TaskProgress {
	for i := range c.TaskProgress {
		if c.TaskProgress[i].TaskID == taskID {
			return &c.TaskProgress[i]
		}
	}
	return nil
}

// TodayChallengeTask is a resolved task tagged with challenge metadata,
// returned by the today's-tasks listing.
type TodayChallengeTask struct {
	Task           Task               `json:"task"`
	ChallengeID    string             `json:"challenge_id"`
	ChallengeTitle string             `json:"challenge_title"`
	Frequency      ChallengeFrequency `json:"frequency"`
}
