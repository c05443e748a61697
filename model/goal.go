package model

import "time"

type GoalTimeframe string
type GoalStatus string
type ReflectionOutcome string

const (
	TimeframeDaily   GoalTimeframe = "daily"
	TimeframeMonthly GoalTimeframe = "monthly"
	TimeframeYearly  GoalTimeframe = "yearly"

	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalArchived   GoalStatus = "archived"

	OutcomeSuccess ReflectionOutcome = "success"
	OutcomeFailure ReflectionOutcome = "failure"
)

type Reflection struct {
	Content   string            `bson:"content" json:"content"`
	Outcome   ReflectionOutcome `bson:"outcome" json:"outcome"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}

type Goal struct {
	GoalID         string        `bson:"_id" json:"id"`
	UserID         string        `bson:"user_id" json:"user_id"`
	Description    string        `bson:"description" json:"description" binding:"required"`
	Timeframe      GoalTimeframe `bson:"timeframe" json:"timeframe"`
	Status         GoalStatus    `bson:"status" json:"status"`
	Progress       int           `bson:"progress" json:"progress"` // 0-100
	Measurable     string        `bson:"measurable,omitempty" json:"measurable,omitempty"`
	Category       string        `bson:"category,omitempty" json:"category,omitempty"`
	Steps          []string      `bson:"steps,omitempty" json:"steps,omitempty"`
	ParentGoalID   string        `bson:"parent_goal_id,omitempty" json:"parent_goal_id,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	CompletedAt    time.Time     `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	Reflection     *Reflection   `bson:"reflection,omitempty" json:"reflection,omitempty"`
	ArchivedReason string        `bson:"archived_reason,omitempty" json:"archived_reason,omitempty"`
}

// ValidTimeframe reports whether t is one of the supported goal timeframes.
func ValidTimeframe(t GoalTimeframe) bool {
	switch t {
	case TimeframeDaily, TimeframeMonthly, TimeframeYearly:
		return true
	}
	return false
}
