package model

import "time"

type TaskType string
type TaskStatus string

const (
	TaskNormal        TaskType = "normal"
	TaskUserGenerated TaskType = "user-generated"
	TaskHabit         TaskType = "habit"

	TaskStatusActive   TaskStatus = "active"
	TaskStatusArchived TaskStatus = "archived"
)

// Task is an immutable template. Engines reference it by TaskID; completion
// state lives on the user's progress record, never on the template.
type Task struct {
	TaskID      string         `bson:"_id" json:"id"`
	Title       string         `bson:"title" json:"title" binding:"required"`
	Description string         `bson:"description" json:"description"`
	CategoryXP  map[string]int `bson:"category_xp" json:"category_xp"`
	Tags        []string       `bson:"tags,omitempty" json:"tags,omitempty"`
	Type        TaskType       `bson:"type" json:"type"`
	Status      TaskStatus     `bson:"status" json:"status"`
	CreatedBy   string         `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
}

// SafetyCheck is the evaluator's verdict on whether a proposed task is
// safe and healthy to create.
type SafetyCheck struct {
	Passed      bool     `json:"passed"`
	Concerns    []string `json:"concerns,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// TaskEvaluation is the structured output of the external task evaluator.
type TaskEvaluation struct {
	IsValid     bool           `json:"is_valid"`
	Categories  []string       `json:"categories"`
	CategoryXP  map[string]int `json:"category_xp"`
	Feedback    string         `json:"feedback"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags,omitempty"`
	SafetyCheck *SafetyCheck   `json:"safety_check,omitempty"`
}
