package dto

import (
	"main/model"
	"time"
)

type CreateGoalRequest struct {
	Description  string              `json:"description" binding:"required"`
	Timeframe    model.GoalTimeframe `json:"timeframe" binding:"required,timeframe"`
	Measurable   string              `json:"measurable"`
	Category     string              `json:"category"`
	Steps        []string            `json:"steps"`
	ParentGoalID string              `json:"parent_goal_id"`
}

type UpdateGoalProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

type ReflectionRequest struct {
	Content string                  `json:"content" binding:"required"`
	Outcome model.ReflectionOutcome `json:"outcome" binding:"required,outcome"`
}

type ArchiveGoalRequest struct {
	Reason string `json:"reason"`
}

type GoalResponse struct {
	ID             string              `json:"id"`
	Description    string              `json:"description"`
	Timeframe      model.GoalTimeframe `json:"timeframe"`
	Status         model.GoalStatus    `json:"status"`
	Progress       int                 `json:"progress"`
	Measurable     string              `json:"measurable,omitempty"`
	Category       string              `json:"category,omitempty"`
	Steps          []string            `json:"steps,omitempty"`
	ParentGoalID   string              `json:"parent_goal_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	CompletedAt    *time.Time          `json:"completed_at,omitempty"`
	Reflection     *model.Reflection   `json:"reflection,omitempty"`
	ArchivedReason string              `json:"archived_reason,omitempty"`
}

func ToGoalResponse(goal *model.Goal) GoalResponse {
	response := GoalResponse{
		ID:             goal.GoalID,
		Description:    goal.Description,
		Timeframe:      goal.Timeframe,
		Status:         goal.Status,
		Progress:       goal.Progress,
		Measurable:     goal.Measurable,
		Category:       goal.Category,
		Steps:          goal.Steps,
		ParentGoalID:   goal.ParentGoalID,
		CreatedAt:      goal.CreatedAt,
		Reflection:     goal.Reflection,
		ArchivedReason: goal.ArchivedReason,
	}
	if !goal.CompletedAt.IsZero() {
		response.CompletedAt = &goal.CompletedAt
	}
	return response
}

func ToGoalResponses(goals []model.Goal) []GoalResponse {
	responses := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		responses = append(responses, ToGoalResponse(&goals[i]))
	}
	return responses
}
