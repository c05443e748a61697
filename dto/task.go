package dto

import (
	"main/model"
	"time"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type TaskResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	CategoryXP  map[string]int `json:"category_xp"`
	Tags        []string       `json:"tags,omitempty"`
	Type        model.TaskType `json:"type"`
	CreatedAt   time.Time      `json:"created_at"`
}

func ToTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.TaskID,
		Title:       task.Title,
		Description: task.Description,
		CategoryXP:  task.CategoryXP,
		Tags:        task.Tags,
		Type:        task.Type,
		CreatedAt:   task.CreatedAt,
	}
}

func ToTaskResponses(tasks []*model.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, ToTaskResponse(task))
	}
	return responses
}

// CreatedTaskResponse pairs the stored task with the evaluator's feedback
// so the client can show why the XP landed where it did.
type CreatedTaskResponse struct {
	Task       TaskResponse `json:"task"`
	Feedback   string       `json:"feedback,omitempty"`
	Categories []string     `json:"categories,omitempty"`
}

func ToCreatedTaskResponse(task *model.Task, eval *model.TaskEvaluation) CreatedTaskResponse {
	response := CreatedTaskResponse{Task: ToTaskResponse(task)}
	if eval != nil {
		response.Feedback = eval.Feedback
		response.Categories = eval.Categories
	}
	return response
}

type CompletionResponse struct {
	TaskID      string         `json:"task_id"`
	Type        model.TaskType `json:"type"`
	CompletedAt time.Time      `json:"completed_at"`
	ChallengeID string         `json:"challenge_id,omitempty"`
	HabitID     string         `json:"habit_id,omitempty"`
}

func ToCompletionResponse(record *model.CompletionRecord) CompletionResponse {
	return CompletionResponse{
		TaskID:      record.TaskID,
		Type:        record.Type,
		CompletedAt: record.CompletedAt,
		ChallengeID: record.ChallengeID,
		HabitID:     record.HabitID,
	}
}
