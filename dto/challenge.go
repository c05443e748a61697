package dto

import (
	"main/model"
	"time"
)

type ChallengeTemplateResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Tasks       []model.ChallengeTask `json:"tasks"`
	Duration    int                   `json:"duration"`
	Difficulty  string                `json:"difficulty,omitempty"`
	Categories  []string              `json:"categories,omitempty"`
}

func ToChallengeTemplateResponse(template *model.ChallengeTemplate) ChallengeTemplateResponse {
	return ChallengeTemplateResponse{
		ID:          template.ChallengeID,
		Title:       template.Title,
		Description: template.Description,
		Tasks:       template.Tasks,
		Duration:    template.Duration,
		Difficulty:  template.Difficulty,
		Categories:  template.Categories,
	}
}

func ToChallengeTemplateResponses(templates []*model.ChallengeTemplate) []ChallengeTemplateResponse {
	responses := make([]ChallengeTemplateResponse, 0, len(templates))
	for _, template := range templates {
		responses = append(responses, ToChallengeTemplateResponse(template))
	}
	return responses
}

type ChallengeInstanceResponse struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Duration        int                  `json:"duration"`
	StartDate       time.Time            `json:"start_date"`
	Active          bool                 `json:"active"`
	ProgressPercent int                  `json:"progress_percent"`
	TaskProgress    []model.TaskProgress `json:"task_progress"`
	Attempts        int                  `json:"attempts"`
	JoinedAt        time.Time            `json:"joined_at"`
}

// ToChallengeInstanceResponse flattens an instance for the client;
// progressPercent is the elapsed-time figure computed by the service.
func ToChallengeInstanceResponse(instance *model.ChallengeInstance, progressPercent int) ChallengeInstanceResponse {
	return ChallengeInstanceResponse{
		ID:              instance.ChallengeID,
		Title:           instance.Title,
		Duration:        instance.Duration,
		StartDate:       instance.StartDate,
		Active:          instance.Active,
		ProgressPercent: progressPercent,
		TaskProgress:    instance.TaskProgress,
		Attempts:        instance.Attempts,
		JoinedAt:        instance.JoinedAt,
	}
}

type TodayChallengeTaskResponse struct {
	Task           TaskResponse             `json:"task"`
	ChallengeID    string                   `json:"challenge_id"`
	ChallengeTitle string                   `json:"challenge_title"`
	Frequency      model.ChallengeFrequency `json:"frequency"`
}

func ToTodayChallengeTaskResponses(tasks []model.TodayChallengeTask) []TodayChallengeTaskResponse {
	responses := make([]TodayChallengeTaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, TodayChallengeTaskResponse{
			Task:           ToTaskResponse(&tasks[i].Task),
			ChallengeID:    tasks[i].ChallengeID,
			ChallengeTitle: tasks[i].ChallengeTitle,
			Frequency:      tasks[i].Frequency,
		})
	}
	return responses
}
