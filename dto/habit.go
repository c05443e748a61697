package dto

import (
	"main/model"
	"time"
)

type CreateHabitRequest struct {
	Title  string `json:"title" binding:"required"`
	Reason string `json:"reason" binding:"required"`
	TaskID string `json:"task_id" binding:"required"`
}

type HabitResponse struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Reason         string       `json:"reason"`
	Task           TaskResponse `json:"task"`
	Streak         int          `json:"streak"`
	LongestStreak  int          `json:"longest_streak"`
	CompletedToday bool         `json:"completed_today"`
	CompletedDays  int          `json:"completed_days"`
	DaysRemaining  int          `json:"days_remaining"`
	Established    bool         `json:"established"`
	EstablishedAt  *time.Time   `json:"established_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

func ToHabitResponse(habit *model.Habit) HabitResponse {
	completed := habit.CompletedDayCount()
	remaining := model.EstablishDays - completed
	if remaining < 0 {
		remaining = 0
	}

	response := HabitResponse{
		ID:             habit.HabitID,
		Title:          habit.Title,
		Reason:         habit.Reason,
		Task:           ToTaskResponse(&habit.Task.Task),
		Streak:         habit.Streak,
		LongestStreak:  habit.LongestStreak,
		CompletedToday: habit.CompletedToday,
		CompletedDays:  completed,
		DaysRemaining:  remaining,
		Established:    habit.Established(),
		CreatedAt:      habit.CreatedAt,
	}
	if !habit.EstablishedAt.IsZero() {
		response.EstablishedAt = &habit.EstablishedAt
	}
	return response
}

func ToHabitResponses(habits []model.Habit) []HabitResponse {
	responses := make([]HabitResponse, 0, len(habits))
	for i := range habits {
		responses = append(responses, ToHabitResponse(&habits[i]))
	}
	return responses
}
