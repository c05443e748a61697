package dto

import (
	"main/model"
)

type ProgressResponse struct {
	UserID     string                            `json:"user_id"`
	Categories map[string]model.CategoryProgress `json:"categories"`
	Overall    model.OverallProgress             `json:"overall"`
	Stats      model.Stats                       `json:"stats"`
	Habits     int                               `json:"habit_count"`
	Challenges int                               `json:"active_challenge_count"`
	Goals      int                               `json:"goal_count"`
}

func ToProgressResponse(progress *model.UserProgress) ProgressResponse {
	activeChallenges := 0
	for _, instance := range progress.Challenges {
		if instance.Active {
			activeChallenges++
		}
	}
	return ProgressResponse{
		UserID:     progress.UserID,
		Categories: progress.Categories,
		Overall:    progress.Overall,
		Stats:      progress.Stats,
		Habits:     len(progress.Habits),
		Challenges: activeChallenges,
		Goals:      len(progress.Goals),
	}
}
