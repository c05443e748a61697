package handler

import (
	"main/dto"
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	service *usecase.ChallengeService
}

func NewChallengeHandler(service *usecase.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// ListTemplates exposes the read-only challenge catalog.
func (h *ChallengeHandler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, gin.H{"challenges": dto.ToChallengeTemplateResponses(templates)})
}

// JoinChallenge starts a fresh attempt at a challenge template.
func (h *ChallengeHandler) JoinChallenge(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	challengeID := c.Param("id")
	instance, err := h.service.Join(c.Request.Context(), userID.(string), challengeID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, dto.ToChallengeInstanceResponse(instance, h.service.ProgressPercent(instance)))
}

// ListActive returns the user's active challenge instances with derived
// progress, plus any whose cadence lapsed.
func (h *ChallengeHandler) ListActive(c *gin.Context) {
	ctx := c.Request.Context()
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	active, err := h.service.ListActive(ctx, userID.(string))
	if err != nil {
		utils.Error(c, err)
		return
	}
	failed, err := h.service.CheckFailed(ctx, userID.(string))
	if err != nil {
		utils.Error(c, err)
		return
	}

	responses := make([]dto.ChallengeInstanceResponse, 0, len(active))
	for i := range active {
		responses = append(responses, dto.ToChallengeInstanceResponse(&active[i], h.service.ProgressPercent(&active[i])))
	}
	failedIDs := make([]string, 0, len(failed))
	for i := range failed {
		failedIDs = append(failedIDs, failed[i].ChallengeID)
	}

	utils.Success(c, gin.H{"challenges": responses, "failed": failedIDs})
}

// GetFailed lists active instances whose cadence has lapsed. The client
// decides whether to reset or quit them.
func (h *ChallengeHandler) GetFailed(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	failed, err := h.service.CheckFailed(c.Request.Context(), userID.(string))
	if err != nil {
		utils.Error(c, err)
		return
	}

	responses := make([]dto.ChallengeInstanceResponse, 0, len(failed))
	for i := range failed {
		responses = append(responses, dto.ToChallengeInstanceResponse(&failed[i], h.service.ProgressPercent(&failed[i])))
	}
	utils.Success(c, gin.H{"challenges": responses})
}

// GetTodaysTasks lists challenge tasks still open for today.
func (h *ChallengeHandler) GetTodaysTasks(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	tasks, err := h.service.GetTodaysTasks(c.Request.Context(), userID.(string))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"tasks": dto.ToTodayChallengeTaskResponses(tasks)})
}

// CompleteTask records one challenge task completion.
func (h *ChallengeHandler) CompleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	challengeID := c.Param("id")
	taskID := c.Param("taskId")
	instance, err := h.service.CompleteTask(c.Request.Context(), userID.(string), challengeID, taskID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	middleware.TrackCompletion("challenge")
	utils.Success(c, dto.ToChallengeInstanceResponse(instance, h.service.ProgressPercent(instance)))
}

// ResetChallenge restarts an attempt in place.
func (h *ChallengeHandler) ResetChallenge(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	challengeID := c.Param("id")
	instance, err := h.service.ResetProgress(c.Request.Context(), userID.(string), challengeID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToChallengeInstanceResponse(instance, h.service.ProgressPercent(instance)))
}

// QuitChallenge retires an attempt without restarting it.
func (h *ChallengeHandler) QuitChallenge(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	challengeID := c.Param("id")
	if err := h.service.Quit(c.Request.Context(), userID.(string), challengeID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Challenge quit"})
}

// CompleteChallenge retires a finished attempt.
func (h *ChallengeHandler) CompleteChallenge(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	challengeID := c.Param("id")
	if err := h.service.Complete(c.Request.Context(), userID.(string), challengeID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Challenge completed"})
}
