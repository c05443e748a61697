package handler

import (
	"errors"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func evaluatorStatus(eval *model.TaskEvaluation, err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, model.ErrSafetyRejected), eval != nil && !eval.IsValid:
		return "rejected"
	default:
		return "error"
	}
}

type TaskHandler struct {
	service *usecase.TaskService
	habits  *usecase.HabitService
}

func NewTaskHandler(service *usecase.TaskService, habits *usecase.HabitService) *TaskHandler {
	return &TaskHandler{service: service, habits: habits}
}

// CreateTask submits a user-authored task through the duplicate and
// evaluator gates. A safety rejection or rate limit carries the evaluator's
// feedback in the response body.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, eval, err := h.service.CreateUserTask(c.Request.Context(), userID.(string), req.Title, req.Description)
	// Duplicate and input validation fail before the evaluator runs; those
	// are not evaluator calls.
	if eval != nil || err == nil || errors.Is(err, model.ErrRateLimited) {
		middleware.TrackEvaluatorCall(evaluatorStatus(eval, err))
	}
	if err != nil {
		if eval != nil {
			utils.Error(c, err, eval)
			return
		}
		utils.Error(c, err)
		return
	}

	utils.Created(c, dto.ToCreatedTaskResponse(task, eval))
}

// GetActiveTasks returns the user's active task set resolved against the
// catalog. Daily habit state is refreshed first so listings after midnight
// never show yesterday's completion flags.
func (h *TaskHandler) GetActiveTasks(c *gin.Context) {
	ctx := c.Request.Context()
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	if err := h.habits.ResetDailyStatus(ctx, userID.(string)); err != nil {
		utils.Error(c, err)
		return
	}
	if err := h.habits.CheckAndHandleMissedDays(ctx, userID.(string)); err != nil {
		utils.Error(c, err)
		return
	}

	tasks, err := h.service.GetActiveTasks(ctx, userID.(string))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"tasks": dto.ToTaskResponses(tasks)})
}

// AssignTask adds an existing catalog task to the user's active set.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if err := h.service.AssignActive(c.Request.Context(), userID.(string), taskID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Task assigned"})
}

// CompleteTask records a completion exactly once for the current day.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	record, err := h.service.Complete(c.Request.Context(), userID.(string), taskID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	middleware.TrackCompletion(string(record.Type))
	utils.Success(c, dto.ToCompletionResponse(record))
}

// DeleteTask removes a user-generated task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), userID.(string), taskID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Task deleted"})
}
