package handler

import (
	"main/dto"
	"main/middleware"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type HabitHandler struct {
	service *usecase.HabitService
	goals   *usecase.GoalService
	catalog usecase.Catalog
}

func NewHabitHandler(service *usecase.HabitService, goals *usecase.GoalService, catalog usecase.Catalog) *HabitHandler {
	return &HabitHandler{service: service, goals: goals, catalog: catalog}
}

// CreateHabit wraps an existing catalog task as a daily habit.
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	task, err := h.catalog.GetTask(c.Request.Context(), req.TaskID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	habit, err := h.service.Create(c.Request.Context(), userID.(string), req.Title, req.Reason, task)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, dto.ToHabitResponse(habit))
}

// ListHabits refreshes daily and missed-day state before returning the
// user's habits.
func (h *HabitHandler) ListHabits(c *gin.Context) {
	ctx := c.Request.Context()
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	if err := h.service.ResetDailyStatus(ctx, userID.(string)); err != nil {
		utils.Error(c, err)
		return
	}
	if err := h.service.CheckAndHandleMissedDays(ctx, userID.(string)); err != nil {
		utils.Error(c, err)
		return
	}

	habits, err := h.service.List(ctx, userID.(string))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"habits": dto.ToHabitResponses(habits)})
}

// Sweep runs the day-boundary maintenance explicitly: reopen habits for
// the new day, lapse habits that missed a day, and archive expired goals.
// The same work runs opportunistically on the listing endpoints, so
// calling this is optional.
func (h *HabitHandler) Sweep(c *gin.Context) {
	ctx := c.Request.Context()
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	if err := h.service.ResetDailyStatus(ctx, userID.(string)); err != nil {
		utils.Error(c, err)
		return
	}
	if err := h.service.CheckAndHandleMissedDays(ctx, userID.(string)); err != nil {
		utils.Error(c, err)
		return
	}
	for _, tf := range []model.GoalTimeframe{model.TimeframeDaily, model.TimeframeMonthly, model.TimeframeYearly} {
		if _, err := h.goals.GetByTimeframe(ctx, userID.(string), tf); err != nil {
			utils.Error(c, err)
			return
		}
	}

	utils.Success(c, gin.H{"message": "Sweep complete"})
}

// CompleteHabit marks the habit backed by the given task as done for today.
// Repeats within the same day return the unchanged habit.
func (h *HabitHandler) CompleteHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	taskID := c.Param("taskId")
	habit, err := h.service.CompleteToday(c.Request.Context(), userID.(string), taskID)
	if err != nil {
		utils.Error(c, err)
		return
	}

	middleware.TrackCompletion(string(model.TaskHabit))
	utils.Success(c, dto.ToHabitResponse(habit))
}

// DeleteHabit removes a habit; past completion history stays on the
// progress record.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	habitID := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), userID.(string), habitID); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Habit deleted"})
}
