package handler

import (
	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type GoalHandler struct {
	service *usecase.GoalService
}

func NewGoalHandler(service *usecase.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	goal, err := h.service.Create(c.Request.Context(), userID.(string), usecase.CreateGoalInput{
		Description:  req.Description,
		Timeframe:    req.Timeframe,
		Measurable:   req.Measurable,
		Category:     req.Category,
		Steps:        req.Steps,
		ParentGoalID: req.ParentGoalID,
	})
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, dto.ToGoalResponse(goal))
}

// GetGoalsByTimeframe returns the live goals of one timeframe; expired
// goals are archived on the way out.
func (h *GoalHandler) GetGoalsByTimeframe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	timeframe := model.GoalTimeframe(c.Query("timeframe"))
	goals, err := h.service.GetByTimeframe(c.Request.Context(), userID.(string), timeframe)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"goals": dto.ToGoalResponses(goals)})
}

func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.UpdateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	goal, err := h.service.UpdateProgress(c.Request.Context(), userID.(string), c.Param("id"), *req.Progress)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToGoalResponse(goal))
}

func (h *GoalHandler) AddReflection(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.ReflectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	goal, err := h.service.AddReflection(c.Request.Context(), userID.(string), c.Param("id"), req.Content, req.Outcome)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToGoalResponse(goal))
}

func (h *GoalHandler) ArchiveGoal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	// The reason is optional; an empty body archives with no reason.
	var req dto.ArchiveGoalRequest
	_ = c.ShouldBindJSON(&req)

	goal, err := h.service.Archive(c.Request.Context(), userID.(string), c.Param("id"), req.Reason)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToGoalResponse(goal))
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Goal deleted"})
}
