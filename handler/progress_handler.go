package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	service *usecase.ProgressService
}

func NewProgressHandler(service *usecase.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// GetProgress returns the full per-user aggregate: levels, XP, stats and
// counts of the attached habit, challenge and goal state.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	progress, err := h.service.GetProgress(c.Request.Context(), userID.(string))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToProgressResponse(progress))
}

// GetStats returns the aggregate stats block alone.
func (h *ProgressHandler) GetStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), userID.(string))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, stats)
}
