package controller

import (
	"secaware_backend/internal/service"
	"secaware_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressionService *service.ProgressionService
}

func NewProgressController(progressionService *service.ProgressionService) *ProgressController {
	return &ProgressController{ProgressionService: progressionService}
}

// Get godoc
// @Summary Learner progression snapshot
// @Description Level, XP, streak, per-module progress and earned badges.
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Router /api/progress [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressionService.GetProgress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Badges godoc
// @Summary Earned badges
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/progress/badges [get]
func (c *ProgressController) Badges(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressionService.GetProgress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress.Badges)
}

// Reset godoc
// @Summary Reset all progression to the initial state
// @Description Level 1, zero XP, no badges, empty module progress. Irreversible.
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Router /api/progress [delete]
func (c *ProgressController) Reset(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressionService.ResetProgress(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
