package controller

import (
	"secaware_backend/internal/service"
	"secaware_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsService *service.SettingsService
}

func NewSettingsController(settingsService *service.SettingsService) *SettingsController {
	return &SettingsController{SettingsService: settingsService}
}

// Get godoc
// @Summary Learner settings
// @Description Missing settings are created with defaults on first read.
// @Tags settings
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.UserSettings}
// @Router /api/settings [get]
func (c *SettingsController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	settings, err := c.SettingsService.Get(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// Update godoc
// @Summary Partially update learner settings
// @Description Only the fields present in the payload change.
// @Tags settings
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SettingsRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.UserSettings}
// @Router /api/settings [patch]
func (c *SettingsController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	settings, err := c.SettingsService.Update(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}
