package controller

import (
	"errors"
	"secaware_backend/internal/service"
	"secaware_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	CatalogService *service.CatalogService
	MediaService   *service.MediaService
}

func NewModuleController(catalogService *service.CatalogService, mediaService *service.MediaService) *ModuleController {
	return &ModuleController{
		CatalogService: catalogService,
		MediaService:   mediaService,
	}
}

// List godoc
// @Summary Training module catalog with per-user status
// @Tags modules
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ModuleView}
// @Router /api/modules [get]
func (c *ModuleController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	modules, err := c.CatalogService.ListForUser(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// Get godoc
// @Summary Single module with per-user status
// @Tags modules
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "module id"
// @Success 200 {object} util.Response{data=model.ModuleView}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [get]
func (c *ModuleController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.CatalogService.GetForUser(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// UploadIntroVideo godoc
// @Summary Attach an intro video to a module
// @Tags modules
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "module id"
// @Param   video formData file true "video file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/modules/{id}/intro-video [post]
func (c *ModuleController) UploadIntroVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	module, info, err := c.MediaService.UploadIntroVideo(ctx.Request.Context(), ctx.Param("id"), file, ctx.SaveUploadedFile)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"module": module,
		"video":  info,
	})
}
