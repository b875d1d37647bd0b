package controller

import (
	"secaware_backend/internal/service"
	"secaware_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CoachController struct {
	CoachService *service.CoachService
}

func NewCoachController(coachService *service.CoachService) *CoachController {
	return &CoachController{CoachService: coachService}
}

// Chat godoc
// @Summary Ask the security coach
// @Description Non-streaming variant. The mode selects the coach persona; unknown modes fall back to general coaching.
// @Tags coach
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CoachRequest true "conversation so far"
// @Success 200 {object} util.Response{data=object}
// @Failure 502 {object} util.Response "upstream model unavailable"
// @Router /api/coach/chat [post]
func (c *CoachController) Chat(ctx *gin.Context) {
	var req service.CoachRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.CoachService.Chat(ctx.Request.Context(), req)
	if err != nil {
		util.Error(ctx, 502, "coach unavailable")
		return
	}
	util.Success(ctx, gin.H{"reply": reply})
}

// ChatStream godoc
// @Summary Ask the security coach, streamed
// @Description Server-sent events: message events carry reply chunks, then an end event.
// @Tags coach
// @Accept  json
// @Produce  text/event-stream
// @Security BearerAuth
// @Param   body body service.CoachRequest true "conversation so far"
// @Success 200 {string} string "SSE stream"
// @Router /api/coach/chat/stream [post]
func (c *CoachController) ChatStream(ctx *gin.Context) {
	var req service.CoachRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stream, errChan := c.CoachService.ChatStream(req)

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Transfer-Encoding", "chunked")

	for content := range stream {
		ctx.SSEvent("message", content)
		ctx.Writer.Flush()
	}

	if err := <-errChan; err != nil {
		ctx.SSEvent("error", err.Error())
		ctx.Writer.Flush()
	}

	ctx.SSEvent("end", "done")
	ctx.Writer.Flush()
}
