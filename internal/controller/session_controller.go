package controller

import (
	"errors"
	"net/http"
	"secaware_backend/internal/engine"
	"secaware_backend/internal/model"
	"secaware_backend/internal/service"
	"secaware_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService  *service.SessionService
	SettingsService *service.SettingsService
}

func NewSessionController(sessionService *service.SessionService, settingsService *service.SettingsService) *SessionController {
	return &SessionController{
		SessionService:  sessionService,
		SettingsService: settingsService,
	}
}

type StartSessionRequest struct {
	ModuleID string `json:"moduleId" binding:"required"`
}

// Start godoc
// @Summary Start a training session for a module
// @Description Replaces any previous session. Locked or unknown modules fail without touching the existing session.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StartSessionRequest true "module to train"
// @Success 201 {object} util.Response{data=model.TrainingSession}
// @Failure 403 {object} util.Response "module locked"
// @Failure 404 {object} util.Response "module not found"
// @Router /api/session [post]
func (c *SessionController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Start(ctx.Request.Context(), user.UserID, req.ModuleID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrModuleNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrModuleLocked):
			util.Error(ctx, http.StatusForbidden, "module prerequisites not met")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

// Current godoc
// @Summary Current session state
// @Tags sessions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.TrainingSession}
// @Router /api/session [get]
func (c *SessionController) Current(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.SessionService.Current(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

type AddMessageRequest struct {
	Role     model.MessageRole      `json:"role" binding:"required,oneof=user assistant"`
	Content  string                 `json:"content" binding:"required"`
	Metadata *model.MessageMetadata `json:"metadata"`
}

// AddMessage godoc
// @Summary Append a message to the session transcript
// @Tags sessions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AddMessageRequest true "message"
// @Success 200 {object} util.Response{data=model.ChatMessage}
// @Failure 409 {object} util.Response "no active session"
// @Router /api/session/messages [post]
func (c *SessionController) AddMessage(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.SessionService.AddMessage(ctx.Request.Context(), user.UserID, req.Role, req.Content, req.Metadata)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, msg)
}

// Delta is a pointer so an explicit zero passes the required binding.
type UpdateScoreRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// UpdateScore godoc
// @Summary Apply a score delta to the current session
// @Description The resulting score is clamped to the 0 to 100 range.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body UpdateScoreRequest true "score delta"
// @Success 200 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "no active session"
// @Router /api/session/score [patch]
func (c *SessionController) UpdateScore(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	score, err := c.SessionService.UpdateScore(ctx.Request.Context(), user.UserID, *req.Delta)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"score": score})
}

// NextScenario godoc
// @Summary Advance the session to the next scenario
// @Description Clears the step transcript and the consumed scenario. The running score is kept.
// @Tags sessions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.TrainingSession}
// @Failure 409 {object} util.Response "no active session"
// @Router /api/session/next [post]
func (c *SessionController) NextScenario(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.SessionService.NextScenario(ctx.Request.Context(), user.UserID)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Scenario godoc
// @Summary Current scenario, generating one if needed
// @Description Difficulty comes from the learner's settings unless overridden by the difficulty query parameter.
// @Tags sessions
// @Produce  json
// @Security BearerAuth
// @Param   difficulty query string false "beginner, intermediate, advanced or expert"
// @Success 200 {object} util.Response{data=model.Scenario}
// @Failure 409 {object} util.Response "generation already pending"
// @Router /api/session/scenario [get]
func (c *SessionController) Scenario(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	difficulty := model.Difficulty(ctx.Query("difficulty"))
	if difficulty == "" {
		settings, err := c.SettingsService.Get(user.UserID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		difficulty = settings.Difficulty
	}

	scenario, err := c.SessionService.LoadScenario(ctx.Request.Context(), user.UserID, difficulty)
	if err != nil {
		if errors.Is(err, util.ErrGenerationPending) {
			util.Conflict(ctx, "scenario generation already in progress")
			return
		}
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, scenario)
}

type AnswerRequest struct {
	Verdict *bool `json:"verdict" binding:"required"`
}

// SubmitAnswer godoc
// @Summary Judge the learner's verdict on the current scenario
// @Tags sessions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AnswerRequest true "true if the learner flags the scenario as an attack or secure, per module type"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 409 {object} util.Response "no active session or scenario"
// @Router /api/session/answer [post]
func (c *SessionController) SubmitAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SessionService.SubmitAnswer(ctx.Request.Context(), user.UserID, *req.Verdict)
	if err != nil {
		if errors.Is(err, util.ErrNoActiveScenario) {
			util.Conflict(ctx, "no scenario to answer")
			return
		}
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// End godoc
// @Summary Finish the session and collect feedback
// @Description Closes the attempt, computes feedback and applies XP, streak, module progress and badges.
// @Tags sessions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.EndOutcome}
// @Failure 409 {object} util.Response "no active session"
// @Router /api/session/end [post]
func (c *SessionController) End(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	outcome, err := c.SessionService.End(ctx.Request.Context(), user.UserID)
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}

// Reset godoc
// @Summary Discard the current session
// @Tags sessions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/session [delete]
func (c *SessionController) Reset(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SessionService.Reset(ctx.Request.Context(), user.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"reset": true})
}

func (c *SessionController) sessionError(ctx *gin.Context, err error) {
	if errors.Is(err, engine.ErrInactiveSession) {
		util.Conflict(ctx, "no active session")
		return
	}
	util.LogInternalError(ctx, err)
}
