package app

import (
	"secaware_backend/docs"
	"secaware_backend/internal/config"
	"secaware_backend/internal/middleware"
	"secaware_backend/internal/model"
	"secaware_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api/auth")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)

	group.PUT("/users/profile", c.user.UpdateProfile)
	group.POST("/users/avatar", c.user.UploadAvatar)

	group.GET("/modules", c.module.List)
	group.GET("/modules/:id", c.module.Get)

	session := group.Group("/session")
	{
		session.POST("", c.session.Start)
		session.GET("", c.session.Current)
		session.DELETE("", c.session.Reset)
		session.POST("/messages", c.session.AddMessage)
		session.PATCH("/score", c.session.UpdateScore)
		session.POST("/next", c.session.NextScenario)
		session.GET("/scenario", c.session.Scenario)
		session.POST("/answer", c.session.SubmitAnswer)
		session.POST("/end", c.session.End)
	}

	progress := group.Group("/progress")
	{
		progress.GET("", c.progress.Get)
		progress.DELETE("", c.progress.Reset)
		progress.GET("/badges", c.progress.Badges)
	}

	group.GET("/leaderboard", c.leaderboard.Top)
	group.GET("/leaderboard/rank", c.leaderboard.Rank)

	group.GET("/settings", c.settings.Get)
	group.PATCH("/settings", c.settings.Update)

	group.POST("/coach/chat", c.coach.Chat)
	group.POST("/coach/chat/stream", c.coach.ChatStream)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.List)
		admin.POST("/modules/:id/intro-video", c.module.UploadIntroVideo)
	}
}
