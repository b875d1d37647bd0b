package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"secaware_backend/internal/config"
	"secaware_backend/internal/controller"
	"secaware_backend/internal/repository"
	"secaware_backend/internal/service"
	"secaware_backend/pkg/database"
	"secaware_backend/pkg/logger"
	"secaware_backend/pkg/monitoring"
	"secaware_backend/pkg/security"
	"secaware_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	module      *repository.ModuleRepository
	session     *repository.SessionRepository
	progress    *repository.ProgressRepository
	settings    *repository.SettingsRepository
	leaderboard *repository.LeaderboardRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	media       *service.MediaService
	catalog     *service.CatalogService
	ai          *service.AIService
	scenarios   *service.ScenarioService
	progression *service.ProgressionService
	session     *service.SessionService
	coach       *service.CoachService
	leaderboard *service.LeaderboardService
	settings    *service.SettingsService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	module      *controller.ModuleController
	session     *controller.SessionController
	progress    *controller.ProgressController
	leaderboard *controller.LeaderboardController
	settings    *controller.SettingsController
	coach       *controller.CoachController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a reloaded configuration and notifies subscribers.
// Components that cache config values at construction keep them until restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		module:      repository.NewModuleRepository(db),
		session:     repository.NewSessionRepository(db),
		progress:    repository.NewProgressRepository(db, rdb),
		settings:    repository.NewSettingsRepository(db),
		leaderboard: repository.NewLeaderboardRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.media = service.NewMediaService(s.storage, repos.module)

	s.ai = service.NewAIService(cfg.AI)
	s.scenarios = service.NewScenarioService(s.ai)
	s.coach = service.NewCoachService(s.ai)

	s.catalog = service.NewCatalogService(repos.module, repos.progress, repos.session)
	s.progression = service.NewProgressionService(repos.progress, repos.leaderboard)
	s.session = service.NewSessionService(repos.session, s.catalog, s.scenarios, s.progression, cfg.Training)
	s.leaderboard = service.NewLeaderboardService(repos.leaderboard, repos.user)
	s.settings = service.NewSettingsService(repos.settings)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		user:        controller.NewUserController(s.user),
		module:      controller.NewModuleController(s.catalog, s.media),
		session:     controller.NewSessionController(s.session, s.settings),
		progress:    controller.NewProgressController(s.progression),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		settings:    controller.NewSettingsController(s.settings),
		coach:       controller.NewCoachController(s.coach),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("secaware-platform", cfg.Server.Mode, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
