package app

import (
	"context"
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/controller"
	"ecolearn_backend/internal/middleware"
	"ecolearn_backend/internal/repository"
	"ecolearn_backend/internal/service"
	"ecolearn_backend/pkg/database"
	"ecolearn_backend/pkg/logger"
	"ecolearn_backend/pkg/monitoring"
	"ecolearn_backend/pkg/security"
	"ecolearn_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	lesson    *repository.LessonRepository
	challenge *repository.ChallengeRepository
	badge     *repository.BadgeRepository
	progress  *repository.ProgressRepository
	checkin   *repository.CheckinRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	progression *service.ProgressionService
	quiz        *service.QuizService
	catalog     *service.CatalogService
	content     *service.ContentService
	user        *service.UserService
	leaderboard *service.LeaderboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	lesson      *controller.LessonController
	challenge   *controller.ChallengeController
	badge       *controller.BadgeController
	leaderboard *controller.LeaderboardController
	content     *controller.ContentController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		lesson:    repository.NewLessonRepository(db),
		challenge: repository.NewChallengeRepository(db),
		badge:     repository.NewBadgeRepository(db),
		progress:  repository.NewProgressRepository(db),
		checkin:   repository.NewCheckinRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.progression = service.NewProgressionService(repos.user, repos.lesson, repos.challenge, repos.badge, repos.progress, cfg, db)
	s.quiz = service.NewQuizService(repos.lesson, s.progression, cfg)
	s.catalog = service.NewCatalogService(repos.lesson, repos.challenge, repos.badge, repos.progress)
	s.content = service.NewContentService(repos.lesson, repos.challenge, s.storage)
	s.user = service.NewUserService(repos.user, repos.checkin, repos.badge, repos.progress, s.progression)
	s.leaderboard = service.NewLeaderboardService(repos.user, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user, a.Config),
		user:        controller.NewUserController(s.user, s.storage, a.Config),
		lesson:      controller.NewLessonController(s.catalog, s.quiz, s.progression),
		challenge:   controller.NewChallengeController(s.catalog, s.progression),
		badge:       controller.NewBadgeController(s.catalog, s.progression),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		content:     controller.NewContentController(s.content),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
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

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, leaderboard cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ecolearn-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
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
