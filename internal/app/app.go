package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/controller"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/service"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/database"
	"vocab_edu_backend/pkg/logger"
	"vocab_edu_backend/pkg/monitoring"
	"vocab_edu_backend/pkg/security"
	"vocab_edu_backend/pkg/tracing"

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
	user      *repository.UserRepository
	book      *repository.VocabularyBookRepository
	word      *repository.VocabularyWordRepository
	selection *repository.UserVocabularyBookRepository
	progress  *repository.WordProgressRepository
	session   *repository.StudySessionRepository
	daily     *repository.DailyProgressRepository
	settings  *repository.UserSettingsRepository
	stats     *repository.UserStatsRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	storage  *service.StorageService
	book     *service.BookService
	study    *service.StudyService
	stats    *service.StatsService
	settings *service.SettingsService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	book     *controller.BookController
	study    *controller.StudyController
	stats    *controller.StatsController
	settings *controller.SettingsController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置文件热更新入口，逐个通知已注册的回调
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		book:      repository.NewVocabularyBookRepository(db),
		word:      repository.NewVocabularyWordRepository(db),
		selection: repository.NewUserVocabularyBookRepository(db),
		progress:  repository.NewWordProgressRepository(db),
		session:   repository.NewStudySessionRepository(db),
		daily:     repository.NewDailyProgressRepository(db),
		settings:  repository.NewUserSettingsRepository(db),
		stats:     repository.NewUserStatsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.book = service.NewBookService(db, repos.book, repos.word, repos.selection, repos.progress)
	s.study = service.NewStudyService(repos.progress, repos.word, repos.selection, cfg)
	s.stats = service.NewStatsService(repos.session, repos.stats, repos.daily, repos.settings, rdb, cfg)
	s.settings = service.NewSettingsService(repos.settings, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user, s.storage),
		book:     controller.NewBookController(s.book, s.storage),
		study:    controller.NewStudyController(s.study),
		stats:    controller.NewStatsController(s.stats),
		settings: controller.NewSettingsController(s.settings),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Redis 不可用时降级运行，统计接口直接查库
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, stats caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("vocab-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
