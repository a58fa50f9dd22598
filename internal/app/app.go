package app

import (
	"context"
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

	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/controller"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/pkg/database"
	"oriental_miniapp_backend/pkg/logger"
	"oriental_miniapp_backend/pkg/monitoring"
	"oriental_miniapp_backend/pkg/security"
	"oriental_miniapp_backend/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	direction   *repository.DirectionRepository
	course      *repository.CourseRepository
	material    *repository.MaterialRepository
	progress    *repository.ProgressRepository
	favorite    *repository.FavoriteRepository
	achievement *repository.AchievementRepository
	challenge   *repository.ChallengeRepository
	note        *repository.NoteRepository
	analytics   *repository.AnalyticsRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	content     *service.ContentService
	progress    *service.ProgressService
	achievement *service.AchievementService
	challenge   *service.ChallengeService
	favorite    *service.FavoriteService
	note        *service.NoteService
	analytics   *service.AnalyticsService
	storage     *service.StorageService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	content     *controller.ContentController
	progress    *controller.ProgressController
	achievement *controller.AchievementController
	challenge   *controller.ChallengeController
	analytics   *controller.AnalyticsController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		direction:   repository.NewDirectionRepository(db),
		course:      repository.NewCourseRepository(db),
		material:    repository.NewMaterialRepository(db),
		progress:    repository.NewProgressRepository(db),
		favorite:    repository.NewFavoriteRepository(db),
		achievement: repository.NewAchievementRepository(db),
		challenge:   repository.NewChallengeRepository(db),
		note:        repository.NewNoteRepository(db),
		analytics:   repository.NewAnalyticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.user = service.NewUserService(repos.user, repos.direction, repos.progress, repos.achievement)
	s.auth = service.NewAuthService(repos.user, s.user, cfg)
	s.analytics = service.NewAnalyticsService(repos.analytics, repos.user, repos.material, repos.progress)
	s.content = service.NewContentService(repos.direction, repos.course, repos.material, repos.progress, s.analytics)
	s.achievement = service.NewAchievementService(repos.achievement, repos.progress, repos.user, db, rdb)
	s.challenge = service.NewChallengeService(repos.challenge, repos.user)
	s.progress = service.NewProgressService(repos.progress, repos.material, repos.user, s.achievement, s.challenge, db)
	s.favorite = service.NewFavoriteService(repos.favorite, repos.material)
	s.note = service.NewNoteService(repos.note, repos.material)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user, s.favorite, s.note),
		content:     controller.NewContentController(s.content, s.storage),
		progress:    controller.NewProgressController(s.progress),
		achievement: controller.NewAchievementController(s.achievement),
		challenge:   controller.NewChallengeController(s.challenge),
		analytics:   controller.NewAnalyticsController(s.analytics),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("数据库初始化失败", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis 不可用，排行榜缓存关闭", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, db, rdb)
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("oriental-miniapp", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("追踪初始化失败", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, svcs, cfg)

	if cfg.Storage.Type != "minio" {
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
		logger.Log.Info("服务启动", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("收到退出信号，开始关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.Redis != nil {
		a.Redis.Close()
	}
	logger.Log.Sync()
}
