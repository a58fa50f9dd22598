package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"oriental_miniapp_backend/internal/bot"
	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/repository"
	"oriental_miniapp_backend/internal/service"
	"oriental_miniapp_backend/pkg/database"
	"oriental_miniapp_backend/pkg/logger"
)

func main() {
	// 本地跑的时候从 .env 读环境变量，没有也不算错
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("数据库初始化失败", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, userRepo, materialRepo, progressRepo)

	b, err := bot.New(cfg, userRepo, analyticsSvc)
	if err != nil {
		logger.Log.Fatal("机器人初始化失败", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("收到退出信号，停止机器人")
		b.Stop()
	}()

	b.Start()
}
