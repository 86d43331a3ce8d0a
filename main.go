package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kurrle/espresso-helper/internal/bot"
	"github.com/kurrle/espresso-helper/internal/bot/handlers"
	"github.com/kurrle/espresso-helper/internal/bot/state"
	"github.com/kurrle/espresso-helper/internal/config"
	"github.com/kurrle/espresso-helper/internal/database"
	"github.com/kurrle/espresso-helper/internal/logger"
	"github.com/kurrle/espresso-helper/internal/repository"
	"github.com/kurrle/espresso-helper/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	logger.Info("Starting Espresso Helper Bot...")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	beanRepo := repository.NewBeanRepository(db)
	shotRepo := repository.NewShotRepository(db)
	userRepo := repository.NewUserRepository(db)

	aiService, err := services.NewAIService(ctx, cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
	if err != nil {
		logger.Fatalf("Failed to initialize AI service: %v", err)
	}
	if !aiService.Enabled() {
		logger.Warn("No AI API keys configured, taste description analysis is disabled")
	}

	deps := handlers.Dependencies{
		UserService: services.NewUserService(userRepo),
		BeanSvc:     services.NewBeanService(beanRepo),
		ShotSvc:     services.NewShotService(shotRepo, beanRepo),
		AdviceSvc:   services.NewAdviceService(),
		AISvc:       aiService,
	}

	var stateManager state.StateManager
	if cfg.Redis.Enabled {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Warningf("Failed to connect to Redis, falling back to in-memory state: %v", err)
			stateManager = state.NewManager()
		} else {
			logger.Info("Using Redis-backed dialog state")
			stateManager = redisManager
		}
	} else {
		stateManager = state.NewManager()
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Infof("Received signal %s, shutting down", sig)
		cancel()
	}()

	if err := telegramBot.Start(ctx); err != nil && err != context.Canceled {
		logger.Fatalf("Bot stopped with error: %v", err)
	}
}
