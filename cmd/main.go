package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mindease/mindease-backend/internal/db"
	"github.com/mindease/mindease-backend/internal/docstore"
	"github.com/mindease/mindease-backend/internal/handlers"
	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/middleware"
	"github.com/mindease/mindease-backend/internal/observability"
	"github.com/mindease/mindease-backend/internal/repos"
	"github.com/mindease/mindease-backend/internal/server"
	"github.com/mindease/mindease-backend/internal/services"
	"github.com/mindease/mindease-backend/internal/utils"
)

func main() {
	// Env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	shutdownOtel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "mindease-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOtel(shutdownCtx)
		}()
	}

	// Firestore. Init failure leaves the service running in degraded mode:
	// canned wellness content still works, storage-backed routes return 503.
	log.Info("Setting up Firestore from main...")
	fsService, err := db.NewFirestoreService(ctx, log)
	if err != nil {
		log.Warn("Firestore init failed, running in degraded mode", "error", err)
	}
	defer fsService.Close()

	// Document store
	var store docstore.Store
	if utils.GetEnv("STORE_MODE", "firestore", log) == "memory" {
		log.Warn("Using in-memory store, data will not survive a restart")
		store = docstore.NewMemory()
	} else {
		store = docstore.NewFirestore(fsService.Client(), log)
	}

	// Redis (optional, only backs rate limiting)
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis ping failed, rate limiting disabled", "error", err)
			rdb = nil
		}
	}

	// Repos
	log.Info("Setting up Repos from main...")
	moodRepo := repos.NewMoodLogRepo(store, log)
	chatRepo := repos.NewChatMessageRepo(store, log)
	convRepo := repos.NewConversationRepo(store, log)
	wellnessRepo := repos.NewWellnessActivityRepo(store, log)
	userRepo := repos.NewUserRepo(store, log)

	// Services
	log.Info("Setting up Services from main...")
	aiClient, err := services.NewGeminiClient(ctx, log)
	if err != nil {
		log.Warn("Gemini init failed, chat will be unavailable", "error", err)
		aiClient = nil
	}
	verifier := services.NewPhraseVerifier()
	chatService := services.NewChatService(aiClient, chatRepo, convRepo, moodRepo, verifier, log)
	moodService := services.NewMoodService(aiClient, moodRepo, log)
	convService := services.NewConversationService(convRepo, log)
	wellnessService, err := services.NewWellnessService(wellnessRepo, moodRepo, chatRepo, log, time.Now().UnixNano())
	if err != nil {
		log.Error("Could not load wellness content", "error", err)
		os.Exit(1)
	}
	tokenVerifier, err := services.NewTokenVerifier(ctx, fsService, log)
	if err != nil {
		log.Warn("Could not init token verifier, protected routes will reject", "error", err)
		tokenVerifier = services.NewDenyAllVerifier()
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	healthHandler := handlers.NewHealthHandler(func() handlers.ServiceStatus {
		return handlers.ServiceStatus{
			Storage: fsService.Available() || utils.GetEnv("STORE_MODE", "firestore", nil) == "memory",
			AI:      chatService.AIAvailable(),
		}
	})
	chatHandler := handlers.NewChatHandler(log, chatService, moodService)
	moodHandler := handlers.NewMoodHandler(log, moodService)
	convHandler := handlers.NewConversationHandler(log, convService, chatService)
	wellnessHandler := handlers.NewWellnessHandler(log, wellnessService)
	userHandler := handlers.NewUserHandler(log, userRepo, wellnessService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, tokenVerifier)
	rateLimiter := middleware.NewRateLimiter(
		rdb,
		log,
		utils.GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 20, log),
		time.Minute,
	)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		AuthMiddleware:      authMiddleware,
		RateLimiter:         rateLimiter,
		HealthHandler:       healthHandler,
		ChatHandler:         chatHandler,
		MoodHandler:         moodHandler,
		ConversationHandler: convHandler,
		WellnessHandler:     wellnessHandler,
		UserHandler:         userHandler,
	})

	port := utils.GetEnv("PORT", "5000", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
