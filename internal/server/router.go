package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mindease/mindease-backend/internal/handlers"
	"github.com/mindease/mindease-backend/internal/logger"
	"github.com/mindease/mindease-backend/internal/middleware"
	"github.com/mindease/mindease-backend/internal/utils"
)

type RouterConfig struct {
	Log                 *logger.Logger
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimiter         *middleware.RateLimiter
	HealthHandler       *handlers.HealthHandler
	ChatHandler         *handlers.ChatHandler
	MoodHandler         *handlers.MoodHandler
	ConversationHandler *handlers.ConversationHandler
	WellnessHandler     *handlers.WellnessHandler
	UserHandler         *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(cfg.Log))
	router.Use(otelgin.Middleware("mindease-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/chat/health", cfg.HealthHandler.ServiceHealth)
		api.GET("/chat/conversation-starter", cfg.ChatHandler.ConversationStarter)
		api.GET("/wellness/coping-strategies", cfg.WellnessHandler.CopingStrategies)
		api.GET("/wellness/quote", cfg.WellnessHandler.Quote)
		api.GET("/wellness/meditation-tips", cfg.WellnessHandler.MeditationTips)
		api.GET("/wellness/crisis-resources", cfg.WellnessHandler.Crisis)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Chat
	protected.POST("/chat/message", cfg.RateLimiter.Limit(), cfg.ChatHandler.SendMessage)
	protected.GET("/chat/history", cfg.ChatHandler.History)
	protected.POST("/chat/analyze-mood", cfg.RateLimiter.Limit(), cfg.ChatHandler.AnalyzeMood)
	// Mood
	protected.POST("/mood/log", cfg.MoodHandler.Log)
	protected.GET("/mood/latest", cfg.MoodHandler.Latest)
	protected.GET("/mood/history", cfg.MoodHandler.History)
	// Conversations
	protected.POST("/conversations", cfg.ConversationHandler.Create)
	protected.GET("/conversations", cfg.ConversationHandler.List)
	protected.GET("/conversations/:id", cfg.ConversationHandler.Get)
	protected.DELETE("/conversations/:id", cfg.ConversationHandler.Delete)
	protected.POST("/conversations/:id/messages", cfg.RateLimiter.Limit(), cfg.ConversationHandler.SendMessage)
	// Wellness activity log
	protected.POST("/wellness/activity", cfg.WellnessHandler.LogActivity)
	protected.GET("/wellness/activities", cfg.WellnessHandler.Activities)
	// User
	protected.GET("/user/me", cfg.UserHandler.Me)
	protected.GET("/user/stats", cfg.UserHandler.Stats)

	return router
}

func allowedOrigins() []string {
	raw := utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", nil)
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
