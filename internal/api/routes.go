package api

import (
	"github.com/quillcheck/veridoc/internal/config"
	"github.com/quillcheck/veridoc/internal/detect"
	"github.com/quillcheck/veridoc/internal/infra/redis"
	"github.com/quillcheck/veridoc/internal/repository"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	cfg *config.Config,
	documentsRepo *repository.DocumentsRepository,
	resultsRepo *repository.ResultsRepository,
	engine *detect.Engine,
	redisClient *redis.Client,
) *gin.Engine {
	router := gin.Default()

	// Create handler
	handler := NewHandler(cfg, documentsRepo, resultsRepo, engine, redisClient)

	// Create rate limiter
	rateLimiter := NewRateLimiter(cfg.RateLimitRPS, int(cfg.RateLimitRPS*2))

	// Middleware
	router.Use(ErrorHandlerMiddleware())
	router.Use(MetricsMiddleware())

	// Health endpoint (no auth)
	router.GET("/health", handler.Health)

	// API routes (with auth and rate limiting)
	api := router.Group("/api/v1")
	api.Use(JWTAuthMiddleware(cfg.JWTSecret))
	api.Use(RateLimitMiddleware(rateLimiter))
	{
		api.POST("/check", handler.Check)
		api.POST("/quick-check", handler.QuickCheck)
		api.GET("/check/:id", handler.GetResult)
		api.GET("/documents/:id/result", handler.GetDocumentResult)
	}

	return router
}
