package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quillcheck/veridoc/internal/api"
	"github.com/quillcheck/veridoc/internal/config"
	"github.com/quillcheck/veridoc/internal/configs/env"
	"github.com/quillcheck/veridoc/internal/detect"
	"github.com/quillcheck/veridoc/internal/infra/mongo"
	redisInfra "github.com/quillcheck/veridoc/internal/infra/redis"
	"github.com/quillcheck/veridoc/internal/ingest"
	"github.com/quillcheck/veridoc/internal/logger"
	"github.com/quillcheck/veridoc/internal/metrics"
	"github.com/quillcheck/veridoc/internal/repository"
	"github.com/quillcheck/veridoc/internal/sources"
	"github.com/quillcheck/veridoc/internal/stream"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := env.LoadEnv(); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env file, continuing with system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	logger.Init(cfg.LogLevel)
	log.Info().Msg("Starting VERIDOC server")

	// Initialize Prometheus metrics
	metrics.InitPrometheus()
	log.Info().Msg("Prometheus metrics initialized")

	// Start metrics server in separate goroutine on port 2112
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    ":2112",
		Handler: metricsMux,
	}
	go func() {
		log.Info().Str("port", "2112").Msg("Metrics server started")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Metrics server failed to start")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect MongoDB
	mongoClient, err := mongo.NewClient(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create MongoDB client")
	}
	defer mongoClient.Close(ctx)

	// Connect Redis
	redisClient, err := redisInfra.NewClient(ctx, cfg.RedisHost, cfg.RedisPassword, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Redis client")
	}
	defer redisClient.Close()

	// Initialize MongoDB repository
	mongoRepo := repository.NewMongoRepository(mongoClient)

	// Initialize repositories
	documentsRepo := repository.NewDocumentsRepository(mongoRepo)
	resultsRepo := repository.NewResultsRepository(mongoRepo)

	// Initialize worker pool and detection engine. The external source index
	// is optional; without it checks run against user documents only.
	workerPool := detect.NewWorkerPool(ctx)
	defer workerPool.Close()

	var sourceProvider detect.SourceProvider
	if cfg.IndexBaseURL != "" {
		sourceProvider = sources.NewIndexClient(cfg.IndexBaseURL, cfg.IndexAPIKey)
		log.Info().Str("indexBaseUrl", cfg.IndexBaseURL).Msg("External source index configured")
	} else {
		log.Info().Msg("No external source index configured, external lookups disabled")
	}

	engine := detect.NewEngine(sourceProvider, workerPool)

	// Initialize document ingestion service
	ingestSvc := ingest.NewService(documentsRepo, cfg.NGramSize)

	// Initialize retry handler
	retryHandler := stream.NewRetryHandler(redisClient.Client, cfg.RedisDeadLetterKey)

	router := api.SetupRoutes(cfg, documentsRepo, resultsRepo, engine, redisClient)

	// Start the ingest consumer unless this instance serves API traffic only
	if cfg.StreamConsumerEnabled {
		hostname, _ := os.Hostname()
		if hostname == "" {
			hostname = "unknown"
		}
		consumerName := fmt.Sprintf("consumer-%s-%d-%s", hostname, os.Getpid(), uuid.New().String()[:8])
		consumer := stream.NewConsumer(
			redisClient.Client,
			cfg.RedisStreamKey,
			cfg.RedisConsumerGroup,
			consumerName,
			ingestSvc,
			retryHandler,
			cfg.StreamRetentionDuration,
		)

		consumerCtx, consumerCancel := context.WithCancel(ctx)
		defer consumerCancel()
		go func() {
			if err := consumer.Start(consumerCtx); err != nil && err != context.Canceled {
				log.Error().Err(err).Msg("Redis consumer error")
			}
		}()
		log.Info().Str("consumer_name", consumerName).Msg("Redis stream consumer started")
	} else {
		log.Info().Msg("Stream consumer disabled, serving API only")
	}

	// Start Gin server - Gin handles all HTTP routing, middleware (auth, rate limiter), and request processing
	srv := api.StartServer(router, cfg.ServerPort)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down gracefully...")

	// Shutdown Gin server gracefully
	if err := api.ShutdownServer(srv, 30*time.Second); err != nil {
		log.Error().Err(err).Msg("Error shutting down Gin server")
	}

	// Shutdown metrics server gracefully
	metricsCtx, metricsCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer metricsCancel()
	if err := metricsServer.Shutdown(metricsCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down metrics server")
	}

	log.Info().Msg("Shutdown complete")
}
