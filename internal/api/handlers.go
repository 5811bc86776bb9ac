package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quillcheck/veridoc/internal/config"
	"github.com/quillcheck/veridoc/internal/detect"
	"github.com/quillcheck/veridoc/internal/infra/redis"
	"github.com/quillcheck/veridoc/internal/metrics"
	"github.com/quillcheck/veridoc/internal/models"
	"github.com/quillcheck/veridoc/internal/repository"
	"github.com/rs/zerolog/log"
)

// Handler holds dependencies for handlers
type Handler struct {
	cfg           *config.Config
	documentsRepo *repository.DocumentsRepository
	resultsRepo   *repository.ResultsRepository
	engine        *detect.Engine
	redisClient   *redis.Client
	checkSem      chan struct{} // Semaphore for bounded concurrency
	checkTimeout  time.Duration
}

// NewHandler creates a new handler
func NewHandler(
	cfg *config.Config,
	documentsRepo *repository.DocumentsRepository,
	resultsRepo *repository.ResultsRepository,
	engine *detect.Engine,
	redisClient *redis.Client,
) *Handler {
	sem := make(chan struct{}, cfg.MaxConcurrentChecks)

	return &Handler{
		cfg:           cfg,
		documentsRepo: documentsRepo,
		resultsRepo:   resultsRepo,
		engine:        engine,
		redisClient:   redisClient,
		checkSem:      sem,
		checkTimeout:  cfg.CheckTimeout,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// Check accepts a full plagiarism check and runs it in the background.
// Responds 202 with a check id the client polls results by.
func (h *Handler) Check(c *gin.Context) {
	var req models.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	cfg := h.checkConfig(req.Config)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_CONFIG",
		})
		return
	}

	if req.UserID == "" {
		req.UserID = c.GetString("user_id")
	}

	ctx := c.Request.Context()

	// Acquire semaphore (bounded concurrency)
	select {
	case h.checkSem <- struct{}{}:
		// Acquired semaphore
	case <-ctx.Done():
		c.JSON(http.StatusRequestTimeout, ErrorResponse{
			Error: "Request cancelled",
			Code:  "REQUEST_TIMEOUT",
		})
		return
	}

	checkID := uuid.New().String()

	if err := detect.UpdateStatus(ctx, h.redisClient, checkID, models.StepQueued); err != nil {
		log.Warn().Err(err).Str("checkId", checkID).Msg("Failed to update queued status")
	}

	// Return 202 Accepted immediately
	c.JSON(http.StatusAccepted, models.CheckResponse{
		CheckID: checkID,
		Step:    models.StepQueued,
	})

	// Process asynchronously
	go h.processCheck(checkID, req, cfg)
}

// processCheck runs one plagiarism check in the background
func (h *Handler) processCheck(checkID string, req models.CheckRequest, cfg *models.PlagiarismConfig) {
	defer func() { <-h.checkSem }() // Release semaphore

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.checkTimeout)
	defer cancel()

	// Requests may omit the text and check a previously ingested document
	if req.Text == "" {
		doc, err := h.documentsRepo.GetDocumentByID(ctx, req.DocumentID)
		if err != nil || doc == nil {
			log.Error().Err(err).Str("checkId", checkID).Str("documentId", req.DocumentID).Msg("Document not found for check")
			if err := detect.UpdateStatus(ctx, h.redisClient, checkID, models.StepFailed); err != nil {
				log.Warn().Err(err).Str("checkId", checkID).Msg("Failed to update failed status")
			}
			metrics.CheckCount.WithLabelValues("failed").Inc()
			return
		}
		req.Text = doc.Content
		if req.UserID == "" {
			req.UserID = doc.UserID
		}
	}

	userDocuments, err := h.loadUserDocuments(ctx, req.UserID, cfg)
	if err != nil {
		// Degrade to no self-plagiarism corpus rather than failing the check
		log.Warn().Err(err).Str("userId", req.UserID).Msg("Failed to load user documents, continuing without corpus")
		userDocuments = nil
	}

	progress := func(step models.Step) {
		if err := detect.UpdateStatus(ctx, h.redisClient, checkID, step); err != nil {
			log.Warn().Err(err).Str("checkId", checkID).Str("step", string(step)).Msg("Failed to update check status")
		}
	}

	result, err := h.engine.DetectPlagiarismWithProgress(ctx, req.Text, req.DocumentID, userDocuments, cfg, progress)
	if err != nil {
		log.Error().Err(err).Str("checkId", checkID).Msg("Plagiarism check failed")
		metrics.CheckCount.WithLabelValues("failed").Inc()
		if err := detect.UpdateStatus(ctx, h.redisClient, checkID, models.StepFailed); err != nil {
			log.Warn().Err(err).Str("checkId", checkID).Msg("Failed to update failed status")
		}
		return
	}

	// Store under the check id so the accepted response's id resolves the result
	result.ID = checkID

	if err := h.resultsRepo.InsertResult(ctx, result); err != nil {
		log.Error().Err(err).Str("checkId", checkID).Msg("Failed to store result")
		metrics.CheckCount.WithLabelValues("failed").Inc()
		if err := detect.UpdateStatus(ctx, h.redisClient, checkID, models.StepFailed); err != nil {
			log.Warn().Err(err).Str("checkId", checkID).Msg("Failed to update failed status")
		}
		return
	}

	if err := detect.UpdateStatus(ctx, h.redisClient, checkID, models.StepCompleted); err != nil {
		log.Warn().Err(err).Str("checkId", checkID).Msg("Failed to update completed status")
	}

	metrics.CheckCount.WithLabelValues("completed").Inc()
	metrics.CheckDuration.Observe(time.Since(start).Seconds())

	log.Info().
		Str("checkId", checkID).
		Str("documentId", req.DocumentID).
		Float64("similarity", result.SimilarityScore).
		Str("classification", string(result.Classification)).
		Msg("Check completed")
}

// QuickCheck runs the synchronous reduced check and responds inline
func (h *Handler) QuickCheck(c *gin.Context) {
	var req models.QuickCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if req.UserID == "" {
		req.UserID = c.GetString("user_id")
	}

	ctx := c.Request.Context()

	var userDocuments []models.UserDocument
	if req.UserID != "" {
		docs, err := h.documentsRepo.GetDocumentsByUserID(ctx, req.UserID)
		if err != nil {
			log.Warn().Err(err).Str("userId", req.UserID).Msg("Failed to load user documents for quick check")
		} else {
			userDocuments = docs
		}
	}

	summary := h.engine.QuickCheck(req.Text, req.DocumentID, userDocuments)

	c.JSON(http.StatusOK, summary)
}

// GetResult fetches a stored result by check id
func (h *Handler) GetResult(c *gin.Context) {
	checkID := c.Param("id")
	if checkID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Check id required",
			Code:  "INVALID_CHECK_ID",
		})
		return
	}

	ctx := c.Request.Context()

	result, err := h.resultsRepo.GetResultByID(ctx, checkID)
	if err != nil {
		log.Error().Err(err).Str("checkId", checkID).Msg("Failed to fetch result")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to fetch result",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	if result == nil {
		step, err := h.redisClient.Get(ctx, "plagiarism_check_status:"+checkID).Result()
		if err == nil && step != "" {
			c.JSON(http.StatusOK, models.CheckResponse{CheckID: checkID, Step: models.Step(step)})
			return
		}
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("No result found for check %s", checkID),
			Code:  "RESULT_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDocumentResult fetches the most recent stored result for a document
func (h *Handler) GetDocumentResult(c *gin.Context) {
	documentID := c.Param("id")
	if documentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Document id required",
			Code:  "INVALID_DOCUMENT_ID",
		})
		return
	}

	result, err := h.resultsRepo.GetLatestResultByDocumentID(c.Request.Context(), documentID)
	if err != nil {
		log.Error().Err(err).Str("documentId", documentID).Msg("Failed to fetch document result")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to fetch result",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: fmt.Sprintf("No result found for document %s", documentID),
			Code:  "RESULT_NOT_FOUND",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// checkConfig merges request overrides onto the service defaults
func (h *Handler) checkConfig(override *models.PlagiarismConfig) *models.PlagiarismConfig {
	if override != nil {
		return override
	}

	cfg := models.DefaultPlagiarismConfig()
	cfg.NGramSize = h.cfg.NGramSize
	cfg.MinMatchLength = h.cfg.MinMatchLength
	return cfg
}

// loadUserDocuments fetches the self-plagiarism corpus when configured
func (h *Handler) loadUserDocuments(ctx context.Context, userID string, cfg *models.PlagiarismConfig) ([]models.UserDocument, error) {
	if userID == "" || !cfg.Checks.SelfPlagiarism || !cfg.Sources.UserDocuments {
		return nil, nil
	}
	return h.documentsRepo.GetDocumentsByUserID(ctx, userID)
}
