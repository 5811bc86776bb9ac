package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quillcheck/veridoc/internal/detect"
	"github.com/quillcheck/veridoc/internal/metrics"
	"github.com/quillcheck/veridoc/internal/models"
	"github.com/quillcheck/veridoc/internal/repository"
)

// Service stores incoming user documents with pre-computed fingerprints so
// later self-plagiarism checks skip re-fingerprinting the corpus
type Service struct {
	documentsRepo *repository.DocumentsRepository
	ngramSize     int
}

func NewService(documentsRepo *repository.DocumentsRepository, ngramSize int) *Service {
	return &Service{
		documentsRepo: documentsRepo,
		ngramSize:     ngramSize,
	}
}

// maxUserDocuments bounds the per-user corpus. Every document past the cap
// would slow that user's self-plagiarism checks unboundedly.
const maxUserDocuments = 10000

// ProcessSubmission fingerprints a submitted document and stores it
func (s *Service) ProcessSubmission(ctx context.Context, submission *models.DocumentSubmission) error {
	if submission.UserID == "" {
		return fmt.Errorf("submission missing userId")
	}

	count, err := s.documentsRepo.CountDocumentsByUserID(ctx, submission.UserID)
	if err != nil {
		return fmt.Errorf("failed to count user documents: %w", err)
	}
	if count >= maxUserDocuments {
		return fmt.Errorf("user %s has reached the document limit of %d", submission.UserID, maxUserDocuments)
	}

	documentID := submission.DocumentID
	if documentID == "" {
		documentID = uuid.New().String()
	}

	fingerprints := detect.GenerateFingerprints(documentID, submission.Content, s.ngramSize)

	doc := &models.UserDocument{
		ID:           documentID,
		UserID:       submission.UserID,
		Title:        submission.Title,
		Content:      submission.Content,
		WordCount:    fingerprints.WordCount,
		Fingerprints: fingerprints,
		CreatedAt:    time.Now(),
	}

	if err := s.documentsRepo.InsertDocument(ctx, doc); err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	metrics.DocumentsIngested.Inc()

	return nil
}
