package detect

import (
	"github.com/quillcheck/veridoc/internal/models"
)

// GetClassification buckets a 0-100 similarity score. Boundaries are
// inclusive on the lower bucket.
func GetClassification(similarityScore float64) models.Classification {
	switch {
	case similarityScore <= 10:
		return models.ClassificationOriginal
	case similarityScore <= 20:
		return models.ClassificationAcceptable
	case similarityScore <= 40:
		return models.ClassificationNeedsReview
	case similarityScore <= 60:
		return models.ClassificationConcerning
	case similarityScore <= 80:
		return models.ClassificationHighRisk
	default:
		return models.ClassificationCritical
	}
}

// Word-count floors separating confidence levels. Short documents give the
// fingerprinter too little coverage for a reliable score.
const (
	confidenceMediumFloor = 50
	confidenceHighFloor   = 300
)

// GetConfidence scales with document length: longer documents yield
// statistically more reliable fingerprint coverage
func GetConfidence(wordCount int) models.Confidence {
	switch {
	case wordCount < confidenceMediumFloor:
		return models.ConfidenceLow
	case wordCount < confidenceHighFloor:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceHigh
	}
}
