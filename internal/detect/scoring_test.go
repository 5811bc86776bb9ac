package detect

import (
	"testing"

	"github.com/quillcheck/veridoc/internal/models"
	"github.com/stretchr/testify/require"
)

func TestGetClassificationBuckets(t *testing.T) {
	cases := []struct {
		score float64
		want  models.Classification
	}{
		{0, models.ClassificationOriginal},
		{10, models.ClassificationOriginal},
		{10.1, models.ClassificationAcceptable},
		{20, models.ClassificationAcceptable},
		{20.1, models.ClassificationNeedsReview},
		{40, models.ClassificationNeedsReview},
		{40.1, models.ClassificationConcerning},
		{60, models.ClassificationConcerning},
		{60.1, models.ClassificationHighRisk},
		{80, models.ClassificationHighRisk},
		{80.1, models.ClassificationCritical},
		{100, models.ClassificationCritical},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, GetClassification(tc.score), "score %.1f", tc.score)
	}
}

func TestGetConfidenceFloors(t *testing.T) {
	require.Equal(t, models.ConfidenceLow, GetConfidence(0))
	require.Equal(t, models.ConfidenceLow, GetConfidence(49))
	require.Equal(t, models.ConfidenceMedium, GetConfidence(50))
	require.Equal(t, models.ConfidenceMedium, GetConfidence(299))
	require.Equal(t, models.ConfidenceHigh, GetConfidence(300))
}
