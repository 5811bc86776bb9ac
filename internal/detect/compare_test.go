package detect

import (
	"testing"

	"github.com/quillcheck/veridoc/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCompareDocumentsReportsMetrics(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	queryFP := GenerateFingerprints("q", text, 5)
	sourceFP := GenerateFingerprints("s", "prefix words here alpha beta gamma delta epsilon zeta eta theta iota kappa trailing", 5)

	result := CompareDocuments(queryFP, sourceFP, text, models.MatchSource{Type: models.SourceWeb}, DefaultCompareOptions())

	require.NotEmpty(t, result.Matches)
	require.Greater(t, result.PairCount, 0)
	require.Greater(t, result.Jaccard, float64(0))
	require.Greater(t, result.Containment, float64(0))
}

func TestCompareAgainstSourcesDeduplicatesAcrossSources(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	queryFP := GenerateFingerprints("q", text, 5)

	// Two sources containing the same span produce overlapping matches that
	// must collapse to one
	src := func(id string) SourceDocument {
		return SourceDocument{
			Fingerprints: GenerateFingerprints(id, text, 5),
			Source:       models.MatchSource{Type: models.SourceWeb, Title: id},
		}
	}

	agg := CompareAgainstSources(queryFP, text, []SourceDocument{src("a"), src("b")}, DefaultCompareOptions())

	require.Len(t, agg.Matches, 1)
	require.Equal(t, float64(100), agg.AggregateSimilarity)
	require.Equal(t, 12, agg.FingerprintsMatched) // 6 windows per source
}

func TestCompareAgainstSourcesEmptyCorpus(t *testing.T) {
	queryFP := GenerateFingerprints("q", "some short query text here now", 5)

	agg := CompareAgainstSources(queryFP, "some short query text here now", nil, DefaultCompareOptions())

	require.Empty(t, agg.Matches)
	require.Equal(t, float64(0), agg.AggregateSimilarity)
	require.Equal(t, 0, agg.FingerprintsMatched)
}
