package detect

import (
	"testing"

	"github.com/quillcheck/veridoc/internal/models"
	"github.com/stretchr/testify/require"
)

func pairAt(wordOffset, position int, ngram string) FingerprintPair {
	fp := models.Fingerprint{
		Hash:       hashNGram(ngram),
		Position:   position,
		NGram:      ngram,
		WordOffset: wordOffset,
	}
	return FingerprintPair{Query: fp, Source: fp}
}

func TestFindMatchingFingerprints(t *testing.T) {
	shared := "the committee approved the annual budget proposal without further debate"
	query := GenerateFingerprints("q", "intro words first "+shared, 5)
	source := GenerateFingerprints("s", shared+" closing remarks follow here", 5)

	pairs := FindMatchingFingerprints(query, source)
	require.NotEmpty(t, pairs)
	for _, p := range pairs {
		require.Equal(t, p.Query.Hash, p.Source.Hash)
	}

	unrelated := GenerateFingerprints("u", "entirely disjoint vocabulary occupies this particular sentence instead", 5)
	require.Empty(t, FindMatchingFingerprints(query, unrelated))
}

func TestClusterMatchesGapSplitting(t *testing.T) {
	pairs := []FingerprintPair{
		pairAt(0, 0, "a b c d e"),
		pairAt(1, 2, "b c d e f"),
		pairAt(2, 4, "c d e f g"),
		pairAt(10, 60, "x y z w v"),
	}

	clusters := ClusterMatches(pairs, 2, 5)

	require.Len(t, clusters, 2)
	require.Len(t, clusters[0].Pairs, 3)
	require.Equal(t, 2-0+5, clusters[0].WordCount)
	require.Len(t, clusters[1].Pairs, 1)
	require.Equal(t, 5, clusters[1].WordCount)
}

func TestClusterMatchesBridgesSmallGaps(t *testing.T) {
	// Gap of maxGap+1 word offsets still joins one cluster
	pairs := []FingerprintPair{
		pairAt(0, 0, "a b c d e"),
		pairAt(3, 18, "d e f g h"),
	}

	clusters := ClusterMatches(pairs, 2, 5)
	require.Len(t, clusters, 1)

	// One more offset apart splits
	pairs[1] = pairAt(4, 24, "e f g h i")
	clusters = ClusterMatches(pairs, 2, 5)
	require.Len(t, clusters, 2)
}

func TestClusterMatchesEmpty(t *testing.T) {
	require.Empty(t, ClusterMatches(nil, 2, 5))
}

func TestClustersToMatchesFiltersShortClusters(t *testing.T) {
	text := "alpha beta gamma delta epsilon"
	cluster := MatchCluster{
		Pairs:       []FingerprintPair{pairAt(0, 0, "alpha beta gamma delta epsilon")},
		StartOffset: 0,
		EndOffset:   len(text),
		WordCount:   5,
		NGramSize:   5,
	}
	source := models.MatchSource{Type: models.SourceUserDocument, Title: "doc"}

	require.Empty(t, ClustersToMatches([]MatchCluster{cluster}, text, source, 6))

	matches := ClustersToMatches([]MatchCluster{cluster}, text, source, 5)
	require.Len(t, matches, 1)
	require.Equal(t, text, matches[0].Text)
	require.Equal(t, float64(100), matches[0].Similarity)
	require.Equal(t, models.MatchExact, matches[0].Type)
	require.Less(t, matches[0].StartOffset, matches[0].EndOffset)
}

func TestDeduplicateMatchesKeepsHigherSimilarity(t *testing.T) {
	matches := []models.PlagiarismMatch{
		{ID: "low", StartOffset: 10, EndOffset: 50, Similarity: 60, WordCount: 8},
		{ID: "high", StartOffset: 10, EndOffset: 50, Similarity: 90, WordCount: 8},
	}

	kept := DeduplicateMatches(matches)
	require.Len(t, kept, 1)
	require.Equal(t, "high", kept[0].ID)
}

func TestDeduplicateMatchesPartialOverlap(t *testing.T) {
	matches := []models.PlagiarismMatch{
		{ID: "a", StartOffset: 0, EndOffset: 30, Similarity: 80},
		{ID: "b", StartOffset: 20, EndOffset: 60, Similarity: 50},
		{ID: "c", StartOffset: 100, EndOffset: 140, Similarity: 40},
	}

	kept := DeduplicateMatches(matches)
	require.Len(t, kept, 2)
	require.Equal(t, "a", kept[0].ID)
	require.Equal(t, "c", kept[1].ID)
}
