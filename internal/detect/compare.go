package detect

import (
	"github.com/quillcheck/veridoc/internal/models"
)

// CompareOptions tunes one document-to-document comparison
type CompareOptions struct {
	MaxGap       int // word-offset gap bridged during clustering
	MinWordCount int // clusters below this many words are dropped
}

// DefaultCompareOptions mirrors the engine's default configuration
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{MaxGap: DefaultMaxGap, MinWordCount: 5}
}

// SourceDocument is one corpus entry a query is compared against
type SourceDocument struct {
	Fingerprints *models.FingerprintSet
	Source       models.MatchSource
}

// ComparisonResult is the outcome of comparing the query against one source
type ComparisonResult struct {
	Matches     []models.PlagiarismMatch
	Jaccard     float64
	Containment float64
	PairCount   int
}

// AggregateComparison is the outcome of comparing the query against a corpus
type AggregateComparison struct {
	Matches             []models.PlagiarismMatch
	AggregateSimilarity float64
	FingerprintsMatched int
}

// CompareDocuments finds shared fingerprints between query and source,
// clusters them into regions, and reports typed matches alongside whole-set
// similarity metrics
func CompareDocuments(queryFP, sourceFP *models.FingerprintSet, queryText string, source models.MatchSource, opts CompareOptions) ComparisonResult {
	pairs := FindMatchingFingerprints(queryFP, sourceFP)
	clusters := ClusterMatches(pairs, opts.MaxGap, queryFP.NGramSize)

	return ComparisonResult{
		Matches:     ClustersToMatches(clusters, queryText, source, opts.MinWordCount),
		Jaccard:     JaccardSimilarity(queryFP, sourceFP),
		Containment: ContainmentSimilarity(queryFP, sourceFP),
		PairCount:   len(pairs),
	}
}

// CompareAgainstSources runs CompareDocuments against every source,
// deduplicates overlapping matches across sources, and aggregates a
// word-based similarity over the whole query
func CompareAgainstSources(queryFP *models.FingerprintSet, queryText string, sources []SourceDocument, opts CompareOptions) AggregateComparison {
	all := make([]models.PlagiarismMatch, 0)
	pairTotal := 0

	for _, src := range sources {
		result := CompareDocuments(queryFP, src.Fingerprints, queryText, src.Source, opts)
		all = append(all, result.Matches...)
		pairTotal += result.PairCount
	}

	deduped := DeduplicateMatches(all)

	matchedWords := 0
	for _, m := range deduped {
		matchedWords += m.WordCount
	}

	return AggregateComparison{
		Matches:             deduped,
		AggregateSimilarity: WordBasedSimilarity(queryFP.WordCount, matchedWords),
		FingerprintsMatched: pairTotal,
	}
}
