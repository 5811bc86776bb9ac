package detect

import (
	"sort"

	"github.com/google/uuid"
	"github.com/quillcheck/veridoc/internal/models"
)

// DefaultMaxGap is the largest word-offset gap bridged when clustering
// fingerprint hits into one region
const DefaultMaxGap = 2

// FingerprintPair couples a query fingerprint with a source fingerprint
// sharing the same hash
type FingerprintPair struct {
	Query  models.Fingerprint
	Source models.Fingerprint
}

// MatchCluster is a contiguous run of fingerprint pairs treated as one
// suspected plagiarized region of the query document
type MatchCluster struct {
	Pairs       []FingerprintPair
	StartOffset int
	EndOffset   int
	WordCount   int
	NGramSize   int
}

// FindMatchingFingerprints returns the query fingerprints whose hash also
// occurs in the source, paired with the source occurrence
func FindMatchingFingerprints(query, source *models.FingerprintSet) []FingerprintPair {
	if query == nil || source == nil {
		return nil
	}

	byHash := make(map[uint64]models.Fingerprint, len(source.Fingerprints))
	for _, fp := range source.Fingerprints {
		// First occurrence wins; later duplicates carry the same n-gram text
		if _, ok := byHash[fp.Hash]; !ok {
			byHash[fp.Hash] = fp
		}
	}

	pairs := make([]FingerprintPair, 0)
	for _, fp := range query.Fingerprints {
		if src, ok := byHash[fp.Hash]; ok {
			pairs = append(pairs, FingerprintPair{Query: fp, Source: src})
		}
	}

	return pairs
}

// ClusterMatches greedily groups pairs into contiguous regions of the query
// document. Pairs are sorted by query word offset; a gap of more than
// maxGap+1 word offsets starts a new cluster.
func ClusterMatches(pairs []FingerprintPair, maxGap, ngramSize int) []MatchCluster {
	if len(pairs) == 0 {
		return nil
	}

	sorted := make([]FingerprintPair, len(pairs))
	copy(sorted, pairs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Query.WordOffset < sorted[j].Query.WordOffset
	})

	clusters := make([]MatchCluster, 0)
	current := []FingerprintPair{sorted[0]}

	for _, pair := range sorted[1:] {
		prev := current[len(current)-1]
		if pair.Query.WordOffset-prev.Query.WordOffset <= maxGap+1 {
			current = append(current, pair)
			continue
		}
		clusters = append(clusters, buildCluster(current, ngramSize))
		current = []FingerprintPair{pair}
	}
	clusters = append(clusters, buildCluster(current, ngramSize))

	return clusters
}

func buildCluster(pairs []FingerprintPair, ngramSize int) MatchCluster {
	first := pairs[0].Query
	last := pairs[len(pairs)-1].Query

	return MatchCluster{
		Pairs:       pairs,
		StartOffset: first.Position,
		EndOffset:   last.Position + len(last.NGram),
		WordCount:   last.WordOffset - first.WordOffset + ngramSize,
		NGramSize:   ngramSize,
	}
}

// ClustersToMatches converts clusters into typed match records. Clusters
// shorter than minWordCount words are dropped. Similarity is the density of
// fingerprint hits over the cluster's matchable windows, capped at 100.
func ClustersToMatches(clusters []MatchCluster, originalText string, source models.MatchSource, minWordCount int) []models.PlagiarismMatch {
	matches := make([]models.PlagiarismMatch, 0, len(clusters))

	for _, cluster := range clusters {
		if cluster.WordCount < minWordCount {
			continue
		}

		start := clamp(cluster.StartOffset, 0, len(originalText))
		end := clamp(cluster.EndOffset, start, len(originalText))
		text := originalText[start:end]

		windows := cluster.WordCount - (cluster.NGramSize - 1)
		if windows < 1 {
			windows = 1
		}
		similarity := float64(len(cluster.Pairs)) / float64(windows) * 100
		if similarity > 100 {
			similarity = 100
		}

		matches = append(matches, models.PlagiarismMatch{
			ID:          uuid.New().String(),
			Text:        text,
			StartOffset: start,
			EndOffset:   end,
			Similarity:  similarity,
			WordCount:   cluster.WordCount,
			Type:        ClassifyMatchType(text, cluster.Pairs[0].Source.NGram),
			Source:      source,
		})
	}

	return matches
}

// DeduplicateMatches resolves overlapping matches, keeping whichever has the
// higher similarity. Spans overlapping in any way, partially or fully
// contained either direction, never survive together.
func DeduplicateMatches(matches []models.PlagiarismMatch) []models.PlagiarismMatch {
	if len(matches) == 0 {
		return []models.PlagiarismMatch{}
	}

	sorted := make([]models.PlagiarismMatch, len(matches))
	copy(sorted, matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartOffset < sorted[j].StartOffset
	})

	kept := make([]models.PlagiarismMatch, 0, len(sorted))
	for _, match := range sorted {
		replaced := false
		overlapped := false
		for i, existing := range kept {
			if !spansOverlap(match.StartOffset, match.EndOffset, existing.StartOffset, existing.EndOffset) {
				continue
			}
			overlapped = true
			if match.Similarity > existing.Similarity {
				kept[i] = match
				replaced = true
			}
			break
		}
		if !overlapped && !replaced {
			kept = append(kept, match)
		}
	}

	return kept
}

func spansOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
