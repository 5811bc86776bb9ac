package detect

import (
	"github.com/quillcheck/veridoc/internal/models"
)

// hashSet deduplicates a fingerprint set down to its distinct hashes
func hashSet(fs *models.FingerprintSet) map[uint64]struct{} {
	if fs == nil {
		return map[uint64]struct{}{}
	}
	set := make(map[uint64]struct{}, len(fs.Fingerprints))
	for _, fp := range fs.Fingerprints {
		set[fp.Hash] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[uint64]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := 0
	for h := range a {
		if _, ok := b[h]; ok {
			shared++
		}
	}
	return shared
}

// JaccardSimilarity returns intersection-over-union of the two hash sets as a
// percentage. Empty union yields 0.
func JaccardSimilarity(a, b *models.FingerprintSet) float64 {
	setA := hashSet(a)
	setB := hashSet(b)

	shared := intersectionSize(setA, setB)
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}

	return float64(shared) / float64(union) * 100
}

// ContainmentSimilarity measures how much of the query is covered by the
// source: intersection over the query's hash count. Asymmetric; empty query
// yields 0.
func ContainmentSimilarity(query, source *models.FingerprintSet) float64 {
	setQ := hashSet(query)
	if len(setQ) == 0 {
		return 0
	}

	shared := intersectionSize(setQ, hashSet(source))
	return float64(shared) / float64(len(setQ)) * 100
}

// OverlapCoefficient returns intersection over the smaller set's size
func OverlapCoefficient(a, b *models.FingerprintSet) float64 {
	setA := hashSet(a)
	setB := hashSet(b)

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	if smaller == 0 {
		return 0
	}

	return float64(intersectionSize(setA, setB)) / float64(smaller) * 100
}

// WordBasedSimilarity converts matched-word coverage into a 0-100 score
func WordBasedSimilarity(totalWords, matchedWords int) float64 {
	if totalWords <= 0 {
		return 0
	}

	score := float64(matchedWords) / float64(totalWords) * 100
	if score > 100 {
		return 100
	}
	return score
}
