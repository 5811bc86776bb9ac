package detect

import (
	"strings"

	"github.com/quillcheck/veridoc/internal/models"
)

// levenshteinDistance computes edit distance with the two-row DP over runes
func levenshteinDistance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// wordOverlapRatio returns shared distinct words over the larger word count
func wordOverlapRatio(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)

	larger := len(wordsA)
	if len(wordsB) > larger {
		larger = len(wordsB)
	}
	if larger == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}

	shared := 0
	seen := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := setA[w]; ok {
			shared++
		}
	}

	return float64(shared) / float64(larger)
}

// ClassifyMatchType decides how closely queryText tracks sourceText. The
// check order is fixed: exact equality, then edit-distance bands, then word
// overlap. Thresholds are tuned against this sequence.
func ClassifyMatchType(queryText, sourceText string) models.MatchType {
	normQuery := strings.ToLower(strings.TrimSpace(queryText))
	normSource := strings.ToLower(strings.TrimSpace(sourceText))

	if normQuery == normSource {
		return models.MatchExact
	}

	maxLen := len([]rune(normQuery))
	if l := len([]rune(normSource)); l > maxLen {
		maxLen = l
	}
	if maxLen > 0 {
		distance := levenshteinDistance(normQuery, normSource)
		similarity := 1 - float64(distance)/float64(maxLen)
		if similarity >= 0.95 {
			return models.MatchNearExact
		}
		if similarity >= 0.70 {
			return models.MatchParaphrase
		}
	}

	if wordOverlapRatio(normQuery, normSource) >= 0.5 {
		return models.MatchMosaic
	}

	return models.MatchStructural
}
