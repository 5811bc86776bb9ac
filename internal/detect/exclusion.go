package detect

import (
	"strings"

	"github.com/quillcheck/veridoc/internal/models"
)

// commonAcademicPhrases are boilerplate phrases that legitimately recur
// across unrelated academic texts. Matched case-insensitively against the
// normalized match text.
var commonAcademicPhrases = []string{
	"on the other hand",
	"in conclusion",
	"as a result",
	"in other words",
	"for example",
	"in addition",
	"it is important to note that",
	"it has been shown that",
	"according to the literature",
	"the results suggest that",
	"further research is needed",
	"to the best of our knowledge",
	"in recent years",
	"plays an important role in",
	"a wide range of",
	"in the context of",
	"with respect to",
	"as shown in figure",
	"there is a significant difference between",
	"the aim of this study was to",
	"the purpose of this study",
	"previous studies have shown that",
	"these results are consistent with",
	"taken together these results suggest",
}

// exclusionCitationProximity is tighter than the uncited-quote window: a
// citation must sit immediately next to the match to excuse it
const exclusionCitationProximity = 50

// ExclusionDecision is the outcome of evaluating one match against the
// exclusion rules
type ExclusionDecision struct {
	Excluded bool
	Reason   models.ExclusionReason
}

// ShouldExcludeMatch evaluates the exclusion rules in fixed priority order:
// quoted, cited, common phrase, user phrase. The first applicable reason
// wins.
func ShouldExcludeMatch(match models.PlagiarismMatch, fullText string, cfg *models.PlagiarismConfig) ExclusionDecision {
	return shouldExclude(match, cfg, DetectQuotes(fullText), DetectCitations(fullText))
}

func shouldExclude(match models.PlagiarismMatch, cfg *models.PlagiarismConfig, quotes []QuoteSpan, citations []Citation) ExclusionDecision {
	if cfg.Exclusions.Quotes {
		for _, quote := range quotes {
			if quote.StartOffset <= match.StartOffset && match.EndOffset <= quote.EndOffset {
				return ExclusionDecision{Excluded: true, Reason: models.ExclusionQuoted}
			}
		}
	}

	if cfg.Exclusions.Citations {
		if HasNearbyCitation(match.StartOffset, match.EndOffset, citations, exclusionCitationProximity) {
			return ExclusionDecision{Excluded: true, Reason: models.ExclusionCited}
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(match.Text))

	if cfg.Exclusions.CommonPhrases {
		for _, phrase := range commonAcademicPhrases {
			if normalized == phrase || strings.Contains(phrase, normalized) {
				return ExclusionDecision{Excluded: true, Reason: models.ExclusionCommonPhrase}
			}
		}
	}

	for _, phrase := range cfg.Exclusions.CustomPhrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(phrase)) {
			return ExclusionDecision{Excluded: true, Reason: models.ExclusionUserExcluded}
		}
	}

	return ExclusionDecision{}
}

// ApplyExclusions evaluates every match and returns new records with the
// Excluded flag and reason set. Exclusion is a flag, not a deletion: every
// input match comes back out.
func ApplyExclusions(matches []models.PlagiarismMatch, fullText string, cfg *models.PlagiarismConfig) []models.PlagiarismMatch {
	// Quote and citation detection run once over the full text, not per match
	quotes := DetectQuotes(fullText)
	citations := DetectCitations(fullText)

	out := make([]models.PlagiarismMatch, len(matches))
	for i, match := range matches {
		decision := shouldExclude(match, cfg, quotes, citations)
		match.Excluded = decision.Excluded
		match.ExclusionReason = decision.Reason
		out[i] = match
	}

	return out
}
