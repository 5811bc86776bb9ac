package detect

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/quillcheck/veridoc/internal/models"
)

// homoglyphs maps confusable non-Latin letters to the Latin letters they
// impersonate. Cyrillic and Greek lookalikes cover the common substitution
// tricks.
var homoglyphs = map[rune]rune{
	'а': 'a', 'е': 'e', 'о': 'o', 'р': 'p', 'с': 'c', 'х': 'x', 'у': 'y',
	'і': 'i', 'ј': 'j', 'ѕ': 's', 'ԁ': 'd', 'ɡ': 'g',
	'А': 'A', 'В': 'B', 'Е': 'E', 'К': 'K', 'М': 'M', 'Н': 'H', 'О': 'O',
	'Р': 'P', 'С': 'C', 'Т': 'T', 'Х': 'X',
	'ο': 'o', 'ν': 'v', 'Α': 'A', 'Β': 'B', 'Ε': 'E', 'Ζ': 'Z', 'Η': 'H',
	'Ι': 'I', 'Κ': 'K', 'Μ': 'M', 'Ν': 'N', 'Ο': 'O', 'Ρ': 'P', 'Τ': 'T',
}

// invisibleRunes are zero-width and bidi-control code points used to break
// up fingerprintable text without visible effect. Keys are written as
// escapes; the characters themselves do not render.
var invisibleRunes = map[rune]string{
	'\u200B': "zero-width space",
	'\u200C': "zero-width non-joiner",
	'\u200D': "zero-width joiner",
	'\u200E': "left-to-right mark",
	'\u200F': "right-to-left mark",
	'\u202A': "left-to-right embedding",
	'\u202B': "right-to-left embedding",
	'\u202C': "pop directional formatting",
	'\u202D': "left-to-right override",
	'\u202E': "right-to-left override",
	'\u2060': "word joiner",
	'\uFEFF': "byte order mark",
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// DetectCharacterSubstitution scans for confusable-script letters embedded in
// otherwise-Latin words. Returns nil when the text is clean.
func DetectCharacterSubstitution(text string) *models.SuspiciousPattern {
	positions := make([]models.Span, 0)

	start := -1
	flushWord := func(end int) {
		if start < 0 {
			return
		}
		word := text[start:end]
		hasLatin := false
		confusables := make([]models.Span, 0)
		for i, r := range word {
			if isASCIILetter(r) {
				hasLatin = true
			} else if _, ok := homoglyphs[r]; ok {
				confusables = append(confusables, models.Span{
					Start: start + i,
					End:   start + i + len(string(r)),
				})
			}
		}
		if hasLatin {
			positions = append(positions, confusables...)
		}
		start = -1
	}

	for i, r := range text {
		if unicode.IsSpace(r) {
			flushWord(i)
		} else if start < 0 {
			start = i
		}
	}
	flushWord(len(text))

	if len(positions) == 0 {
		return nil
	}

	severity := 2 + (len(positions)-1)/3
	if severity > 5 {
		severity = 5
	}

	return &models.SuspiciousPattern{
		Type:        models.PatternCharacterSubstitution,
		Description: fmt.Sprintf("Found %d character(s) from confusable scripts inside Latin words", len(positions)),
		Severity:    severity,
		Positions:   positions,
	}
}

// DetectInvisibleCharacters scans for zero-width and bidi-control code
// points. Returns nil when none are present; severity grows strictly with
// the count until the cap.
func DetectInvisibleCharacters(text string) *models.SuspiciousPattern {
	positions := make([]models.Span, 0)
	names := make(map[string]struct{})

	for i, r := range text {
		if name, ok := invisibleRunes[r]; ok {
			positions = append(positions, models.Span{Start: i, End: i + len(string(r))})
			names[name] = struct{}{}
		}
	}

	if len(positions) == 0 {
		return nil
	}

	severity := 1 + len(positions)
	if severity > 5 {
		severity = 5
	}

	kinds := make([]string, 0, len(names))
	for name := range names {
		kinds = append(kinds, name)
	}

	return &models.SuspiciousPattern{
		Type:        models.PatternInvisibleCharacters,
		Description: fmt.Sprintf("Found %d invisible character(s): %s", len(positions), strings.Join(kinds, ", ")),
		Severity:    severity,
		Positions:   positions,
	}
}

var (
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
)

// styleSpreadThreshold is the spread in average sentence length (words)
// between paragraphs beyond which writing style is flagged as inconsistent
const styleSpreadThreshold = 12.0

// DetectStyleInconsistency compares average sentence length across
// paragraphs. Texts with fewer than two paragraphs yield nil.
func DetectStyleInconsistency(text string) *models.SuspiciousPattern {
	paragraphs := paragraphSplit.Split(text, -1)

	averages := make([]float64, 0, len(paragraphs))
	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sentences := sentenceSplit.Split(p, -1)
		words := 0
		count := 0
		for _, s := range sentences {
			n := len(strings.Fields(s))
			if n == 0 {
				continue
			}
			words += n
			count++
		}
		if count > 0 {
			averages = append(averages, float64(words)/float64(count))
		}
	}

	if len(averages) < 2 {
		return nil
	}

	minAvg, maxAvg := averages[0], averages[0]
	for _, a := range averages[1:] {
		if a < minAvg {
			minAvg = a
		}
		if a > maxAvg {
			maxAvg = a
		}
	}

	spread := maxAvg - minAvg
	if spread <= styleSpreadThreshold {
		return nil
	}

	severity := 1 + int(spread/10)
	if severity > 5 {
		severity = 5
	}

	return &models.SuspiciousPattern{
		Type:        models.PatternInconsistentStyle,
		Description: fmt.Sprintf("Average sentence length varies by %.1f words between paragraphs", spread),
		Severity:    severity,
		Positions:   []models.Span{},
	}
}

// DetectSuspiciousPatterns runs every detector and collects the non-nil
// results. Clean text yields an empty slice, never nil.
func DetectSuspiciousPatterns(text string) []models.SuspiciousPattern {
	patterns := make([]models.SuspiciousPattern, 0)

	for _, detector := range []func(string) *models.SuspiciousPattern{
		DetectCharacterSubstitution,
		DetectInvisibleCharacters,
		DetectStyleInconsistency,
	} {
		if p := detector(text); p != nil {
			patterns = append(patterns, *p)
		}
	}

	return patterns
}
