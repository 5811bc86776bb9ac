package detect

import (
	"strings"
	"testing"

	"github.com/quillcheck/veridoc/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDetectCharacterSubstitution(t *testing.T) {
	// "е" and "о" below are Cyrillic lookalikes inside Latin words
	text := "Thе repоrt was finished early."

	pattern := DetectCharacterSubstitution(text)
	require.NotNil(t, pattern)
	require.Equal(t, models.PatternCharacterSubstitution, pattern.Type)
	require.Len(t, pattern.Positions, 2)
	require.GreaterOrEqual(t, pattern.Severity, 1)
	require.LessOrEqual(t, pattern.Severity, 5)
}

func TestDetectCharacterSubstitutionSeverityMonotonic(t *testing.T) {
	few := DetectCharacterSubstitution("wоrd")
	many := DetectCharacterSubstitution(strings.Repeat("wоrdеd ", 10))

	require.NotNil(t, few)
	require.NotNil(t, many)
	require.GreaterOrEqual(t, many.Severity, few.Severity)
	require.LessOrEqual(t, many.Severity, 5)
}

func TestDetectCharacterSubstitutionCleanText(t *testing.T) {
	require.Nil(t, DetectCharacterSubstitution("perfectly ordinary english text"))
	// Fully non-Latin words are legitimate foreign text, not substitution
	require.Nil(t, DetectCharacterSubstitution("привет мир"))
}

func TestDetectInvisibleCharacters(t *testing.T) {
	one := DetectInvisibleCharacters("hidden\u200Bbreak")
	three := DetectInvisibleCharacters("a\u200Bb\u200Cc\u200Dd")

	require.NotNil(t, one)
	require.NotNil(t, three)
	require.Equal(t, models.PatternInvisibleCharacters, one.Type)
	require.Len(t, one.Positions, 1)
	require.Len(t, three.Positions, 3)
	// Severity strictly increases with count until the cap
	require.Greater(t, three.Severity, one.Severity)
	require.LessOrEqual(t, three.Severity, 5)

	require.Nil(t, DetectInvisibleCharacters("visible text only"))
}

func TestDetectInvisibleCharactersBOMAndBidi(t *testing.T) {
	pattern := DetectInvisibleCharacters("stray\uFEFFmark and\u202E reversed\u202C text")

	require.NotNil(t, pattern)
	require.Len(t, pattern.Positions, 3)
	require.Contains(t, pattern.Description, "byte order mark")
	require.Contains(t, pattern.Description, "right-to-left override")
}

func TestDetectStyleInconsistency(t *testing.T) {
	short := "One two. Three four. Five six."
	long := "This single sentence rambles on and on across a very large number of words so that its average sentence length dwarfs the first paragraph entirely without pause."

	pattern := DetectStyleInconsistency(short + "\n\n" + long)
	require.NotNil(t, pattern)
	require.Equal(t, models.PatternInconsistentStyle, pattern.Type)
	require.GreaterOrEqual(t, pattern.Severity, 1)
	require.LessOrEqual(t, pattern.Severity, 5)
}

func TestDetectStyleInconsistencySinglePragraphOrUniform(t *testing.T) {
	require.Nil(t, DetectStyleInconsistency("Just one paragraph here. Nothing to compare against."))
	require.Nil(t, DetectStyleInconsistency(""))

	uniform := "Short one here. Another short one.\n\nMore short text. Also quite short."
	require.Nil(t, DetectStyleInconsistency(uniform))
}

func TestDetectSuspiciousPatternsCleanText(t *testing.T) {
	patterns := DetectSuspiciousPatterns("entirely ordinary prose with nothing strange about it")
	require.NotNil(t, patterns)
	require.Empty(t, patterns)
}

func TestDetectSuspiciousPatternsCollectsAll(t *testing.T) {
	text := "Th\u0435 hidden\u200Bbreak word."

	patterns := DetectSuspiciousPatterns(text)
	require.Len(t, patterns, 2)

	types := map[models.PatternType]bool{}
	for _, p := range patterns {
		types[p.Type] = true
	}
	require.True(t, types[models.PatternCharacterSubstitution])
	require.True(t, types[models.PatternInvisibleCharacters])
}
