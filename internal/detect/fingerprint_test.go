package detect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateFingerprintsWindowCount(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta"
	set := GenerateFingerprints("doc-1", text, 3)

	require.Equal(t, "doc-1", set.DocumentID)
	require.Equal(t, 7, set.WordCount)
	require.Equal(t, 3, set.NGramSize)
	require.Len(t, set.Fingerprints, 5) // 7 words - 3 + 1 windows
}

func TestGenerateFingerprintsPositionsMapBack(t *testing.T) {
	text := "alpha beta gamma delta"
	set := GenerateFingerprints("doc-1", text, 2)

	require.Len(t, set.Fingerprints, 3)

	second := set.Fingerprints[1]
	require.Equal(t, strings.Index(text, "beta"), second.Position)
	require.Equal(t, 1, second.WordOffset)
	require.Equal(t, "beta gamma", second.NGram)
}

func TestGenerateFingerprintsShortDocument(t *testing.T) {
	set := GenerateFingerprints("doc-1", "only three words", 5)

	require.Empty(t, set.Fingerprints)
	require.Equal(t, 3, set.WordCount)
}

func TestGenerateFingerprintsEmptyText(t *testing.T) {
	set := GenerateFingerprints("doc-1", "", 5)

	require.Empty(t, set.Fingerprints)
	require.Equal(t, 0, set.WordCount)
}

func TestGenerateFingerprintsCaseInsensitive(t *testing.T) {
	upper := GenerateFingerprints("a", "The Quick Brown Fox Jumps", 5)
	lower := GenerateFingerprints("b", "the quick brown fox jumps", 5)

	require.Len(t, upper.Fingerprints, 1)
	require.Len(t, lower.Fingerprints, 1)
	require.Equal(t, upper.Fingerprints[0].Hash, lower.Fingerprints[0].Hash)
}

func TestGenerateFingerprintsPunctuationStripped(t *testing.T) {
	a := GenerateFingerprints("a", "one two three, four five.", 5)
	b := GenerateFingerprints("b", "one two three four five", 5)

	require.Len(t, a.Fingerprints, 1)
	require.Equal(t, b.Fingerprints[0].Hash, a.Fingerprints[0].Hash)
}

func TestTokenizeOffsets(t *testing.T) {
	text := "  hello   world "
	tokens := tokenize(text)

	require.Len(t, tokens, 2)
	require.Equal(t, 2, tokens[0].offset)
	require.Equal(t, "hello", tokens[0].word)
	require.Equal(t, 10, tokens[1].offset)
	require.Equal(t, "world", tokens[1].word)
}
