package detect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJaccardBounds(t *testing.T) {
	a := GenerateFingerprints("a", "the sun rises over the eastern mountain ridge every morning", 5)
	b := GenerateFingerprints("b", "a completely unrelated sentence about winter storms in coastal regions", 5)

	require.Equal(t, float64(100), JaccardSimilarity(a, a))
	require.Equal(t, float64(0), JaccardSimilarity(a, b))

	score := JaccardSimilarity(a, b)
	require.GreaterOrEqual(t, score, float64(0))
	require.LessOrEqual(t, score, float64(100))
}

func TestJaccardEmptySets(t *testing.T) {
	a := GenerateFingerprints("a", "", 5)
	b := GenerateFingerprints("b", "", 5)

	require.Equal(t, float64(0), JaccardSimilarity(a, b))
}

func TestContainmentAsymmetry(t *testing.T) {
	// A's n-grams are a strict subset of B's
	textA := "one two three four five six"
	textB := textA + " seven eight nine ten"

	a := GenerateFingerprints("a", textA, 5)
	b := GenerateFingerprints("b", textB, 5)

	require.Equal(t, float64(100), ContainmentSimilarity(a, b))
	require.Less(t, ContainmentSimilarity(b, a), float64(100))
}

func TestContainmentEmptyQuery(t *testing.T) {
	empty := GenerateFingerprints("a", "", 5)
	b := GenerateFingerprints("b", "one two three four five six", 5)

	require.Equal(t, float64(0), ContainmentSimilarity(empty, b))
}

func TestOverlapCoefficient(t *testing.T) {
	textA := "one two three four five six"
	textB := textA + " seven eight nine ten"

	a := GenerateFingerprints("a", textA, 5)
	b := GenerateFingerprints("b", textB, 5)

	// Intersection equals the smaller set, so overlap is 100
	require.Equal(t, float64(100), OverlapCoefficient(a, b))
	require.Equal(t, OverlapCoefficient(a, b), OverlapCoefficient(b, a))

	empty := GenerateFingerprints("c", "", 5)
	require.Equal(t, float64(0), OverlapCoefficient(a, empty))
}

func TestWordBasedSimilarity(t *testing.T) {
	require.Equal(t, float64(50), WordBasedSimilarity(100, 50))
	require.Equal(t, float64(100), WordBasedSimilarity(10, 25)) // capped
	require.Equal(t, float64(0), WordBasedSimilarity(0, 5))    // zero denominator
}
