package detect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectCitationsAuthorYear(t *testing.T) {
	cases := []string{
		"As argued in (Smith, 2023) the effect holds.",
		"Recent work (Jones et al., 2022) disagrees.",
		"Earlier findings (Brown & White, 2021) align.",
	}

	for _, text := range cases {
		citations := DetectCitations(text)
		require.Len(t, citations, 1, text)
		require.Equal(t, CitationAuthorYear, citations[0].Format)
		require.Equal(t, text[citations[0].StartOffset:citations[0].EndOffset], citations[0].Text)
	}
}

func TestDetectCitationsNumeric(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"The finding was replicated [42] twice.", "[42]"},
		{"Several studies [1,2,3] agree.", "[1,2,3]"},
		{"See the survey [1-5] for background.", "[1-5]"},
	}

	for _, tc := range cases {
		citations := DetectCitations(tc.text)
		require.Len(t, citations, 1, tc.text)
		require.Equal(t, CitationNumeric, citations[0].Format)
		require.Equal(t, tc.want, citations[0].Text)
	}
}

func TestDetectCitationsSuperscript(t *testing.T) {
	citations := DetectCitations("The claim was later retracted¹² by the journal.")
	require.Len(t, citations, 1)
	require.Equal(t, CitationNumeric, citations[0].Format)
}

func TestDetectCitationsSorted(t *testing.T) {
	text := "First [3] and then (Smith, 2020) and finally [7]."

	citations := DetectCitations(text)
	require.Len(t, citations, 3)
	for i := 1; i < len(citations); i++ {
		require.Less(t, citations[i-1].StartOffset, citations[i].StartOffset)
	}
}

func TestHasNearbyCitation(t *testing.T) {
	text := "Some prose (Smith, 2023) more prose follows here."
	citations := DetectCitations(text)
	require.Len(t, citations, 1)

	end := citations[0].EndOffset

	// Span starting just after the citation
	require.True(t, HasNearbyCitation(end+5, end+25, citations, 100))
	// Span ending just before the citation
	require.True(t, HasNearbyCitation(0, citations[0].StartOffset-2, citations, 100))
	// Span far beyond the window
	require.False(t, HasNearbyCitation(end+500, end+600, citations, 100))
	// Window is character-distance based
	require.False(t, HasNearbyCitation(end+101, end+150, citations, 100))
	require.True(t, HasNearbyCitation(end+100, end+150, citations, 100))
}
