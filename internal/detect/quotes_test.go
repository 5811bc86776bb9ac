package detect

import (
	"testing"

	"github.com/quillcheck/veridoc/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDetectQuotesRecoversContent(t *testing.T) {
	text := `He said "the quick brown fox" and later "jumped over the lazy dog" loudly.`

	quotes := DetectQuotes(text)
	require.Len(t, quotes, 2)

	require.Equal(t, "the quick brown fox", quotes[0].Text)
	require.Equal(t, models.QuoteDouble, quotes[0].Type)
	require.Equal(t, "jumped over the lazy dog", quotes[1].Text)

	// Offsets exclude the delimiters and recover the content exactly
	for _, q := range quotes {
		require.Equal(t, q.Text, text[q.StartOffset:q.EndOffset])
	}
	require.Less(t, quotes[0].StartOffset, quotes[1].StartOffset)
}

func TestDetectQuotesStyles(t *testing.T) {
	cases := []struct {
		text string
		kind models.QuoteType
		want string
	}{
		{`plain "double quoted span" text`, models.QuoteDouble, "double quoted span"},
		{`plain 'single quoted span' text`, models.QuoteSingle, "single quoted span"},
		{"plain “smart quoted span” text", models.QuoteSmart, "smart quoted span"},
		{"plain «guillemet quoted span» text", models.QuoteGuillemet, "guillemet quoted span"},
	}

	for _, tc := range cases {
		quotes := DetectQuotes(tc.text)
		require.Len(t, quotes, 1, tc.text)
		require.Equal(t, tc.kind, quotes[0].Type)
		require.Equal(t, tc.want, quotes[0].Text)
	}
}

func TestDetectQuotesNested(t *testing.T) {
	text := `She wrote "he called it 'remarkable' at the time" in her review.`

	quotes := DetectQuotes(text)
	require.Len(t, quotes, 2)
	require.Equal(t, models.QuoteDouble, quotes[0].Type)
	require.Equal(t, models.QuoteSingle, quotes[1].Type)
	require.Equal(t, "remarkable", quotes[1].Text)
}

func TestDetectQuotesEmptyText(t *testing.T) {
	require.Empty(t, DetectQuotes(""))
}

func TestDetectQuotesIgnoresContractions(t *testing.T) {
	text := `He didn't agree that she couldn't finish the lengthy assignment on time.`

	require.Empty(t, DetectQuotes(text))
	require.Empty(t, FindUncitedQuotes(text))
}

func TestDetectQuotesContractionBesideRealQuote(t *testing.T) {
	text := `He didn't whisper 'a genuinely quoted span of words' before leaving.`

	quotes := DetectQuotes(text)
	require.Len(t, quotes, 1)
	require.Equal(t, models.QuoteSingle, quotes[0].Type)
	require.Equal(t, "a genuinely quoted span of words", quotes[0].Text)
	require.Equal(t, quotes[0].Text, text[quotes[0].StartOffset:quotes[0].EndOffset])
}

func TestFindUncitedQuotesFlagsLongQuote(t *testing.T) {
	text := `"This is an uncited quote that is quite long."`

	uncited := FindUncitedQuotes(text)
	require.Len(t, uncited, 1)
	require.Equal(t, models.QuoteDouble, uncited[0].QuoteType)
	require.Contains(t, uncited[0].Suggestion, "citation")
	require.NotEmpty(t, uncited[0].ID)
}

func TestFindUncitedQuotesSkipsShortQuotes(t *testing.T) {
	require.Empty(t, FindUncitedQuotes(`She shouted "Hi" across the room.`))
}

func TestFindUncitedQuotesSuppressedByNearbyCitation(t *testing.T) {
	text := `According to (Smith, 2023), "this is properly cited and long enough."`

	require.Empty(t, FindUncitedQuotes(text))
}
