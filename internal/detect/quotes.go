package detect

import (
	"regexp"
	"sort"

	"github.com/google/uuid"
	"github.com/quillcheck/veridoc/internal/models"
)

// QuoteSpan is one quoted region of the text. Offsets bound the quoted
// content only; delimiter characters sit outside [StartOffset, EndOffset).
type QuoteSpan struct {
	Text        string
	StartOffset int
	EndOffset   int
	Type        models.QuoteType
}

// quoteStyles is the table of recognized quote delimiters. New styles are
// added here, not as new branches. The single-quote pattern requires
// non-letter boundaries on both delimiters so apostrophes in contractions
// never pair up as quotes.
var quoteStyles = []struct {
	pattern *regexp.Regexp
	kind    models.QuoteType
}{
	{regexp.MustCompile(`"([^"]+)"`), models.QuoteDouble},
	{regexp.MustCompile(`(?:^|[^\pL])'([^']+)'(?:$|[^\pL])`), models.QuoteSingle},
	{regexp.MustCompile(`“([^”]+)”`), models.QuoteSmart},
	{regexp.MustCompile(`«([^»]+)»`), models.QuoteGuillemet},
}

// DetectQuotes finds every quoted span in text. Each style is scanned
// independently, so nested quotes of differing styles are all reported.
// Results are sorted ascending by start offset.
func DetectQuotes(text string) []QuoteSpan {
	spans := make([]QuoteSpan, 0)

	for _, style := range quoteStyles {
		for _, idx := range style.pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := idx[2], idx[3]
			spans = append(spans, QuoteSpan{
				Text:        text[start:end],
				StartOffset: start,
				EndOffset:   end,
				Type:        style.kind,
			})
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].StartOffset < spans[j].StartOffset
	})

	return spans
}

// minQuoteWords filters out short exclamations when flagging uncited quotes
const minQuoteWords = 5

// FindUncitedQuotes flags quotations of meaningful length that have no
// citation within the proximity window
func FindUncitedQuotes(text string) []models.UncitedQuote {
	quotes := DetectQuotes(text)
	citations := DetectCitations(text)

	uncited := make([]models.UncitedQuote, 0)
	for _, quote := range quotes {
		if CountWords(quote.Text) < minQuoteWords {
			continue
		}
		if HasNearbyCitation(quote.StartOffset, quote.EndOffset, citations, DefaultCitationProximity) {
			continue
		}
		uncited = append(uncited, models.UncitedQuote{
			ID:          uuid.New().String(),
			Text:        quote.Text,
			StartOffset: quote.StartOffset,
			EndOffset:   quote.EndOffset,
			QuoteType:   quote.Type,
			Suggestion:  "Add a citation for this quote to attribute its original author",
		})
	}

	return uncited
}
