package detect

import (
	"regexp"
	"sort"
)

// CitationFormat distinguishes the recognized citation families
type CitationFormat string

const (
	CitationAuthorYear CitationFormat = "author-year"
	CitationNumeric    CitationFormat = "numeric"
)

// Citation is one recognized in-text citation
type Citation struct {
	Text        string
	StartOffset int
	EndOffset   int
	Format      CitationFormat
}

// DefaultCitationProximity is the character window used when associating a
// span with a nearby citation
const DefaultCitationProximity = 100

// citationPatterns drives DetectCitations. Covers author-year parentheticals
// (single author, et al., ampersand-joined multi-author), bracketed numeric
// citations (single, list, range) and bare superscript footnote markers.
var citationPatterns = []struct {
	pattern *regexp.Regexp
	format  CitationFormat
}{
	{regexp.MustCompile(`\([A-Z][A-Za-z'-]+(?:\s+(?:&|and)\s+[A-Z][A-Za-z'-]+)*(?:\s+et al\.?)?,\s*\d{4}[a-z]?\)`), CitationAuthorYear},
	{regexp.MustCompile(`\[\d+(?:\s*[,\x{2013}-]\s*\d+)*\]`), CitationNumeric},
	{regexp.MustCompile(`[\x{2070}\x{00B9}\x{00B2}\x{00B3}\x{2074}-\x{2079}]+`), CitationNumeric},
}

// DetectCitations finds every in-text citation, sorted ascending by offset
func DetectCitations(text string) []Citation {
	citations := make([]Citation, 0)

	for _, entry := range citationPatterns {
		for _, idx := range entry.pattern.FindAllStringIndex(text, -1) {
			citations = append(citations, Citation{
				Text:        text[idx[0]:idx[1]],
				StartOffset: idx[0],
				EndOffset:   idx[1],
				Format:      entry.format,
			})
		}
	}

	sort.Slice(citations, func(i, j int) bool {
		return citations[i].StartOffset < citations[j].StartOffset
	})

	return citations
}

// HasNearbyCitation reports whether any citation lies within maxDistance
// characters before the span's start or after its end. The window is
// symmetric and character-distance based; citations overlapping the span
// itself also count.
func HasNearbyCitation(start, end int, citations []Citation, maxDistance int) bool {
	for _, c := range citations {
		if c.EndOffset <= start && start-c.EndOffset <= maxDistance {
			return true
		}
		if c.StartOffset >= end && c.StartOffset-end <= maxDistance {
			return true
		}
		if spansOverlap(c.StartOffset, c.EndOffset, start, end) {
			return true
		}
	}
	return false
}
