package models

import (
	"time"
)

// MatchType classifies how closely a matched span tracks its source,
// ordered by decreasing lexical identity
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchNearExact  MatchType = "near-exact"
	MatchParaphrase MatchType = "paraphrase"
	MatchMosaic     MatchType = "mosaic"
	MatchStructural MatchType = "structural"
)

// SourceType tags the provenance of a matched source
type SourceType string

const (
	SourceWeb          SourceType = "web"
	SourceAcademic     SourceType = "academic"
	SourceBook         SourceType = "book"
	SourceNews         SourceType = "news"
	SourceUserDocument SourceType = "user-document"
	SourceInternal     SourceType = "internal"
	SourceUnknown      SourceType = "unknown"
)

// MatchSource identifies where a matched span is suspected to originate
type MatchSource struct {
	Type            SourceType `bson:"type" json:"type"`
	Title           string     `bson:"title,omitempty" json:"title,omitempty"`
	URL             string     `bson:"url,omitempty" json:"url,omitempty"`
	Author          string     `bson:"author,omitempty" json:"author,omitempty"`
	DOI             string     `bson:"doi,omitempty" json:"doi,omitempty"`
	PublicationDate string     `bson:"publicationDate,omitempty" json:"publicationDate,omitempty"`
	SourceSnippet   string     `bson:"sourceSnippet,omitempty" json:"sourceSnippet,omitempty"`
	Database        string     `bson:"database,omitempty" json:"database,omitempty"`
}

// ExclusionReason explains why a match was removed from scoring
type ExclusionReason string

const (
	ExclusionQuoted       ExclusionReason = "quoted"
	ExclusionCited        ExclusionReason = "cited"
	ExclusionCommonPhrase ExclusionReason = "common-phrase"
	ExclusionUserExcluded ExclusionReason = "user-excluded"
)

// PlagiarismMatch is a scored, positioned span of the query document
// suspected of originating elsewhere. StartOffset < EndOffset always holds;
// WordCount is derived from the span
type PlagiarismMatch struct {
	ID              string          `bson:"id" json:"id"`
	Text            string          `bson:"text" json:"text"`
	StartOffset     int             `bson:"startOffset" json:"startOffset"`
	EndOffset       int             `bson:"endOffset" json:"endOffset"`
	Similarity      float64         `bson:"similarity" json:"similarity"` // 0-100
	WordCount       int             `bson:"wordCount" json:"wordCount"`
	Type            MatchType       `bson:"type" json:"type"`
	Source          MatchSource     `bson:"source" json:"source"`
	Excluded        bool            `bson:"excluded" json:"excluded"`
	ExclusionReason ExclusionReason `bson:"exclusionReason,omitempty" json:"exclusionReason,omitempty"`
}

// SourceDocumentRef points at the user's own document a self-plagiarism
// match came from
type SourceDocumentRef struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Snippet   string    `bson:"snippet" json:"snippet"`
}

// SelfPlagiarismMatch is a match against one of the same user's prior documents
type SelfPlagiarismMatch struct {
	PlagiarismMatch `bson:",inline" json:",inline"`
	SourceDocument  SourceDocumentRef `bson:"sourceDocument" json:"sourceDocument"`
}

// QuoteType tags the delimiter style of a detected quotation
type QuoteType string

const (
	QuoteDouble    QuoteType = "double"
	QuoteSingle    QuoteType = "single"
	QuoteSmart     QuoteType = "smart"
	QuoteGuillemet QuoteType = "guillemet"
)

// UncitedQuote flags a quotation with no citation in its proximity window
type UncitedQuote struct {
	ID          string    `bson:"id" json:"id"`
	Text        string    `bson:"text" json:"text"`
	StartOffset int       `bson:"startOffset" json:"startOffset"`
	EndOffset   int       `bson:"endOffset" json:"endOffset"`
	QuoteType   QuoteType `bson:"quoteType" json:"quoteType"`
	Suggestion  string    `bson:"suggestion" json:"suggestion"`
}

// PatternType identifies a category of suspicious text manipulation
type PatternType string

const (
	PatternCharacterSubstitution PatternType = "character-substitution"
	PatternInvisibleCharacters   PatternType = "invisible-characters"
	PatternWhiteText             PatternType = "white-text"
	PatternFontManipulation      PatternType = "font-manipulation"
	PatternExcessiveSynonyms     PatternType = "excessive-synonyms"
	PatternInconsistentStyle     PatternType = "inconsistent-style"
)

// Span is a half-open [Start, End) byte range into the query text
type Span struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// SuspiciousPattern reports one detected manipulation attempt.
// Severity runs 1 (mild) to 5 (severe)
type SuspiciousPattern struct {
	Type        PatternType `bson:"type" json:"type"`
	Description string      `bson:"description" json:"description"`
	Severity    int         `bson:"severity" json:"severity"`
	Positions   []Span      `bson:"positions" json:"positions"`
}

// Classification buckets an overall similarity score
type Classification string

const (
	ClassificationOriginal    Classification = "original"
	ClassificationAcceptable  Classification = "acceptable"
	ClassificationNeedsReview Classification = "needs-review"
	ClassificationConcerning  Classification = "concerning"
	ClassificationHighRisk    Classification = "high-risk"
	ClassificationCritical    Classification = "critical"
)

// Confidence reflects how statistically reliable the result is, driven by
// document length
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// PlagiarismStats aggregates counters over one detection run
type PlagiarismStats struct {
	TotalWords            int           `bson:"totalWords" json:"totalWords"`
	MatchedWords          int           `bson:"matchedWords" json:"matchedWords"` // post-exclusion
	QuotedWords           int           `bson:"quotedWords" json:"quotedWords"`
	CitedWords            int           `bson:"citedWords" json:"citedWords"`
	ExcludedWords         int           `bson:"excludedWords" json:"excludedWords"`
	UniqueSources         int           `bson:"uniqueSources" json:"uniqueSources"`
	FingerprintsGenerated int           `bson:"fingerprintsGenerated" json:"fingerprintsGenerated"`
	FingerprintsMatched   int           `bson:"fingerprintsMatched" json:"fingerprintsMatched"`
	ProcessingTime        time.Duration `bson:"processingTime" json:"processingTime"`
}

// PlagiarismResult is the full, self-contained output of one detection run
type PlagiarismResult struct {
	ID                 string                `bson:"id" json:"id"`
	DocumentID         string                `bson:"documentId" json:"documentId"`
	CheckedAt          time.Time             `bson:"checkedAt" json:"checkedAt"`
	SimilarityScore    float64               `bson:"similarityScore" json:"similarityScore"`
	OriginalityScore   float64               `bson:"originalityScore" json:"originalityScore"`
	Classification     Classification        `bson:"classification" json:"classification"`
	Confidence         Confidence            `bson:"confidence" json:"confidence"`
	Matches            []PlagiarismMatch     `bson:"matches" json:"matches"`
	SelfPlagiarism     []SelfPlagiarismMatch `bson:"selfPlagiarism" json:"selfPlagiarism"`
	UncitedQuotes      []UncitedQuote        `bson:"uncitedQuotes" json:"uncitedQuotes"`
	SuspiciousPatterns []SuspiciousPattern   `bson:"suspiciousPatterns" json:"suspiciousPatterns"`
	Stats              PlagiarismStats       `bson:"stats" json:"stats"`
	Sources            []MatchSource         `bson:"sources" json:"sources"`
	Config             PlagiarismConfig      `bson:"config" json:"config"`
}

// QuickCheckSummary is the reduced output of the synchronous quick check
type QuickCheckSummary struct {
	SimilarityScore     float64 `json:"similarityScore"`
	OriginalityScore    float64 `json:"originalityScore"`
	SelfPlagiarismCount int     `json:"selfPlagiarismCount"`
	UncitedQuoteCount   int     `json:"uncitedQuoteCount"`
}
