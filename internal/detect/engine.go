package detect

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quillcheck/veridoc/internal/models"
	"github.com/rs/zerolog/log"
)

// SourceProvider supplies external source corpora (web, academic) to compare
// against. Implementations fetch or look up pre-indexed fingerprints; the
// engine never knows where they come from.
type SourceProvider interface {
	FetchSources(ctx context.Context, query *models.FingerprintSet, cfg *models.PlagiarismConfig) ([]SourceDocument, error)
}

// Engine is the top-level detection orchestrator. It holds no mutable state
// across calls; every check constructs fresh fingerprint sets and match
// lists.
type Engine struct {
	sources SourceProvider
	pool    *WorkerPool
}

// NewEngine creates an engine. sources may be nil (no external corpus) and
// pool may be nil (sequential comparison).
func NewEngine(sources SourceProvider, pool *WorkerPool) *Engine {
	return &Engine{
		sources: sources,
		pool:    pool,
	}
}

const snippetLength = 120

// DetectPlagiarism runs the full pipeline: fingerprint the query, compare
// against the user's own documents and any external sources, cluster and
// deduplicate matches, apply exclusions, and assemble the scored result.
func (e *Engine) DetectPlagiarism(ctx context.Context, text, documentID string, userDocuments []models.UserDocument, cfg *models.PlagiarismConfig) (*models.PlagiarismResult, error) {
	return e.DetectPlagiarismWithProgress(ctx, text, documentID, userDocuments, cfg, nil)
}

// DetectPlagiarismWithProgress is DetectPlagiarism with a step callback,
// invoked as the pipeline moves between stages. progress may be nil.
func (e *Engine) DetectPlagiarismWithProgress(ctx context.Context, text, documentID string, userDocuments []models.UserDocument, cfg *models.PlagiarismConfig, progress func(models.Step)) (*models.PlagiarismResult, error) {
	if cfg == nil {
		cfg = models.DefaultPlagiarismConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = func(models.Step) {}
	}

	start := time.Now()

	progress(models.StepFingerprinting)
	queryFP := GenerateFingerprints(documentID, text, cfg.NGramSize)
	opts := CompareOptions{MaxGap: DefaultMaxGap, MinWordCount: cfg.MinMatchLength}

	// Self-plagiarism against the user's own prior documents
	var selfSources []SourceDocument
	var selfRefs []models.SourceDocumentRef
	if cfg.Checks.SelfPlagiarism {
		selfSources, selfRefs = buildSelfSources(documentID, userDocuments, cfg.NGramSize)
	}

	progress(models.StepComparing)
	selfResults := e.compareAll(ctx, queryFP, text, selfSources, opts)

	selfPlagiarism := make([]models.SelfPlagiarismMatch, 0)
	rawMatches := make([]models.PlagiarismMatch, 0)
	pairTotal := 0
	for i, result := range selfResults {
		pairTotal += result.PairCount
		for _, match := range result.Matches {
			rawMatches = append(rawMatches, match)
			selfPlagiarism = append(selfPlagiarism, models.SelfPlagiarismMatch{
				PlagiarismMatch: match,
				SourceDocument:  selfRefs[i],
			})
		}
	}

	// External sources degrade to nothing when the collaborator is absent
	// or unreachable; self-plagiarism and pattern checks still run.
	if e.sources != nil && cfg.Checks.ExternalAPI && (cfg.Sources.Web || cfg.Sources.Academic) {
		external, err := e.sources.FetchSources(ctx, queryFP, cfg)
		if err != nil {
			log.Warn().Err(err).Str("documentId", documentID).Msg("External source lookup failed, continuing without external matches")
		} else {
			for _, result := range e.compareAll(ctx, queryFP, text, external, opts) {
				pairTotal += result.PairCount
				rawMatches = append(rawMatches, result.Matches...)
			}
		}
	}

	progress(models.StepAnalyzing)
	matches := ApplyExclusions(DeduplicateMatches(rawMatches), text, cfg)

	matchedWords := 0
	excludedWords := 0
	for _, m := range matches {
		if m.Excluded {
			excludedWords += m.WordCount
		} else {
			matchedWords += m.WordCount
		}
	}

	similarityScore := WordBasedSimilarity(queryFP.WordCount, matchedWords)

	uncitedQuotes := []models.UncitedQuote{}
	if cfg.Checks.UncitedQuotes {
		uncitedQuotes = FindUncitedQuotes(text)
	}

	suspiciousPatterns := []models.SuspiciousPattern{}
	if cfg.Checks.SuspiciousPatterns {
		suspiciousPatterns = DetectSuspiciousPatterns(text)
	}

	quotedWords := 0
	for _, q := range DetectQuotes(text) {
		quotedWords += CountWords(q.Text)
	}
	citedWords := 0
	for _, c := range DetectCitations(text) {
		citedWords += CountWords(c.Text)
	}

	sources := uniqueSources(matches)

	result := &models.PlagiarismResult{
		ID:                 uuid.New().String(),
		DocumentID:         documentID,
		CheckedAt:          time.Now(),
		SimilarityScore:    similarityScore,
		OriginalityScore:   100 - similarityScore,
		Classification:     GetClassification(similarityScore),
		Confidence:         GetConfidence(queryFP.WordCount),
		Matches:            matches,
		SelfPlagiarism:     selfPlagiarism,
		UncitedQuotes:      uncitedQuotes,
		SuspiciousPatterns: suspiciousPatterns,
		Stats: models.PlagiarismStats{
			TotalWords:            queryFP.WordCount,
			MatchedWords:          matchedWords,
			QuotedWords:           quotedWords,
			CitedWords:            citedWords,
			ExcludedWords:         excludedWords,
			UniqueSources:         len(sources),
			FingerprintsGenerated: len(queryFP.Fingerprints),
			FingerprintsMatched:   pairTotal,
			ProcessingTime:        time.Since(start),
		},
		Sources: sources,
		Config:  *cfg,
	}

	log.Debug().
		Str("documentId", documentID).
		Float64("similarity", similarityScore).
		Int("matches", len(matches)).
		Dur("took", result.Stats.ProcessingTime).
		Msg("Plagiarism check completed")

	return result, nil
}

// QuickCheck is the synchronous, lower-fidelity variant: same self-plagiarism
// and scoring logic, no external source step. Safe to call without a context.
func (e *Engine) QuickCheck(text, documentID string, userDocuments []models.UserDocument) models.QuickCheckSummary {
	cfg := models.DefaultPlagiarismConfig()

	queryFP := GenerateFingerprints(documentID, text, cfg.NGramSize)
	opts := CompareOptions{MaxGap: DefaultMaxGap, MinWordCount: cfg.MinMatchLength}

	selfSources, _ := buildSelfSources(documentID, userDocuments, cfg.NGramSize)

	rawMatches := make([]models.PlagiarismMatch, 0)
	selfCount := 0
	for _, src := range selfSources {
		result := CompareDocuments(queryFP, src.Fingerprints, text, src.Source, opts)
		selfCount += len(result.Matches)
		rawMatches = append(rawMatches, result.Matches...)
	}

	matches := ApplyExclusions(DeduplicateMatches(rawMatches), text, cfg)

	matchedWords := 0
	for _, m := range matches {
		if !m.Excluded {
			matchedWords += m.WordCount
		}
	}

	similarityScore := WordBasedSimilarity(queryFP.WordCount, matchedWords)

	return models.QuickCheckSummary{
		SimilarityScore:     similarityScore,
		OriginalityScore:    100 - similarityScore,
		SelfPlagiarismCount: selfCount,
		UncitedQuoteCount:   len(FindUncitedQuotes(text)),
	}
}

// buildSelfSources fingerprints the user's other documents, skipping the one
// under check. Stored fingerprints are reused when their n-gram size matches.
func buildSelfSources(documentID string, docs []models.UserDocument, ngramSize int) ([]SourceDocument, []models.SourceDocumentRef) {
	sources := make([]SourceDocument, 0, len(docs))
	refs := make([]models.SourceDocumentRef, 0, len(docs))

	for _, doc := range docs {
		if doc.ID == documentID {
			continue
		}

		fp := doc.Fingerprints
		if fp == nil || fp.NGramSize != ngramSize {
			fp = GenerateFingerprints(doc.ID, doc.Content, ngramSize)
		}

		sources = append(sources, SourceDocument{
			Fingerprints: fp,
			Source: models.MatchSource{
				Type:  models.SourceUserDocument,
				Title: doc.Title,
			},
		})
		refs = append(refs, models.SourceDocumentRef{
			ID:        doc.ID,
			Title:     doc.Title,
			CreatedAt: doc.CreatedAt,
			Snippet:   snippet(doc.Content),
		})
	}

	return sources, refs
}

// uniqueSources collects the distinct sources the non-excluded matches came
// from, in first-seen order
func uniqueSources(matches []models.PlagiarismMatch) []models.MatchSource {
	seen := make(map[string]bool)
	sources := make([]models.MatchSource, 0)
	for _, m := range matches {
		if m.Excluded {
			continue
		}
		key := string(m.Source.Type) + "|" + m.Source.Title + "|" + m.Source.URL
		if seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, m.Source)
	}
	return sources
}

func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLength {
		return content
	}
	return string(runes[:snippetLength]) + "..."
}

type indexedComparison struct {
	index  int
	result ComparisonResult
}

// compareJob runs one query-versus-source comparison on the worker pool
type compareJob struct {
	index     int
	queryFP   *models.FingerprintSet
	queryText string
	source    SourceDocument
	opts      CompareOptions
	out       chan<- indexedComparison
}

func (j *compareJob) Execute(ctx context.Context) error {
	result := CompareDocuments(j.queryFP, j.source.Fingerprints, j.queryText, j.source.Source, j.opts)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case j.out <- indexedComparison{index: j.index, result: result}:
		return nil
	}
}

// compareAll compares the query against every source, on the worker pool when
// one is attached. Each comparison is read-only over its inputs, so they run
// without coordination. Results come back in source order.
func (e *Engine) compareAll(ctx context.Context, queryFP *models.FingerprintSet, queryText string, sources []SourceDocument, opts CompareOptions) []ComparisonResult {
	results := make([]ComparisonResult, len(sources))
	if len(sources) == 0 {
		return results
	}

	if e.pool == nil {
		for i, src := range sources {
			results[i] = CompareDocuments(queryFP, src.Fingerprints, queryText, src.Source, opts)
		}
		return results
	}

	out := make(chan indexedComparison, len(sources))
	submitted := 0
	for i, src := range sources {
		job := &compareJob{
			index:     i,
			queryFP:   queryFP,
			queryText: queryText,
			source:    src,
			opts:      opts,
			out:       out,
		}
		if err := e.pool.Submit(job); err != nil {
			log.Error().Err(err).Msg("Failed to submit comparison job, running inline")
			results[i] = CompareDocuments(queryFP, src.Fingerprints, queryText, src.Source, opts)
			continue
		}
		submitted++
	}

	for n := 0; n < submitted; n++ {
		select {
		case <-ctx.Done():
			return results
		case res := <-out:
			results[res.index] = res.result
		}
	}

	return results
}
