package detect

import (
	"context"
	"testing"
	"time"

	"github.com/quillcheck/veridoc/internal/models"
	"github.com/stretchr/testify/require"
)

const sharedPhrase = "the quick brown fox jumps over the lazy sleeping dog"

func queryText() string {
	return "My submitted essay argues several novel points today. " +
		sharedPhrase +
		" Additional closing remarks round out this paragraph nicely."
}

func priorDocuments() []models.UserDocument {
	return []models.UserDocument{
		{
			ID:        "prior-1",
			UserID:    "user-1",
			Title:     "Earlier Draft",
			Content:   "Earlier archived writing mentioned that " + sharedPhrase + " within its second chapter.",
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestDetectPlagiarismEmptyText(t *testing.T) {
	engine := NewEngine(nil, nil)

	result, err := engine.DetectPlagiarism(context.Background(), "", "doc-1", nil, nil)
	require.NoError(t, err)

	require.Equal(t, float64(0), result.SimilarityScore)
	require.Equal(t, float64(100), result.OriginalityScore)
	require.Empty(t, result.Matches)
	require.Equal(t, 0, result.Stats.TotalWords)
	require.Equal(t, 0, result.Stats.FingerprintsGenerated)
	require.Equal(t, models.ClassificationOriginal, result.Classification)
	require.Equal(t, models.ConfidenceLow, result.Confidence)
}

func TestDetectPlagiarismInvalidConfig(t *testing.T) {
	engine := NewEngine(nil, nil)

	cfg := models.DefaultPlagiarismConfig()
	cfg.NGramSize = 0

	_, err := engine.DetectPlagiarism(context.Background(), "some text here", "doc-1", nil, cfg)
	require.Error(t, err)
}

func TestDetectPlagiarismSelfPlagiarism(t *testing.T) {
	engine := NewEngine(nil, nil)

	result, err := engine.DetectPlagiarism(context.Background(), queryText(), "doc-1", priorDocuments(), nil)
	require.NoError(t, err)

	require.NotEmpty(t, result.SelfPlagiarism)
	require.Equal(t, "prior-1", result.SelfPlagiarism[0].SourceDocument.ID)
	require.Equal(t, "Earlier Draft", result.SelfPlagiarism[0].SourceDocument.Title)
	require.Greater(t, result.SimilarityScore, float64(0))
	require.Less(t, result.OriginalityScore, float64(100))
	require.Greater(t, result.Stats.MatchedWords, 0)
	require.Equal(t, 1, result.Stats.UniqueSources)
}

func TestDetectPlagiarismSkipsDocumentUnderCheck(t *testing.T) {
	engine := NewEngine(nil, nil)
	text := queryText()

	docs := []models.UserDocument{
		{ID: "doc-1", UserID: "user-1", Title: "Same Document", Content: text},
	}

	result, err := engine.DetectPlagiarism(context.Background(), text, "doc-1", docs, nil)
	require.NoError(t, err)

	require.Empty(t, result.SelfPlagiarism)
	require.Equal(t, float64(0), result.SimilarityScore)
}

func TestDetectPlagiarismUncitedQuote(t *testing.T) {
	engine := NewEngine(nil, nil)
	text := `The essay opens plainly. "An extended quotation lifted wholesale from somewhere else entirely" closes it.`

	result, err := engine.DetectPlagiarism(context.Background(), text, "doc-1", nil, nil)
	require.NoError(t, err)
	require.Len(t, result.UncitedQuotes, 1)
}

func TestDetectPlagiarismCitedQuoteNotFlagged(t *testing.T) {
	engine := NewEngine(nil, nil)
	text := `The essay opens plainly. "An extended quotation lifted wholesale from somewhere else entirely" (Garcia, 2021) closes it.`

	result, err := engine.DetectPlagiarism(context.Background(), text, "doc-1", nil, nil)
	require.NoError(t, err)
	require.Empty(t, result.UncitedQuotes)
	require.Greater(t, result.Stats.CitedWords, 0)
}

func TestDetectPlagiarismChecksCanBeDisabled(t *testing.T) {
	engine := NewEngine(nil, nil)
	text := `Plain prose here. "An extended quotation lifted wholesale from somewhere else entirely" ends the piece.`

	cfg := models.DefaultPlagiarismConfig()
	cfg.Checks.UncitedQuotes = false
	cfg.Checks.SuspiciousPatterns = false

	result, err := engine.DetectPlagiarism(context.Background(), text, "doc-1", nil, cfg)
	require.NoError(t, err)
	require.Empty(t, result.UncitedQuotes)
	require.Empty(t, result.SuspiciousPatterns)
}

func TestQuickCheckAgreesWithFullCheck(t *testing.T) {
	engine := NewEngine(nil, nil)
	text := queryText()
	docs := priorDocuments()

	full, err := engine.DetectPlagiarism(context.Background(), text, "doc-1", docs, nil)
	require.NoError(t, err)

	quick := engine.QuickCheck(text, "doc-1", docs)

	require.InDelta(t, full.SimilarityScore, quick.SimilarityScore, 1e-9)
	require.InDelta(t, full.OriginalityScore, quick.OriginalityScore, 1e-9)
	require.GreaterOrEqual(t, quick.SelfPlagiarismCount, 1)
	require.Equal(t, len(full.UncitedQuotes), quick.UncitedQuoteCount)
}

func TestDetectPlagiarismReportsProgress(t *testing.T) {
	engine := NewEngine(nil, nil)

	steps := []models.Step{}
	_, err := engine.DetectPlagiarismWithProgress(context.Background(), queryText(), "doc-1", priorDocuments(), nil, func(step models.Step) {
		steps = append(steps, step)
	})
	require.NoError(t, err)
	require.Equal(t, []models.Step{models.StepFingerprinting, models.StepComparing, models.StepAnalyzing}, steps)
}

func TestDetectPlagiarismRunsOnWorkerPool(t *testing.T) {
	pool := NewWorkerPool(context.Background())
	defer pool.Close()

	engine := NewEngine(nil, pool)

	result, err := engine.DetectPlagiarism(context.Background(), queryText(), "doc-1", priorDocuments(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.SelfPlagiarism)
}
