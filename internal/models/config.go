package models

import (
	"fmt"
)

// ExclusionConfig toggles the exclusion rules applied to matches
type ExclusionConfig struct {
	Quotes        bool     `bson:"quotes" json:"quotes"`
	Citations     bool     `bson:"citations" json:"citations"`
	References    bool     `bson:"references" json:"references"`
	CommonPhrases bool     `bson:"commonPhrases" json:"commonPhrases"`
	CustomPhrases []string `bson:"customPhrases" json:"customPhrases"`
}

// CheckConfig toggles the individual detection passes
type CheckConfig struct {
	SelfPlagiarism     bool `bson:"selfPlagiarism" json:"selfPlagiarism"`
	UncitedQuotes      bool `bson:"uncitedQuotes" json:"uncitedQuotes"`
	SuspiciousPatterns bool `bson:"suspiciousPatterns" json:"suspiciousPatterns"`
	ExternalAPI        bool `bson:"externalApi" json:"externalApi"`
}

// SourceConfig toggles which source corpora are compared against
type SourceConfig struct {
	Web           bool `bson:"web" json:"web"`
	Academic      bool `bson:"academic" json:"academic"`
	UserDocuments bool `bson:"userDocuments" json:"userDocuments"`
}

// PlagiarismConfig is the per-check configuration. Treat values as immutable
// once a check starts; obtain a fresh copy from DefaultPlagiarismConfig.
type PlagiarismConfig struct {
	NGramSize           int             `bson:"ngramSize" json:"ngramSize"`
	MinMatchLength      int             `bson:"minMatchLength" json:"minMatchLength"` // words
	SimilarityThreshold float64         `bson:"similarityThreshold" json:"similarityThreshold"`
	Exclusions          ExclusionConfig `bson:"exclusions" json:"exclusions"`
	Checks              CheckConfig     `bson:"checks" json:"checks"`
	Sources             SourceConfig    `bson:"sources" json:"sources"`
}

// DefaultPlagiarismConfig returns a fresh default configuration. Callers may
// mutate the returned value freely; no shared state is handed out.
func DefaultPlagiarismConfig() *PlagiarismConfig {
	return &PlagiarismConfig{
		NGramSize:           5,
		MinMatchLength:      5,
		SimilarityThreshold: 20,
		Exclusions: ExclusionConfig{
			Quotes:        true,
			Citations:     true,
			References:    true,
			CommonPhrases: true,
			CustomPhrases: []string{},
		},
		Checks: CheckConfig{
			SelfPlagiarism:     true,
			UncitedQuotes:      true,
			SuspiciousPatterns: true,
			ExternalAPI:        false,
		},
		Sources: SourceConfig{
			Web:           true,
			Academic:      true,
			UserDocuments: true,
		},
	}
}

// Validate reports caller contract violations. Bad config values are
// programming errors, unlike empty or short input text which is handled
// gracefully downstream.
func (c *PlagiarismConfig) Validate() error {
	if c.NGramSize <= 0 {
		return fmt.Errorf("ngramSize must be positive, got %d", c.NGramSize)
	}
	if c.MinMatchLength <= 0 {
		return fmt.Errorf("minMatchLength must be positive, got %d", c.MinMatchLength)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 100 {
		return fmt.Errorf("similarityThreshold must be in [0,100], got %f", c.SimilarityThreshold)
	}
	return nil
}
