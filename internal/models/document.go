package models

import (
	"time"
)

type Step string

const (
	StepQueued         Step = "queued"
	StepFingerprinting Step = "fingerprinting"
	StepComparing      Step = "comparing"
	StepAnalyzing      Step = "analyzing"
	StepCompleted      Step = "completed"
	StepFailed         Step = "failed"
)

// UserDocument is one of a user's stored documents, compared against for
// self-plagiarism
type UserDocument struct {
	ID           string          `bson:"id" json:"id"`
	UserID       string          `bson:"userId" json:"userId"`
	Title        string          `bson:"title" json:"title"`
	Content      string          `bson:"content" json:"content"`
	WordCount    int             `bson:"wordCount" json:"wordCount"`
	Fingerprints *FingerprintSet `bson:"fingerprints,omitempty" json:"fingerprints,omitempty"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt"`
}

// DocumentSubmission is a document-ingest event consumed from the Redis stream
type DocumentSubmission struct {
	DocumentID string `json:"documentId"`
	UserID     string `json:"userId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// CheckRequest asks for a full plagiarism check of one document
type CheckRequest struct {
	DocumentID string            `json:"documentId" binding:"required"`
	Text       string            `json:"text"`
	UserID     string            `json:"userId"`
	Config     *PlagiarismConfig `json:"config"`
}

// CheckResponse acknowledges an accepted check
type CheckResponse struct {
	CheckID string `json:"checkId"`
	Step    Step   `json:"step"`
}

// QuickCheckRequest asks for the synchronous reduced check
type QuickCheckRequest struct {
	DocumentID string `json:"documentId" binding:"required"`
	Text       string `json:"text"`
	UserID     string `json:"userId"`
}
