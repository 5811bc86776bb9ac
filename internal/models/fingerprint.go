package models

import (
	"time"
)

// Fingerprint represents one hashed n-gram occurrence in a document
type Fingerprint struct {
	Hash       uint64 `bson:"hash" json:"hash"`
	Position   int    `bson:"position" json:"position"` // byte offset of the n-gram's first word
	NGram      string `bson:"ngram" json:"ngram"`
	WordOffset int    `bson:"wordOffset" json:"wordOffset"`
}

// FingerprintSet holds all fingerprints of one document at one n-gram size.
// Fingerprints are in document order. Sets generated at differing NGramSize
// values are never comparable.
type FingerprintSet struct {
	DocumentID   string        `bson:"documentId" json:"documentId"`
	Fingerprints []Fingerprint `bson:"fingerprints" json:"fingerprints"`
	NGramSize    int           `bson:"ngramSize" json:"ngramSize"`
	WordCount    int           `bson:"wordCount" json:"wordCount"`
	GeneratedAt  time.Time     `bson:"generatedAt" json:"generatedAt"`
}
