package detect

import (
	"hash/fnv"
	"strings"
	"time"
	"unicode"

	"github.com/quillcheck/veridoc/internal/models"
	"golang.org/x/text/unicode/norm"
)

// token is one word of the query text with its byte offset preserved so any
// word index maps back into the original text
type token struct {
	word   string // normalized: NFKC, lowercased, edge punctuation stripped
	offset int    // byte offset of the raw word in the original text
}

// tokenize splits text on whitespace, keeping byte offsets. Words that are
// pure punctuation normalize to empty and are dropped.
func tokenize(text string) []token {
	tokens := make([]token, 0, len(text)/6)
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := normalizeWord(text[start:end])
		if word != "" {
			tokens = append(tokens, token{word: word, offset: start})
		}
		start = -1
	}

	for i, r := range text {
		if unicode.IsSpace(r) {
			flush(i)
		} else if start < 0 {
			start = i
		}
	}
	flush(len(text))

	return tokens
}

func normalizeWord(raw string) string {
	w := norm.NFKC.String(raw)
	w = strings.ToLower(w)
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func hashNGram(ngram string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(ngram))
	return h.Sum64()
}

// GenerateFingerprints slides a window of ngramSize consecutive words across
// the document and hashes each window. Documents shorter than ngramSize words
// yield an empty set, not an error.
func GenerateFingerprints(documentID, text string, ngramSize int) *models.FingerprintSet {
	tokens := tokenize(text)

	set := &models.FingerprintSet{
		DocumentID:   documentID,
		Fingerprints: []models.Fingerprint{},
		NGramSize:    ngramSize,
		WordCount:    len(tokens),
		GeneratedAt:  time.Now(),
	}

	if ngramSize <= 0 || len(tokens) < ngramSize {
		return set
	}

	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.word
	}

	set.Fingerprints = make([]models.Fingerprint, 0, len(tokens)-ngramSize+1)
	for i := 0; i+ngramSize <= len(tokens); i++ {
		ngram := strings.Join(words[i:i+ngramSize], " ")
		set.Fingerprints = append(set.Fingerprints, models.Fingerprint{
			Hash:       hashNGram(ngram),
			Position:   tokens[i].offset,
			NGram:      ngram,
			WordOffset: i,
		})
	}

	return set
}

// CountWords reports the number of whitespace-delimited words in text
func CountWords(text string) int {
	return len(tokenize(text))
}
