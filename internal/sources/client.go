package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/quillcheck/veridoc/internal/detect"
	"github.com/quillcheck/veridoc/internal/models"
	"github.com/rs/zerolog/log"
)

// IndexClient talks to the external source-index service that holds
// pre-indexed web and academic corpora. It implements detect.SourceProvider.
type IndexClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewIndexClient(baseURL, apiKey string) *IndexClient {
	return &IndexClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// lookupRequest carries the query's distinct hashes to the index
type lookupRequest struct {
	DocumentID string   `json:"documentId"`
	NGramSize  int      `json:"ngramSize"`
	Hashes     []uint64 `json:"hashes"`
	Web        bool     `json:"web"`
	Academic   bool     `json:"academic"`
}

// lookupEntry is one matched corpus document returned by the index
type lookupEntry struct {
	Fingerprints *models.FingerprintSet `json:"fingerprints"`
	Source       models.MatchSource     `json:"source"`
}

type lookupError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FetchSources looks up corpus documents sharing fingerprints with the query.
// Returns source-key → {fingerprints, source} entries flattened to a slice.
func (c *IndexClient) FetchSources(ctx context.Context, query *models.FingerprintSet, cfg *models.PlagiarismConfig) ([]detect.SourceDocument, error) {
	url := fmt.Sprintf("%s/api/v1/lookup", c.baseURL)

	seen := make(map[uint64]struct{}, len(query.Fingerprints))
	hashes := make([]uint64, 0, len(query.Fingerprints))
	for _, fp := range query.Fingerprints {
		if _, ok := seen[fp.Hash]; ok {
			continue
		}
		seen[fp.Hash] = struct{}{}
		hashes = append(hashes, fp.Hash)
	}

	reqBody, err := json.Marshal(lookupRequest{
		DocumentID: query.DocumentID,
		NGramSize:  query.NGramSize,
		Hashes:     hashes,
		Web:        cfg.Sources.Web,
		Academic:   cfg.Sources.Academic,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
		var errResp lookupError
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("index error (status %d): %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("index error: %s - %s", errResp.Error, errResp.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var entries map[string]lookupEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	documents := make([]detect.SourceDocument, 0, len(entries))
	for key, entry := range entries {
		if entry.Fingerprints == nil {
			log.Warn().Str("sourceKey", key).Msg("Index entry missing fingerprints, skipping")
			continue
		}
		documents = append(documents, detect.SourceDocument{
			Fingerprints: entry.Fingerprints,
			Source:       entry.Source,
		})
	}

	return documents, nil
}
