// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/pdiddy/confmatch/internal/httputil"
	"github.com/pdiddy/confmatch/pkg/types"
)

// RemoteError wraps a failure of the remote embedding dependency. Rank
// recovers from it by falling back to the lexical strategy; it is logged,
// never propagated as fatal.
type RemoteError struct {
	Err error
}

func (e *RemoteError) Error() string { return fmt.Sprintf("embedding service: %v", e.Err) }
func (e *RemoteError) Unwrap() error { return e.Err }

// Encoder turns texts into dense vectors. The production implementation is
// the remote Client; tests substitute a local fake.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbeddingStrategy scores by cosine similarity of dense embeddings. The
// paper and every comparison text are encoded in a single batched call;
// scoring behavior is identical to encoding them one by one, batching is
// purely a performance matter.
type EmbeddingStrategy struct {
	Encoder Encoder
}

// Name returns the strategy identifier.
func (s *EmbeddingStrategy) Name() types.SimilarityStrategy { return types.StrategyEmbedding }

// Score embeds paper and comparisons together and returns one cosine
// similarity per comparison text.
func (s *EmbeddingStrategy) Score(ctx context.Context, paper string, comparisons []string) ([]float64, error) {
	texts := append([]string{paper}, comparisons...)
	vectors, err := s.Encoder.Encode(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, &RemoteError{Err: fmt.Errorf("got %d vectors for %d inputs", len(vectors), len(texts))}
	}

	paperVec := vectors[0]
	scores := make([]float64, len(comparisons))
	for i, vec := range vectors[1:] {
		scores[i] = cosineDense(paperVec, vec)
	}
	return scores, nil
}

func cosineDense(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Client calls an OpenAI-compatible embeddings endpoint.
type Client struct {
	cfg    types.EmbeddingConfig
	client *http.Client
}

// NewClient builds a Client. The configured timeout bounds each request so
// an unreachable service can never hang the pipeline.
func NewClient(cfg types.EmbeddingConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type embeddingRequest struct {
	Model string   `json:"model,omitempty"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Encode posts all texts in one batch and returns their vectors in input
// order. Any transport or protocol problem surfaces as a *RemoteError.
func (c *Client) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	if c.cfg.Endpoint == "" {
		return nil, &RemoteError{Err: fmt.Errorf("no endpoint configured")}
	}

	payload, err := json.Marshal(embeddingRequest{Model: c.cfg.Model, Input: texts})
	if err != nil {
		return nil, &RemoteError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &RemoteError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, &RemoteError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteError{Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var er embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, &RemoteError{Err: fmt.Errorf("parsing response: %w", err)}
	}
	if len(er.Data) != len(texts) {
		return nil, &RemoteError{Err: fmt.Errorf("got %d embeddings for %d inputs", len(er.Data), len(texts))}
	}

	vectors := make([][]float64, len(texts))
	for _, d := range er.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, &RemoteError{Err: fmt.Errorf("embedding index %d out of range", d.Index)}
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
