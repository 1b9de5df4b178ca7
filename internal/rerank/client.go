// Package rerank provides an HTTP client for the cross-encoder scoring
// sidecar. The sidecar hosts the model and exposes a single batch scoring
// endpoint; this client is the only process boundary in the answer path.
package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"
)

const requestTimeout = 15 * time.Second

// Client talks to the cross-encoder sidecar.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a reusable HTTP client for the sidecar at endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

type scoreRequest struct {
	Query string   `json:"query"`
	Texts []string `json:"texts"`
}

type scoreResponse struct {
	Scores []*float64 `json:"scores"`
}

// Score submits (query, text) pairs in one batch and returns one score per
// text, in input order. A null score in the response means the sidecar could
// not score that pair; it comes back as NaN. Transport failures, non-200
// statuses, and score-count mismatches are errors.
func (c *Client) Score(ctx context.Context, query string, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return []float64{}, nil
	}

	body, err := json.Marshal(scoreRequest{Query: query, Texts: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var decoded scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Scores) != len(texts) {
		return nil, fmt.Errorf("got %d scores for %d texts", len(decoded.Scores), len(texts))
	}

	scores := make([]float64, len(decoded.Scores))
	for i, s := range decoded.Scores {
		if s == nil {
			scores[i] = math.NaN()
			continue
		}
		scores[i] = *s
	}
	return scores, nil
}
