// Package knowledge queries the Pinecone vector index that holds portfolio
// snippets (project writeups, resume sections, blog excerpts). It backs
// the assistant's retrieval step and is optional: an unconfigured or
// failing index just means the assistant answers without context.
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rishiv/portfolio-api/internal/config"
	"github.com/rishiv/portfolio-api/internal/pkg/httpretry"
)

// Client talks to one Pinecone index over its data-plane REST API. The
// index is expected to use integrated embedding, so queries are plain text.
type Client struct {
	apiKey    string
	indexHost string
	namespace string
	topK      int
	timeout   time.Duration
	http      httpretry.HTTPDoer
}

// Match is one retrieved snippet.
type Match struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// IndexStats summarizes the index contents.
type IndexStats struct {
	TotalVectorCount int `json:"totalVectorCount"`
	Dimension        int `json:"dimension"`
}

// NewClient creates a Pinecone client from configuration.
func NewClient(cfg config.KnowledgeConfig) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 5
	}
	namespace := cfg.Namespace
	if namespace == "" {
		// Pinecone's name for records upserted without a namespace.
		namespace = "__default__"
	}
	return &Client{
		apiKey:    cfg.APIKey,
		indexHost: strings.TrimSuffix(cfg.IndexHost, "/"),
		namespace: namespace,
		topK:      topK,
		timeout:   timeout,
		http:      httpretry.NewRetryClient(&http.Client{Timeout: timeout}, 2),
	}
}

func (c *Client) post(ctx context.Context, path string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.indexHost+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Pinecone-API-Version", "2025-01")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling pinecone %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("parsing pinecone response: %w", err)
	}
	return nil
}

type statsResponse struct {
	TotalVectorCount int `json:"totalVectorCount"`
	Dimension        int `json:"dimension"`
}

// Stats returns index statistics. Used by the health endpoint to report
// whether retrieval is live.
func (c *Client) Stats(ctx context.Context) (*IndexStats, error) {
	var stats statsResponse
	if err := c.post(ctx, "/describe_index_stats", struct{}{}, &stats); err != nil {
		return nil, err
	}
	return &IndexStats{
		TotalVectorCount: stats.TotalVectorCount,
		Dimension:        stats.Dimension,
	}, nil
}

type searchRequest struct {
	Query searchQuery `json:"query"`
}

type searchQuery struct {
	Inputs map[string]string `json:"inputs"`
	TopK   int               `json:"top_k"`
}

type searchResponse struct {
	Result struct {
		Hits []struct {
			ID     string         `json:"_id"`
			Score  float64        `json:"_score"`
			Fields map[string]any `json:"fields"`
		} `json:"hits"`
	} `json:"result"`
}

// Search retrieves the snippets most similar to the query text.
func (c *Client) Search(ctx context.Context, query string) ([]Match, error) {
	path := fmt.Sprintf("/records/namespaces/%s/search", c.namespace)

	var result searchResponse
	err := c.post(ctx, path, searchRequest{
		Query: searchQuery{
			Inputs: map[string]string{"text": query},
			TopK:   c.topK,
		},
	}, &result)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0, len(result.Result.Hits))
	for _, hit := range result.Result.Hits {
		m := Match{ID: hit.ID, Score: hit.Score}
		if text, ok := hit.Fields["text"].(string); ok {
			m.Text = text
		}
		matches = append(matches, m)
	}
	return matches, nil
}
