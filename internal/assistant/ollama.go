// Package assistant wraps a locally running Ollama instance. Everything
// here is best-effort: the site works without it, and callers treat any
// error as "assistant unavailable".
package assistant

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

// Client talks to the Ollama HTTP API.
type Client struct {
	baseURL string
	model   string
	timeout time.Duration
	http    httpretry.HTTPDoer
}

// NewClient creates an Ollama client from configuration. Generation calls
// are bounded by the configured timeout; a local model that takes longer
// is treated as down.
func NewClient(cfg config.AssistantConfig) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		timeout: timeout,
		http:    httpretry.NewRetryClient(&http.Client{Timeout: timeout}, 1),
	}
}

// Status reports whether Ollama is reachable.
func (c *Client) Status(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels returns the names of locally available models.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("parsing models response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
	TopK        int     `json:"top_k"`
	TopP        float64 `json:"top_p"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate runs a single non-streaming completion. The system prompt, if
// any, is prepended in the chat-transcript style the small local models
// respond to best.
func (c *Client) Generate(ctx context.Context, message, systemPrompt string) (string, error) {
	prompt := message
	if systemPrompt != "" {
		prompt = fmt.Sprintf("%s\n\nUser: %s\nAssistant:", systemPrompt, message)
	}

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: 0.7,
			NumPredict:  200,
			TopK:        40,
			TopP:        0.9,
		},
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var gen generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return "", fmt.Errorf("parsing generate response: %w", err)
	}
	if gen.Response == "" {
		return "", fmt.Errorf("empty response from ollama")
	}

	return strings.TrimSpace(gen.Response), nil
}
