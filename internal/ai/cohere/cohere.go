// Package cohere wraps the Cohere v1 generate and embed endpoints.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"freeai/internal/ai"
)

const (
	Name         = "cohere"
	DefaultModel = "command"

	embedModel = "embed-english-v2.0"
)

type Client struct {
	APIKey  string
	BaseURL string
	http    *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.cohere.ai/v1"
	}
	return &Client{APIKey: apiKey, BaseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 30 * time.Second}}
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("COHERE_API_KEY: %w", ai.ErrMissingCredential)
	}
	if opts.System != "" {
		prompt = opts.System + "\n\n" + prompt
	}
	payload := map[string]any{
		"model":       opts.ModelOr(DefaultModel),
		"prompt":      prompt,
		"max_tokens":  opts.MaxTokensOr(100),
		"temperature": opts.TemperatureOr(0.7),
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/generate", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", ai.NetworkError(Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", ai.StatusError(Name, resp.StatusCode)
	}
	var out struct {
		Generations []struct {
			Text string `json:"text"`
		} `json:"generations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ai.BadResponseError(Name, err)
	}
	if len(out.Generations) == 0 {
		return "", ai.BadResponseError(Name, errors.New("no generations"))
	}
	return strings.TrimSpace(out.Generations[0].Text), nil
}

// Embed returns one embedding vector per input text.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("COHERE_API_KEY: %w", ai.ErrMissingCredential)
	}
	payload := map[string]any{
		"texts": texts,
		"model": embedModel,
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/embed", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ai.NetworkError(Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, ai.StatusError(Name, resp.StatusCode)
	}
	var out struct {
		Embeddings [][]float64 `json:"embeddings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, ai.BadResponseError(Name, err)
	}
	return out.Embeddings, nil
}
