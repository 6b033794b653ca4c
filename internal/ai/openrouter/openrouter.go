// Package openrouter wraps the OpenRouter gateway (OpenAI-compatible chat
// completions over many hosted models).
package openrouter

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
	Name         = "openrouter"
	DefaultModel = "meta-llama/llama-3.1-8b-instruct:free"
)

type Client struct {
	APIKey  string
	BaseURL string
	Referer string // optional HTTP-Referer attribution header
	Title   string // optional X-Title attribution header
	http    *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &Client{APIKey: apiKey, BaseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 30 * time.Second}}
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY: %w", ai.ErrMissingCredential)
	}
	messages := []map[string]string{}
	if opts.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": opts.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})
	payload := map[string]any{
		"model":       opts.ModelOr(DefaultModel),
		"messages":    messages,
		"temperature": opts.TemperatureOr(0.7),
		"max_tokens":  opts.MaxTokensOr(500),
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/chat/completions", bytes.NewReader(b))
	c.setHeaders(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return "", ai.NetworkError(Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", ai.StatusError(Name, resp.StatusCode)
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ai.BadResponseError(Name, err)
	}
	if len(out.Choices) == 0 {
		return "", ai.BadResponseError(Name, errors.New("no choices"))
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// Models lists the gateway's available model ids via GET /models.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/models", nil)
	c.setHeaders(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ai.NetworkError(Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, ai.StatusError(Name, resp.StatusCode)
	}
	var out struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, ai.BadResponseError(Name, err)
	}
	ids := make([]string, 0, len(out.Data))
	for _, m := range out.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if c.Referer != "" {
		req.Header.Set("HTTP-Referer", c.Referer)
	}
	if c.Title != "" {
		req.Header.Set("X-Title", c.Title)
	}
}
