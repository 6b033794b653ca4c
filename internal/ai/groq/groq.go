// Package groq wraps Groq's OpenAI-compatible chat completions endpoint.
package groq

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
	Name         = "groq"
	DefaultModel = "llama3-8b-8192"
)

type Client struct {
	APIKey  string
	BaseURL string
	http    *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.groq.com"
	}
	return &Client{APIKey: apiKey, BaseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 30 * time.Second}}
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY: %w", ai.ErrMissingCredential)
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
		"max_tokens":  opts.MaxTokensOr(1000),
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/openai/v1/chat/completions", bytes.NewReader(b))
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
