// Package gemini wraps Google's Generative Language API (AI Studio keys).
// Authentication uses a key query parameter instead of a bearer header.
package gemini

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
	Name         = "gemini"
	DefaultModel = "gemini-pro"
)

type Client struct {
	APIKey  string
	BaseURL string
	http    *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	return &Client{APIKey: apiKey, BaseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 30 * time.Second}}
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("GOOGLE_AI_API_KEY: %w", ai.ErrMissingCredential)
	}
	if opts.System != "" {
		prompt = opts.System + "\n\n" + prompt
	}
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":     opts.TemperatureOr(0.7),
			"topK":            40,
			"topP":            0.95,
			"maxOutputTokens": opts.MaxTokensOr(1024),
		},
	}
	b, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.BaseURL, opts.ModelOr(DefaultModel), c.APIKey)
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
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
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ai.BadResponseError(Name, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ai.BadResponseError(Name, errors.New("no candidates"))
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
