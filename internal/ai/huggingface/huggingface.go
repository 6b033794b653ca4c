// Package huggingface wraps the Hugging Face Inference API for text
// generation. Responses come back as a list of objects with a generated_text
// field; API-level failures arrive as an {"error": ...} object with a 2xx or
// non-2xx status depending on the failure.
package huggingface

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
	Name         = "huggingface"
	DefaultModel = "HuggingFaceH4/zephyr-7b-beta"
)

type Client struct {
	Token   string
	BaseURL string
	http    *http.Client
}

func New(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	return &Client{Token: token, BaseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 30 * time.Second}}
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	if c.Token == "" {
		return "", fmt.Errorf("HUGGINGFACE_TOKEN: %w", ai.ErrMissingCredential)
	}
	if opts.System != "" {
		prompt = ChatPrompt(opts.System, prompt)
	}
	payload := map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"max_new_tokens": opts.MaxTokensOr(256),
			"temperature":    opts.TemperatureOr(0.7),
			"top_p":          0.95,
		},
	}
	b, _ := json.Marshal(payload)
	url := c.BaseURL + "/models/" + opts.ModelOr(DefaultModel)
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", ai.NetworkError(Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", ai.StatusError(Name, resp.StatusCode)
	}
	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// The API reports model errors as a bare JSON object instead of the
		// usual array envelope.
		return "", ai.BadResponseError(Name, err)
	}
	if len(out) == 0 {
		return "", ai.BadResponseError(Name, errors.New("empty generation list"))
	}
	return strings.TrimSpace(out[0].GeneratedText), nil
}

// ChatPrompt composes a Zephyr-style prompt from a system and user message.
// Many chat-tuned hosted models understand these role tags.
func ChatPrompt(system, user string) string {
	var sb strings.Builder
	if system != "" {
		sb.WriteString("<|system|>")
		sb.WriteString(system)
	}
	sb.WriteString("<|user|>")
	sb.WriteString(user)
	sb.WriteString("<|assistant|>")
	return sb.String()
}
