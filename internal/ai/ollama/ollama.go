// Package ollama talks to a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"freeai/internal/ai"
)

const (
	Name         = "ollama"
	DefaultModel = "llama2"
)

type Client struct {
	Host string
	http *http.Client
}

func New(host string) *Client {
	if host == "" {
		host = "http://localhost:11434"
	}
	return &Client{Host: strings.TrimRight(host, "/"), http: &http.Client{Timeout: 30 * time.Second}}
}

// Generate issues one POST /api/generate call and returns the response field.
func (c *Client) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	payload := map[string]any{
		"model":  opts.ModelOr(DefaultModel),
		"prompt": prompt,
		"stream": false,
	}
	if opts.System != "" {
		payload["system"] = opts.System
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.Host+"/api/generate", bytes.NewReader(b))
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
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ai.BadResponseError(Name, err)
	}
	return strings.TrimSpace(out.Response), nil
}

// Chat issues one POST /api/chat call with role/content messages.
func (c *Client) Chat(ctx context.Context, system string, prompt string, opts ai.Options) (string, error) {
	messages := []map[string]string{}
	if system != "" {
		messages = append(messages, map[string]string{"role": "system", "content": system})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})
	payload := map[string]any{
		"model":    opts.ModelOr(DefaultModel),
		"messages": messages,
		"stream":   false,
	}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.Host+"/api/chat", bytes.NewReader(b))
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
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", ai.BadResponseError(Name, err)
	}
	return strings.TrimSpace(out.Message.Content), nil
}

// Models lists installed models via GET /api/tags.
func (c *Client) Models(ctx context.Context) ([]string, error) {
	req, _ := http.NewRequestWithContext(ctx, "GET", c.Host+"/api/tags", nil)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ai.NetworkError(Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, ai.StatusError(Name, resp.StatusCode)
	}
	var out struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, ai.BadResponseError(Name, err)
	}
	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
