// Package ai defines the common generation contract shared by all provider
// adapters and the unified client that dispatches to them by name.
package ai

import "context"

// Provider is a single inference backend. Implementations issue exactly one
// HTTP request per Generate call; retries and fallback are the caller's job.
type Provider interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// ModelLister is implemented by providers that can enumerate their models
// (ollama via /api/tags, openrouter via /models).
type ModelLister interface {
	Models(ctx context.Context) ([]string, error)
}

// Options tunes a single generation call. The zero value uses each provider's
// defaults.
type Options struct {
	Model       string
	System      string
	Temperature float64
	MaxTokens   int
}

func (o Options) ModelOr(def string) string {
	if o.Model != "" {
		return o.Model
	}
	return def
}

func (o Options) TemperatureOr(def float64) float64 {
	if o.Temperature > 0 {
		return o.Temperature
	}
	return def
}

func (o Options) MaxTokensOr(def int) int {
	if o.MaxTokens > 0 {
		return o.MaxTokens
	}
	return def
}
