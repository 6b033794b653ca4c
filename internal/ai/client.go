package ai

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Client routes generation requests to named provider adapters. It holds no
// per-call state; adapters are registered once at startup.
type Client struct {
	mu       sync.RWMutex
	services map[string]Provider
}

func NewClient() *Client {
	return &Client{services: make(map[string]Provider)}
}

// AddService registers a provider under a name. Re-registering a name
// replaces the previous adapter.
func (c *Client) AddService(name string, p Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = p
}

// Service returns the adapter registered under name.
func (c *Client) Service(name string) (Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.services[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownService)
	}
	return p, nil
}

// Services returns the registered service names, sorted for stable output.
func (c *Client) Services() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.services))
	for name := range c.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GenerateText dispatches prompt to the named service. Unknown names fail
// before any network I/O; adapter errors come back wrapped with the service
// name and are never converted into partial output.
func (c *Client) GenerateText(ctx context.Context, prompt string, service string, opts Options) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	p, err := c.Service(service)
	if err != nil {
		return "", err
	}
	text, err := p.Generate(ctx, prompt, opts)
	if err != nil {
		log.Debug().Str("service", service).Err(err).Msg("generate failed")
		return "", fmt.Errorf("%s: %w", service, err)
	}
	return text, nil
}

// Models lists the models of the named service, if it supports listing.
func (c *Client) Models(ctx context.Context, service string) ([]string, error) {
	p, err := c.Service(service)
	if err != nil {
		return nil, err
	}
	lister, ok := p.(ModelLister)
	if !ok {
		return nil, fmt.Errorf("%s: model listing not supported", service)
	}
	models, err := lister.Models(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", service, err)
	}
	return models, nil
}
