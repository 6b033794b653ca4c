// Package catalog holds the static tool table and the simulated-progress task
// tracker behind the demo front-end. No tool performs real processing; the
// tracker only interpolates progress over each tool's declared duration.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed tools.yaml
var manifest []byte

type Tool struct {
	Slug             string `yaml:"slug" json:"slug"`
	Name             string `yaml:"name" json:"name"`
	Category         string `yaml:"category" json:"category"`
	Description      string `yaml:"description" json:"description"`
	EstimatedSeconds int    `yaml:"estimated_seconds" json:"estimatedSeconds"`
}

type Catalog struct {
	tools  []Tool
	bySlug map[string]Tool
}

// Load parses the embedded tool manifest.
func Load() (*Catalog, error) {
	return parse(manifest)
}

func parse(data []byte) (*Catalog, error) {
	var doc struct {
		Tools []Tool `yaml:"tools"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tool manifest: %w", err)
	}
	c := &Catalog{bySlug: make(map[string]Tool, len(doc.Tools))}
	for _, tool := range doc.Tools {
		if tool.Slug == "" || tool.Name == "" {
			return nil, fmt.Errorf("tool manifest entry missing slug or name: %+v", tool)
		}
		if _, dup := c.bySlug[tool.Slug]; dup {
			return nil, fmt.Errorf("duplicate tool slug %q", tool.Slug)
		}
		if tool.EstimatedSeconds <= 0 {
			tool.EstimatedSeconds = 10
		}
		c.bySlug[tool.Slug] = tool
		c.tools = append(c.tools, tool)
	}
	sort.Slice(c.tools, func(i, j int) bool { return c.tools[i].Slug < c.tools[j].Slug })
	return c, nil
}

// Tools returns all tools sorted by slug.
func (c *Catalog) Tools() []Tool {
	out := make([]Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// ByCategory returns the tools in a category, sorted by slug.
func (c *Catalog) ByCategory(category string) []Tool {
	var out []Tool
	for _, t := range c.tools {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Get looks a tool up by slug.
func (c *Catalog) Get(slug string) (Tool, bool) {
	t, ok := c.bySlug[slug]
	return t, ok
}

// Categories returns the distinct category names, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range c.tools {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}
