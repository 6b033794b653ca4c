// askai is a one-shot command line front-end for the unified AI client.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"freeai/internal/ai"
	"freeai/internal/ai/cohere"
	"freeai/internal/ai/gemini"
	"freeai/internal/ai/groq"
	"freeai/internal/ai/huggingface"
	"freeai/internal/ai/ollama"
	"freeai/internal/ai/openrouter"
	"freeai/internal/config"
)

type cli struct {
	Prompt       string        `arg:"" optional:"" help:"Prompt text. Reads from stdin when omitted."`
	Service      string        `short:"s" help:"Provider to use (default: DEFAULT_SERVICE env or ollama)."`
	Model        string        `short:"m" help:"Model identifier (provider default when unset)."`
	System       string        `help:"System prompt."`
	Temperature  float64       `help:"Sampling temperature." default:"0"`
	MaxTokens    int           `name:"max-tokens" help:"Maximum tokens to generate." default:"0"`
	Timeout      time.Duration `help:"Request timeout." default:"60s"`
	JSON         bool          `name:"json" help:"Print a JSON envelope instead of plain text."`
	ListServices bool          `name:"list-services" help:"List registered services and exit."`
	ListModels   bool          `name:"list-models" help:"List the selected service's models and exit."`
	Verbose      bool          `short:"v" help:"Enable debug logging."`
}

func main() {
	var flags cli
	kctx := kong.Parse(&flags,
		kong.Name("askai"),
		kong.Description("Send one prompt to a free AI inference provider."),
	)

	zerologlog.Logger = zerologlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if !flags.Verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	cfg := config.FromEnv()
	client := buildClient(cfg)

	service := flags.Service
	if service == "" {
		service = cfg.DefaultService
	}

	ctx, cancel := context.WithTimeout(context.Background(), flags.Timeout)
	defer cancel()

	switch {
	case flags.ListServices:
		for _, name := range client.Services() {
			fmt.Println(name)
		}
	case flags.ListModels:
		models, err := client.Models(ctx, service)
		kctx.FatalIfErrorf(err)
		for _, m := range models {
			fmt.Println(m)
		}
	default:
		prompt := flags.Prompt
		if prompt == "" {
			b, err := io.ReadAll(os.Stdin)
			kctx.FatalIfErrorf(err)
			prompt = strings.TrimSpace(string(b))
		}
		if prompt == "" {
			kctx.Fatalf("provide a prompt argument or pipe one on stdin")
		}
		opts := ai.Options{
			Model:       flags.Model,
			System:      flags.System,
			Temperature: flags.Temperature,
			MaxTokens:   flags.MaxTokens,
		}
		if opts.Model == "" {
			opts.Model = cfg.DefaultModel
		}
		if opts.System == "" {
			opts.System = cfg.SystemPrompt
		}
		text, err := client.GenerateText(ctx, prompt, service, opts)
		kctx.FatalIfErrorf(err)
		if flags.JSON {
			out, _ := json.MarshalIndent(map[string]string{"service": service, "text": text}, "", "  ")
			fmt.Println(string(out))
		} else {
			fmt.Println(text)
		}
	}
}

func buildClient(cfg config.Config) *ai.Client {
	client := ai.NewClient()
	client.AddService(ollama.Name, ollama.New(cfg.OllamaHost))
	client.AddService(huggingface.Name, huggingface.New(cfg.HFToken, cfg.HFBaseURL))
	or := openrouter.New(cfg.OpenRouterKey, cfg.OpenRouterBaseURL)
	or.Referer = cfg.OpenRouterReferer
	or.Title = cfg.OpenRouterTitle
	client.AddService(openrouter.Name, or)
	client.AddService(cohere.Name, cohere.New(cfg.CohereKey, cfg.CohereBaseURL))
	client.AddService(groq.Name, groq.New(cfg.GroqKey, cfg.GroqBaseURL))
	client.AddService(gemini.Name, gemini.New(cfg.GeminiKey, cfg.GeminiBaseURL))
	return client
}
