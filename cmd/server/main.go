package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"freeai/internal/ai"
	"freeai/internal/ai/cohere"
	"freeai/internal/ai/gemini"
	"freeai/internal/ai/groq"
	"freeai/internal/ai/huggingface"
	"freeai/internal/ai/ollama"
	"freeai/internal/ai/openrouter"
	"freeai/internal/catalog"
	"freeai/internal/config"
	"freeai/internal/web"
	staticserver "freeai/static"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`freeai - unified client for free AI inference APIs

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                 Port to listen on (default: 8080)
  DEFAULT_SERVICE      Default provider name (default: ollama)
  DEFAULT_MODEL        Default model (provider default when unset)
  SYSTEM_PROMPT        System prompt prepended to generations
  OLLAMA_HOST          Ollama host URL (default: http://localhost:11434)
  HUGGINGFACE_TOKEN    Hugging Face Inference API token
  OPENROUTER_API_KEY   OpenRouter API key
  COHERE_API_KEY       Cohere API key
  GROQ_API_KEY         Groq API key
  GOOGLE_AI_API_KEY    Google AI Studio key (Gemini)
  GENERATE_RPS         Rate limit for /api/generate (default: 5)

Services with no key configured still register; calls to them fail with a
missing-credential error so the caller sees exactly what is absent.

Visit http://localhost:8080 after starting the server.
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("freeai %s\n", version)
		return
	}

	cfg := config.FromEnv()
	port := *portFlag
	if port == "" {
		port = cfg.Port
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

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

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal(err)
	}
	tracker := catalog.NewTracker(cat)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(web.RequestID())
	r.Use(web.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC(), "version": version})
	})

	srv := web.New(client, cat, tracker, cfg)
	srv.Mount(r)
	io := srv.MountSocket(r)
	defer io.Close()

	// Serve the embedded front-end for all other routes
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})

	zerologlog.Info().Str("port", port).Strs("services", client.Services()).Msg("listening")
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
