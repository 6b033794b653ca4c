package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           string
	DefaultService string
	DefaultModel   string
	SystemPrompt   string

	OllamaHost        string
	HFToken           string
	HFBaseURL         string
	OpenRouterKey     string
	OpenRouterBaseURL string
	OpenRouterReferer string
	OpenRouterTitle   string
	CohereKey         string
	CohereBaseURL     string
	GroqKey           string
	GroqBaseURL       string
	GeminiKey         string
	GeminiBaseURL     string

	// Requests per second allowed on the generation endpoint.
	GenerateRPS float64
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.DefaultService = getenv("DEFAULT_SERVICE", "ollama")
	c.DefaultModel = os.Getenv("DEFAULT_MODEL")
	c.SystemPrompt = os.Getenv("SYSTEM_PROMPT")
	c.OllamaHost = getenv("OLLAMA_HOST", "http://localhost:11434")
	c.HFToken = os.Getenv("HUGGINGFACE_TOKEN")
	c.HFBaseURL = os.Getenv("HF_BASE_URL")
	c.OpenRouterKey = os.Getenv("OPENROUTER_API_KEY")
	c.OpenRouterBaseURL = os.Getenv("OPENROUTER_BASE_URL")
	c.OpenRouterReferer = os.Getenv("OPENROUTER_REFERER")
	c.OpenRouterTitle = getenv("OPENROUTER_TITLE", "freeai")
	c.CohereKey = os.Getenv("COHERE_API_KEY")
	c.CohereBaseURL = os.Getenv("COHERE_BASE_URL")
	c.GroqKey = os.Getenv("GROQ_API_KEY")
	c.GroqBaseURL = os.Getenv("GROQ_BASE_URL")
	c.GeminiKey = os.Getenv("GOOGLE_AI_API_KEY")
	c.GeminiBaseURL = os.Getenv("GEMINI_BASE_URL")
	c.GenerateRPS = getenvFloat("GENERATE_RPS", 5)
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}
