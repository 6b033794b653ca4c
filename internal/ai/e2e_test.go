package ai_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"freeai/internal/ai"
	"freeai/internal/ai/ollama"
)

func TestEndToEndOllamaStub(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"2+2=4"}`))
	}))
	defer srv.Close()

	client := ai.NewClient()
	client.AddService("ollama", ollama.New(srv.URL))

	got, err := client.GenerateText(context.Background(), "What is 2+2?", "ollama", ai.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2+2=4" {
		t.Fatalf("expected 2+2=4, got %q", got)
	}
	if requests != 1 {
		t.Fatalf("expected exactly one outbound request, got %d", requests)
	}
}
