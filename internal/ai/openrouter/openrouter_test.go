package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"freeai/internal/ai"
)

func TestGenerate(t *testing.T) {
	var headers http.Header
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		headers = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"yo"}}]}`))
	}))
	defer srv.Close()

	c := New("key", srv.URL)
	c.Referer = "http://localhost:3000"
	c.Title = "freeai"
	got, err := c.Generate(context.Background(), "hey", ai.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "yo" {
		t.Fatalf("expected yo, got %q", got)
	}
	if headers.Get("Authorization") != "Bearer key" {
		t.Fatalf("expected bearer auth, got %q", headers.Get("Authorization"))
	}
	if headers.Get("HTTP-Referer") != "http://localhost:3000" || headers.Get("X-Title") != "freeai" {
		t.Fatal("attribution headers missing")
	}
	if body["model"] != DefaultModel {
		t.Fatalf("expected default model, got %v", body["model"])
	}
}

func TestGenerateMissingKey(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	_, err := New("", srv.URL).Generate(context.Background(), "hey", ai.Options{})
	if !errors.Is(err, ai.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if requests != 0 {
		t.Fatal("no request should have been made without a key")
	}
}

func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := New("key", srv.URL).Generate(context.Background(), "hey", ai.Options{})
	var pe *ai.ProviderError
	if !errors.As(err, &pe) || pe.Kind != ai.KindBadResponse {
		t.Fatalf("expected bad_response, got %v", err)
	}
}

func TestGenerateStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New("key", srv.URL).Generate(context.Background(), "hey", ai.Options{})
	var pe *ai.ProviderError
	if !errors.As(err, &pe) || pe.Kind != ai.KindHTTPStatus || pe.Status != 429 {
		t.Fatalf("expected status 429 error, got %v", err)
	}
}

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"meta-llama/llama-3.1-8b-instruct:free"},{"id":"mistralai/mistral-7b-instruct:free"}]}`))
	}))
	defer srv.Close()

	models, err := New("key", srv.URL).Models(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(models) != 2 || models[0] != "meta-llama/llama-3.1-8b-instruct:free" {
		t.Fatalf("unexpected models: %v", models)
	}
}
