package ai

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	calls int
	text  string
	err   error
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestGenerateTextDispatch(t *testing.T) {
	c := NewClient()
	stub := &stubProvider{text: "hello"}
	c.AddService("stub", stub)

	got, err := c.GenerateText(context.Background(), "hi", "stub", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
	if stub.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", stub.calls)
	}
}

func TestGenerateTextUnknownService(t *testing.T) {
	c := NewClient()
	stub := &stubProvider{text: "hello"}
	c.AddService("stub", stub)

	_, err := c.GenerateText(context.Background(), "hi", "nope", Options{})
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("no provider should have been called, got %d calls", stub.calls)
	}
}

func TestGenerateTextEmptyPrompt(t *testing.T) {
	c := NewClient()
	stub := &stubProvider{text: "hello"}
	c.AddService("stub", stub)

	_, err := c.GenerateText(context.Background(), "", "stub", Options{})
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("no provider should have been called, got %d calls", stub.calls)
	}
}

func TestGenerateTextWrapsAdapterError(t *testing.T) {
	c := NewClient()
	cause := StatusError("stub", 503)
	c.AddService("stub", &stubProvider{err: cause})

	_, err := c.GenerateText(context.Background(), "hi", "stub", Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError in chain, got %v", err)
	}
	if pe.Kind != KindHTTPStatus || pe.Status != 503 {
		t.Fatalf("unexpected kind/status: %s/%d", pe.Kind, pe.Status)
	}
}

func TestGenerateTextNoCaching(t *testing.T) {
	c := NewClient()
	stub := &stubProvider{text: "same"}
	c.AddService("stub", stub)

	for i := 0; i < 2; i++ {
		if _, err := c.GenerateText(context.Background(), "identical", "stub", Options{}); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if stub.calls != 2 {
		t.Fatalf("identical calls must issue independent requests, got %d", stub.calls)
	}
}

func TestServicesSorted(t *testing.T) {
	c := NewClient()
	c.AddService("zeta", &stubProvider{})
	c.AddService("alpha", &stubProvider{})
	c.AddService("mid", &stubProvider{})

	names := c.Services()
	if len(names) != 3 {
		t.Fatalf("expected 3 services, got %d", len(names))
	}
	if names[0] != "alpha" || names[1] != "mid" || names[2] != "zeta" {
		t.Fatalf("expected sorted names, got %v", names)
	}
}

func TestModelsUnsupported(t *testing.T) {
	c := NewClient()
	c.AddService("stub", &stubProvider{})

	if _, err := c.Models(context.Background(), "stub"); err == nil {
		t.Fatal("expected error for provider without model listing")
	}
	if _, err := c.Models(context.Background(), "missing"); !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
}
