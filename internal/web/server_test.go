package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"freeai/internal/ai"
	"freeai/internal/catalog"
	"freeai/internal/config"
)

type stubProvider struct {
	text  string
	err   error
	calls int
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ai.Options) (string, error) {
	s.calls++
	return s.text, s.err
}

func newTestServer(t *testing.T, stub *stubProvider) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := ai.NewClient()
	if stub != nil {
		client.AddService("stub", stub)
	}
	cat, err := catalog.Load()
	require.NoError(t, err)

	srv := New(client, cat, catalog.NewTracker(cat), config.Config{DefaultService: "stub", GenerateRPS: 100})
	r := gin.New()
	r.Use(RequestID())
	srv.Mount(r)
	return srv, r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestServicesEndpoint(t *testing.T) {
	_, r := newTestServer(t, &stubProvider{text: "ok"})
	w := doJSON(r, "GET", "/api/services", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Services []string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, []string{"stub"}, out.Services)
}

func TestGenerateEndpoint(t *testing.T) {
	stub := &stubProvider{text: "hello there"}
	_, r := newTestServer(t, stub)

	w := doJSON(r, "POST", "/api/generate", `{"prompt":"hi","service":"stub"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, stub.calls)

	var out struct {
		Text    string `json:"text"`
		Service string `json:"service"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "hello there", out.Text)
	require.Equal(t, "stub", out.Service)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestGenerateDefaultService(t *testing.T) {
	stub := &stubProvider{text: "defaulted"}
	_, r := newTestServer(t, stub)

	w := doJSON(r, "POST", "/api/generate", `{"prompt":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, stub.calls)
}

func TestGenerateUnknownService(t *testing.T) {
	stub := &stubProvider{text: "x"}
	_, r := newTestServer(t, stub)

	w := doJSON(r, "POST", "/api/generate", `{"prompt":"hi","service":"nope"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, 0, stub.calls)
}

func TestGenerateMissingPrompt(t *testing.T) {
	_, r := newTestServer(t, &stubProvider{})
	w := doJSON(r, "POST", "/api/generate", `{"service":"stub"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateProviderFailure(t *testing.T) {
	stub := &stubProvider{err: ai.StatusError("stub", 500)}
	_, r := newTestServer(t, stub)

	w := doJSON(r, "POST", "/api/generate", `{"prompt":"hi","service":"stub"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGenerateMissingCredential(t *testing.T) {
	stub := &stubProvider{err: fmt.Errorf("HUGGINGFACE_TOKEN: %w", ai.ErrMissingCredential)}
	_, r := newTestServer(t, stub)

	w := doJSON(r, "POST", "/api/generate", `{"prompt":"hi","service":"stub"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestToolsEndpoints(t *testing.T) {
	_, r := newTestServer(t, nil)

	w := doJSON(r, "GET", "/api/tools", "")
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Tools      []catalog.Tool `json:"tools"`
		Categories []string       `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Tools)
	require.Contains(t, out.Categories, "pdf")

	w = doJSON(r, "GET", "/api/tools/pdf", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/tools/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProcessAndStatusFlow(t *testing.T) {
	_, r := newTestServer(t, nil)

	w := doJSON(r, "POST", "/api/process", `{"tool":"pdf_merger"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		TaskID           string `json:"taskId"`
		EstimatedSeconds int    `json:"estimatedSeconds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.TaskID)
	require.Equal(t, 5, created.EstimatedSeconds)

	w = doJSON(r, "GET", "/api/status/"+created.TaskID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var st struct {
		Status   string `json:"status"`
		Progress int    `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Equal(t, "processing", st.Status)
	require.GreaterOrEqual(t, st.Progress, 0)

	w = doJSON(r, "GET", "/api/status/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProcessUnknownTool(t *testing.T) {
	_, r := newTestServer(t, nil)
	w := doJSON(r, "POST", "/api/process", `{"tool":"flux_capacitor"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/limited", RateLimit(1), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make(map[int]int)
	for i := 0; i < 5; i++ {
		w := doJSON(r, "POST", "/limited", "{}")
		codes[w.Code]++
	}
	require.Greater(t, codes[http.StatusTooManyRequests], 0)
	require.Greater(t, codes[http.StatusOK], 0)
}
