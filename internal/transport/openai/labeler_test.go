package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterUpstreamMetrics()
	os.Exit(m.Run())
}

type stubObjects struct {
	data []byte
	err  error
}

func (s *stubObjects) Get(context.Context, string, string) ([]byte, error) {
	return s.data, s.err
}

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n0000")

func completionServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content []struct {
					Type     string `json:"type"`
					ImageURL struct {
						URL string `json:"url"`
					} `json:"image_url"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "vision-model" {
			t.Errorf("unexpected model %s", req.Model)
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Content) != 2 {
			t.Fatalf("unexpected messages %+v", req.Messages)
		}
		if !strings.HasPrefix(req.Messages[0].Content[1].ImageURL.URL, "data:image/png;base64,") {
			t.Errorf("unexpected image url %s", req.Messages[0].Content[1].ImageURL.URL)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "vision-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": answer},
			}},
			"usage": map[string]any{"prompt_tokens": 85, "completion_tokens": 6, "total_tokens": 91},
		})
	}))
}

func TestLabeler_DetectLabels(t *testing.T) {
	server := completionServer(t, "Dog, Grass ,  , Ball")
	defer server.Close()

	l := NewLabeler(&Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "vision-model",
		Logger:  zap.NewNop(),
	}, &stubObjects{data: pngHeader})

	labels, err := l.DetectLabels(context.Background(), "bucket", "dog.png")
	if err != nil {
		t.Fatalf("DetectLabels failed: %v", err)
	}
	want := []string{"Dog", "Grass", "Ball"}
	if len(labels) != len(want) {
		t.Fatalf("expected %v, got %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d: expected %s, got %s", i, want[i], labels[i])
		}
	}
}

func TestLabeler_ObjectError(t *testing.T) {
	l := NewLabeler(&Config{APIKey: "k", BaseURL: "http://127.0.0.1:1", Model: "m"},
		&stubObjects{err: domain.ErrObjectNotFound})
	_, err := l.DetectLabels(context.Background(), "bucket", "gone.png")
	if !errors.Is(err, domain.ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestLabeler_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"image too large"}`))
	}))
	defer server.Close()

	l := NewLabeler(&Config{APIKey: "test-key", BaseURL: server.URL, Model: "vision-model"},
		&stubObjects{data: pngHeader})
	_, err := l.DetectLabels(context.Background(), "bucket", "big.png")
	if !errors.Is(err, domain.ErrVisionProvider) {
		t.Fatalf("expected ErrVisionProvider, got %v", err)
	}
	if !strings.Contains(err.Error(), "image too large") {
		t.Errorf("expected detail in error, got %v", err)
	}
}

func TestLabeler_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"vision-model","object":"model"}]}`))
	}))
	defer server.Close()

	l := NewLabeler(&Config{APIKey: "test-key", BaseURL: server.URL, Model: "vision-model"}, &stubObjects{})
	if err := l.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDataURL_SniffsContentType(t *testing.T) {
	got := dataURL([]byte("\xff\xd8\xff\xe0jpegdata"))
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Errorf("unexpected data url %s", got)
	}
}
