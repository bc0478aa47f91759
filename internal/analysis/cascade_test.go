package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/serenia-app/serenia/internal/api/anthropic"
	"github.com/serenia-app/serenia/internal/domain"
)

var testModels = []string{
	"claude-sonnet-4-5-20250929",
	"claude-haiku-4-5-20251001",
	"claude-3-5-haiku-20241022",
}

func TestCascadeFallback(t *testing.T) {
	var mu sync.Mutex
	var attempted []string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req anthropic.MessagesRequest
		decodeBody(t, r, &req)

		mu.Lock()
		attempted = append(attempted, req.Model)
		n := len(attempted)
		mu.Unlock()

		switch n {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
		case 2:
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"type":"error","error":{"type":"overloaded_error","message":"overloaded"}}`)
		default:
			fmt.Fprint(w, `{"id":"msg_1","type":"message","role":"assistant","content":[{"type":"text","text":"{\"primary\":\"calma\"}"}],"model":"claude-3-5-haiku-20241022"}`)
		}
	}))
	defer ts.Close()

	client := anthropic.NewClient("test-key", anthropic.WithBaseURL(ts.URL))
	cascade := NewCascade(client, testModels, slog.New(slog.NewTextHandler(io.Discard, nil)))

	resp, usedModel, err := cascade.Invoke(context.Background(), &anthropic.MessagesRequest{
		MaxTokens: 1200,
		Messages:  []anthropic.Message{{Role: "user", Content: "hola"}},
	})
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}

	if usedModel != testModels[2] {
		t.Errorf("usedModel = %q, want %q", usedModel, testModels[2])
	}
	if resp.Text() != `{"primary":"calma"}` {
		t.Errorf("unexpected reply text: %q", resp.Text())
	}

	// Exactly three outbound calls, in cascade order.
	if len(attempted) != 3 {
		t.Fatalf("attempts = %d, want 3", len(attempted))
	}
	for i, model := range testModels {
		if attempted[i] != model {
			t.Errorf("attempt %d = %q, want %q", i, attempted[i], model)
		}
	}
}

func TestCascadeFirstSuccessStops(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"id":"msg_1","type":"message","content":[{"type":"text","text":"{}"}]}`)
	}))
	defer ts.Close()

	client := anthropic.NewClient("test-key", anthropic.WithBaseURL(ts.URL))
	cascade := NewCascade(client, testModels, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, usedModel, err := cascade.Invoke(context.Background(), &anthropic.MessagesRequest{MaxTokens: 1200})
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if usedModel != testModels[0] {
		t.Errorf("usedModel = %q, want first model", usedModel)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no further attempts after success)", calls)
	}
}

func TestCascadeExhaustion(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := anthropic.NewClient("test-key", anthropic.WithBaseURL(ts.URL))
	cascade := NewCascade(client, testModels, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, _, err := cascade.Invoke(context.Background(), &anthropic.MessagesRequest{MaxTokens: 1200})
	if err == nil {
		t.Fatal("expected exhaustion error")
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != domain.ErrorTypeProviderExhausted {
		t.Fatalf("expected provider_exhausted, got %v", err)
	}
	if calls != len(testModels) {
		t.Errorf("calls = %d, want %d (one per model, no retries)", calls, len(testModels))
	}
}

func TestCascadeTransportFailureSkips(t *testing.T) {
	// A server that is immediately closed produces transport errors.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := anthropic.NewClient("test-key", anthropic.WithBaseURL(ts.URL))
	cascade := NewCascade(client, testModels, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, _, err := cascade.Invoke(context.Background(), &anthropic.MessagesRequest{MaxTokens: 1200})

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Type != domain.ErrorTypeProviderExhausted {
		t.Fatalf("transport failures must exhaust like HTTP failures, got %v", err)
	}
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	s := strings.Repeat("ñ", 200)

	got := truncate(s, 180)
	if n := len([]rune(got)); n != 180 {
		t.Errorf("truncated length = %d runes, want 180", n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncate split a multibyte character")
	}

	if got := truncate("corto", 180); got != "corto" {
		t.Errorf("truncate(short) = %q, want unchanged", got)
	}
}
