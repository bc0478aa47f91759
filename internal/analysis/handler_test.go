package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postAnalyze(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ai", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAnalyze(rec, req)
	return rec
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"msg_1","content":[{"type":"text","text":"{\"primary\":\"calma\",\"summary\":\"Todo tranquilo.\"}"}]}`)
	})
	h := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := postAnalyze(t, h, `{"text":"hoy fue un día tranquilo y sin sobresaltos"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		UsedModel string `json:"usedModel"`
		Primary   string `json:"primary"`
		Summary   string `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UsedModel != testModels[0] {
		t.Errorf("usedModel = %q", resp.UsedModel)
	}
	if resp.Primary != "calma" {
		t.Errorf("primary = %q", resp.Primary)
	}
}

func TestHandleAnalyzeStatuses(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		upstream http.HandlerFunc
		want     int
		reason   string
	}{
		{
			name: "short text",
			body: `{"text":"short"}`,
			upstream: func(w http.ResponseWriter, r *http.Request) {
				t.Error("no upstream call expected")
			},
			want:   http.StatusBadRequest,
			reason: "invalid_request",
		},
		{
			name: "missing text",
			body: `{}`,
			upstream: func(w http.ResponseWriter, r *http.Request) {
				t.Error("no upstream call expected")
			},
			want:   http.StatusBadRequest,
			reason: "invalid_request",
		},
		{
			name:   "malformed body",
			body:   `{"text": 12`,
			want:   http.StatusBadRequest,
			reason: "invalid_request",
		},
		{
			name: "cascade exhausted",
			body: `{"text":"hoy fue un día bastante complicado en clase"}`,
			upstream: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			want:   http.StatusBadGateway,
			reason: "provider_exhausted",
		},
		{
			name: "unparseable reply",
			body: `{"text":"hoy fue un día bastante complicado en clase"}`,
			upstream: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"content":[{"type":"text","text":"no JSON here"}]}`)
			},
			want:   http.StatusBadGateway,
			reason: "upstream_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := tt.upstream
			if upstream == nil {
				upstream = func(w http.ResponseWriter, r *http.Request) {}
			}
			svc, _ := newTestService(t, upstream)
			h := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

			rec := postAnalyze(t, h, tt.body)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.want, rec.Body.String())
			}

			var resp struct {
				Error struct {
					Type string `json:"type"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Error.Type != tt.reason {
				t.Errorf("error type = %q, want %q", resp.Error.Type, tt.reason)
			}
		})
	}
}

func TestHandleAnalyzeMissingCredential(t *testing.T) {
	cascade := NewCascade(nil, testModels, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc := NewService(cascade, false, 1200, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := postAnalyze(t, h, `{"text":"hoy fue un día bastante complicado en clase"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "configuration") {
		t.Errorf("expected configuration error, got %s", rec.Body.String())
	}
}
