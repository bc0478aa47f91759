package speech

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/serenia-app/serenia/internal/domain"
	"github.com/serenia-app/serenia/internal/server"
)

// Handler exposes text-to-speech over HTTP.
type Handler struct {
	chain  *Chain
	logger *slog.Logger
}

// NewHandler creates the speech HTTP handler.
func NewHandler(chain *Chain, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{chain: chain, logger: logger}
}

type synthesizeRequest struct {
	Text string `json:"text"`
}

// HandleSynthesize handles POST /api/tts. The response body is raw audio,
// with the engine's media type on the Content-Type header.
func (h *Handler) HandleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrInvalidRequest("invalid request body: "+err.Error()))
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("text is required"))
		return
	}

	audio, contentType, err := h.chain.Synthesize(r.Context(), text)
	if err != nil {
		var apiErr *domain.APIError
		if !errors.As(err, &apiErr) {
			apiErr = domain.ErrServer(err.Error())
		}
		h.writeError(w, r, apiErr)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		h.logger.Error("failed to write audio response", slog.String("error", err.Error()))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, apiErr *domain.APIError) {
	server.AddError(r.Context(), apiErr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatusCode())
	json.NewEncoder(w).Encode(map[string]any{"error": apiErr})
}
