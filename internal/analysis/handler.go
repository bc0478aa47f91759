package analysis

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/serenia-app/serenia/internal/domain"
	"github.com/serenia-app/serenia/internal/server"
)

// Handler exposes the analysis pipeline over HTTP.
type Handler struct {
	svc    *Service
	logger *slog.Logger
}

// NewHandler creates the analysis HTTP handler.
func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// HandleAnalyze handles POST /api/ai.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrInvalidRequest("invalid request body: "+err.Error()))
		return
	}

	result, err := h.svc.Analyze(r.Context(), req.Text)
	if err != nil {
		var apiErr *domain.APIError
		if !errors.As(err, &apiErr) {
			apiErr = domain.ErrServer(err.Error())
		}
		h.writeError(w, r, apiErr)
		return
	}

	server.AddLogField(r.Context(), "used_model", result.UsedModel)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.Error("failed to encode analysis response", slog.String("error", err.Error()))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, apiErr *domain.APIError) {
	server.AddError(r.Context(), apiErr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatusCode())
	json.NewEncoder(w).Encode(map[string]any{"error": apiErr})
}
