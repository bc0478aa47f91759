package library

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serenia-app/serenia/internal/domain"
	"github.com/serenia-app/serenia/internal/server"
)

// Handler serves the catalog endpoints.
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates the library HTTP handler.
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// HandleResources handles GET /api/resources?emotion=.
func (h *Handler) HandleResources(w http.ResponseWriter, r *http.Request) {
	emotion := r.URL.Query().Get("emotion")
	h.writeJSON(w, http.StatusOK, map[string]any{"resources": FilterByEmotion(emotion)})
}

// HandleTests handles GET /api/tests.
func (h *Handler) HandleTests(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"tests": Tests()})
}

type scoreRequest struct {
	Answers map[int]int `json:"answers"`
}

// HandleScore handles POST /api/tests/{id}/score.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	testID := chi.URLParam(r, "id")

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrInvalidRequest("invalid request body: "+err.Error()))
		return
	}

	result, err := Score(testID, req.Answers)
	if err != nil {
		var apiErr *domain.APIError
		if !errors.As(err, &apiErr) {
			apiErr = domain.ErrServer(err.Error())
		}
		h.writeError(w, r, apiErr)
		return
	}

	server.AddLogField(r.Context(), "test_id", testID)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, apiErr *domain.APIError) {
	server.AddError(r.Context(), apiErr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatusCode())
	json.NewEncoder(w).Encode(map[string]any{"error": apiErr})
}
