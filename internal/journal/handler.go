// Package journal exposes journal entry CRUD over HTTP.
package journal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/serenia-app/serenia/internal/domain"
	"github.com/serenia-app/serenia/internal/server"
	"github.com/serenia-app/serenia/internal/storage"
)

// Handler serves the journal entry endpoints.
type Handler struct {
	store  storage.EntryStore
	logger *slog.Logger
}

// NewHandler creates the journal HTTP handler.
func NewHandler(store storage.EntryStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

type createEntryRequest struct {
	UserID            string                 `json:"user_id"`
	Content           string                 `json:"content"`
	Emotion           domain.Emotion         `json:"emotion"`
	SecondaryEmotions []domain.Emotion       `json:"secondary_emotions"`
	Intensity         int                    `json:"intensity"`
	Tags              []string               `json:"tags"`
	Analysis          *domain.AnalysisResult `json:"ai_analysis"`
	// ApplyAnalysis overwrites the submitted emotion fields with values
	// from the attached analysis. Never applied implicitly.
	ApplyAnalysis bool `json:"apply_analysis"`
}

// HandleList handles GET /api/entries?user_id=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("user_id is required"))
		return
	}

	entries, err := h.store.ListEntries(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, domain.ErrServer("failed to list entries: "+err.Error()))
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// HandleCreate handles POST /api/entries.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrInvalidRequest("invalid request body: "+err.Error()))
		return
	}

	if req.UserID == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("user_id is required"))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("content is required"))
		return
	}

	emotion := req.Emotion
	if emotion == "" {
		emotion = domain.EmotionNeutra
	}
	intensity := req.Intensity
	if intensity < 1 || intensity > 10 {
		intensity = 5
	}

	entry := &domain.Entry{
		ID:                uuid.New().String(),
		UserID:            req.UserID,
		Content:           req.Content,
		Emotion:           emotion,
		SecondaryEmotions: req.SecondaryEmotions,
		Intensity:         intensity,
		Tags:              req.Tags,
		Analysis:          req.Analysis,
		CreatedAt:         time.Now().UTC(),
	}

	if req.ApplyAnalysis {
		entry.ApplyAnalysis(req.Analysis)
	}

	if err := h.store.SaveEntry(r.Context(), entry); err != nil {
		h.writeError(w, r, domain.ErrServer("failed to save entry: "+err.Error()))
		return
	}

	server.AddLogField(r.Context(), "entry_id", entry.ID)
	h.writeJSON(w, http.StatusCreated, entry)
}

// HandleDelete handles DELETE /api/entries/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, r, domain.ErrNotFound("entry not found"))
			return
		}
		h.writeError(w, r, domain.ErrServer("failed to delete entry: "+err.Error()))
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
