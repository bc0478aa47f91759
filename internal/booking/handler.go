// Package booking exposes session booking endpoints.
package booking

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/serenia-app/serenia/internal/domain"
	"github.com/serenia-app/serenia/internal/server"
	"github.com/serenia-app/serenia/internal/storage"
)

// Handler serves the booking endpoints.
type Handler struct {
	store  storage.BookingStore
	logger *slog.Logger
}

// NewHandler creates the booking HTTP handler.
func NewHandler(store storage.BookingStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

type createBookingRequest struct {
	Pro  string `json:"pro"`
	Hora string `json:"hora"`
}

// HandleCreate handles POST /api/bookings.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, domain.ErrInvalidRequest("invalid request body: "+err.Error()))
		return
	}

	if strings.TrimSpace(req.Pro) == "" || strings.TrimSpace(req.Hora) == "" {
		h.writeError(w, r, domain.ErrInvalidRequest("pro and hora are required"))
		return
	}

	b := &domain.Booking{
		ID:        uuid.New().String(),
		Pro:       req.Pro,
		Hora:      req.Hora,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.AppendBooking(r.Context(), b); err != nil {
		h.writeError(w, r, domain.ErrServer("failed to save booking: "+err.Error()))
		return
	}

	server.AddLogField(r.Context(), "booking_id", b.ID)
	h.writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "booking": b})
}

// HandleList handles GET /api/bookings.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.store.ListBookings(r.Context())
	if err != nil {
		h.writeError(w, r, domain.ErrServer("failed to list bookings: "+err.Error()))
		return
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
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
