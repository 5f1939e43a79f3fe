package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trendboard/internal/domain/dashboard"
	"trendboard/internal/service/brief"
)

// TrendHandler handles trend-related HTTP requests
type TrendHandler struct {
	store dashboard.Store
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(store dashboard.Store) *TrendHandler {
	return &TrendHandler{
		store: store,
	}
}

// GetTrends returns the active trends
func (h *TrendHandler) GetTrends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.store.ListTrends(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get trends", err)
		return
	}

	respondWithJSON(w, http.StatusOK, trends)
}

// GetTrend returns a specific trend by ID with its brief URL resolved
// against the trend links history.
func (h *TrendHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing trend ID", nil)
		return
	}

	t, err := h.store.GetTrend(r.Context(), id)
	if err != nil {
		if errors.Is(err, dashboard.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Trend not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get trend", err)
		}
		return
	}

	links, err := h.store.ListTrendLinks(r.Context(), id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get trend links", err)
		return
	}
	t.BriefURL = brief.ResolveBriefURL(*t, links)

	respondWithJSON(w, http.StatusOK, t)
}
