package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trendboard/internal/config"
	"trendboard/internal/domain/dashboard"
	"trendboard/internal/service/brief"
	"trendboard/internal/service/metrics"
)

// BriefHandler handles marketing-brief generation requests
type BriefHandler struct {
	store    dashboard.Store
	engine   *metrics.Engine
	workflow *brief.Workflow
	defaults config.DashboardConfig
}

// NewBriefHandler creates a new brief handler
func NewBriefHandler(
	store dashboard.Store,
	engine *metrics.Engine,
	workflow *brief.Workflow,
	defaults config.DashboardConfig,
) *BriefHandler {
	return &BriefHandler{
		store:    store,
		engine:   engine,
		workflow: workflow,
		defaults: defaults,
	}
}

// RequestBrief kicks off brief generation for a trend, sending the trend's
// current metrics along to the webhook.
func (h *BriefHandler) RequestBrief(w http.ResponseWriter, r *http.Request) {
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

	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load posts", err)
		return
	}

	links, err := h.store.ListPostTrendLinks(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load post trends", err)
		return
	}

	filters := dashboard.Filters{
		DatePreset:    h.defaults.DefaultDatePreset,
		MinEngagement: h.defaults.DefaultMinEngagement,
	}
	aggregated := h.engine.Aggregate([]dashboard.Trend{*t}, posts, links, filters)

	status, err := h.workflow.Request(r.Context(), *t, aggregated[0])
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Failed to submit brief request", err)
		return
	}

	respondWithJSON(w, http.StatusAccepted, status)
}

// GetBriefStatus reports the workflow state for a trend. A trend that was
// never requested in this process still reports Ready when a brief already
// exists in storage.
func (h *BriefHandler) GetBriefStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing trend ID", nil)
		return
	}

	status := h.workflow.Status(id)
	if status.State != brief.StateIdle {
		respondWithJSON(w, http.StatusOK, status)
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

	if url := brief.ResolveBriefURL(*t, links); url != "" {
		status.State = brief.StateReady
		status.BriefURL = url
	}

	respondWithJSON(w, http.StatusOK, status)
}
