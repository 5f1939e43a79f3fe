package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"trendboard/internal/config"
	"trendboard/internal/domain/dashboard"
	"trendboard/internal/service/metrics"
)

// DashboardHandler serves aggregated trend metrics, KPI summaries, and
// sparkline series.
type DashboardHandler struct {
	store      dashboard.Store
	engine     *metrics.Engine
	sparklines *metrics.SparklineGenerator
	defaults   config.DashboardConfig
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	store dashboard.Store,
	engine *metrics.Engine,
	sparklines *metrics.SparklineGenerator,
	defaults config.DashboardConfig,
) *DashboardHandler {
	return &DashboardHandler{
		store:      store,
		engine:     engine,
		sparklines: sparklines,
		defaults:   defaults,
	}
}

// GetMetrics returns one metrics record per trend under the requested
// filters. Pass active_only=true to drop trends without posts.
func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	filters := h.parseFilters(r)

	trends, posts, links, err := h.loadCollections(r)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard data", err)
		return
	}

	aggregated := h.engine.Aggregate(trends, posts, links, filters)

	if r.URL.Query().Get("active_only") == "true" {
		active := make([]dashboard.TrendMetrics, 0, len(aggregated))
		for _, m := range aggregated {
			if len(m.Posts) > 0 {
				active = append(active, m)
			}
		}
		aggregated = active
	}

	respondWithJSON(w, http.StatusOK, aggregated)
}

// GetKPIs returns the dashboard summary counters under the requested filters.
func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	filters := h.parseFilters(r)

	trends, posts, links, err := h.loadCollections(r)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard data", err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.engine.KPIs(trends, posts, links, filters))
}

// GetSparkline returns the daily engagement series for one trend.
func (h *DashboardHandler) GetSparkline(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing trend ID", nil)
		return
	}

	if _, err := h.store.GetTrend(r.Context(), id); err != nil {
		respondWithError(w, http.StatusNotFound, "Trend not found", nil)
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

	days := h.defaults.SparklineWindowDays
	if v, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && v > 0 {
		days = v
	}

	series := h.sparklines.Series(trendPosts(id, posts, links), days)
	respondWithJSON(w, http.StatusOK, series)
}

func (h *DashboardHandler) loadCollections(r *http.Request) ([]dashboard.Trend, []dashboard.Post, []dashboard.PostTrendLink, error) {
	ctx := r.Context()

	trends, err := h.store.ListTrends(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	posts, err := h.store.ListPosts(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	links, err := h.store.ListPostTrendLinks(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	return trends, posts, links, nil
}

func (h *DashboardHandler) parseFilters(r *http.Request) dashboard.Filters {
	filters := dashboard.Filters{
		DatePreset:    h.defaults.DefaultDatePreset,
		MinEngagement: h.defaults.DefaultMinEngagement,
	}

	q := r.URL.Query()

	if terms := q.Get("search_terms"); terms != "" {
		filters.SearchTerms = strings.Split(terms, ",")
	}
	if v, err := strconv.Atoi(q.Get("days")); err == nil && v > 0 {
		filters.DatePreset = v
	}
	if v, err := strconv.ParseFloat(q.Get("min_engagement"), 64); err == nil && v >= 0 {
		filters.MinEngagement = v
	}

	return filters
}

// trendPosts selects the posts linked to a trend, deduplicating link rows.
func trendPosts(trendID string, posts []dashboard.Post, links []dashboard.PostTrendLink) []dashboard.Post {
	wanted := make(map[string]struct{})
	for _, l := range links {
		if l.TrendID == trendID {
			wanted[l.PostID] = struct{}{}
		}
	}

	var selected []dashboard.Post
	for _, p := range posts {
		if _, ok := wanted[p.PostID]; ok {
			selected = append(selected, p)
		}
	}
	return selected
}
