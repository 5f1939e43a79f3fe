package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"trendboard/internal/config"
	"trendboard/internal/domain/dashboard"
	"trendboard/internal/server/handlers"
	"trendboard/internal/service/brief"
	"trendboard/internal/service/metrics"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	dashboardCfg config.DashboardConfig,
	store dashboard.Store,
	engine *metrics.Engine,
	sparklines *metrics.SparklineGenerator,
	workflow *brief.Workflow,
	natsConn *nats.Conn,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	trendHandler := handlers.NewTrendHandler(store)
	dashboardHandler := handlers.NewDashboardHandler(store, engine, sparklines, dashboardCfg)
	briefHandler := handlers.NewBriefHandler(store, engine, workflow, dashboardCfg)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Trends API
			r.Route("/trends", func(r chi.Router) {
				r.Get("/", trendHandler.GetTrends)
				r.Get("/{id}", trendHandler.GetTrend)
				r.Get("/{id}/sparkline", dashboardHandler.GetSparkline)

				// Marketing brief workflow
				r.Route("/{id}/brief", func(r chi.Router) {
					r.Post("/", briefHandler.RequestBrief)
					r.Get("/", briefHandler.GetBriefStatus)
				})
			})

			// Dashboard API
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/metrics", dashboardHandler.GetMetrics)
				r.Get("/kpis", dashboardHandler.GetKPIs)
			})
		})
	})

	// WebSocket endpoint for dashboard refresh events
	router.Get("/ws/dashboard", handlers.DashboardWebSocketHandler(natsConn))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
