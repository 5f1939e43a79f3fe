package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"trendboard/internal/adapter/seed"
	"trendboard/internal/adapter/storage"
	"trendboard/internal/config"
	"trendboard/internal/domain/dashboard"
	"trendboard/internal/event"
	"trendboard/internal/server"
	"trendboard/internal/service/brief"
	"trendboard/internal/service/metrics"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize the data store: Postgres when configured, otherwise the
	// deterministic seeded store for disconnected operation.
	store, db, err := initStore(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	natsConn, err := initNATS(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	// Initialize the metrics engine and sparkline generator
	engine := metrics.NewEngine(nil)
	sparklines := metrics.NewSparklineGenerator(nil, nil)

	// Initialize the brief workflow; completions fan out to WebSocket
	// clients through NATS.
	submitter := brief.NewWebhookSubmitter(cfg.Brief.WebhookURL, cfg.Brief.WebhookTimeout)
	workflow := brief.NewWorkflow(submitter, nil, func(trendID, url string) {
		payload, _ := json.Marshal(map[string]string{
			"type":      "brief_ready",
			"trend_id":  trendID,
			"brief_url": url,
		})
		if err := natsConn.Publish(event.SubjectBriefReady, payload); err != nil {
			log.Printf("Failed to publish brief ready event: %v", err)
		}
	})

	// The external generation process reports completion by writing a
	// trend link row; poll for it.
	poller := brief.NewPoller(store, workflow, cfg.Brief.PollInterval)
	poller.Start(ctx)

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		cfg.Dashboard,
		store,
		engine,
		sparklines,
		workflow,
		natsConn,
	)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	log.Println("Shutting down services...")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if err := poller.Stop(shutdownCtx); err != nil {
		log.Printf("Brief poller shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}

// initStore picks the backing store implementation.
func initStore(ctx context.Context, cfg config.DatabaseConfig) (dashboard.Store, *pgxpool.Pool, error) {
	if !cfg.Configured() {
		log.Println("No database configured, using seeded in-memory store")
		return seed.NewStore(time.Now()), nil, nil
	}

	db, err := initDatabase(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	return store, db, nil
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return conn, nil
}
