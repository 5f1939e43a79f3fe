// Command ingest runs a one-shot Twitter recent-search for the configured
// search terms and stores the results as dashboard posts.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"trendboard/internal/adapter/storage"
	"trendboard/internal/adapter/twitter"
	"trendboard/internal/config"
	"trendboard/internal/event"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Twitter.BearerToken == "" {
		log.Fatal("TWITTER_BEARER_TOKEN is required for ingest")
	}
	if len(cfg.Twitter.SearchTerms) == 0 {
		log.Fatal("TWITTER_SEARCH_TERMS is required for ingest")
	}
	if !cfg.Database.Configured() {
		log.Fatal("DB_HOST is required for ingest; posts must land in Postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := storage.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	client := twitter.NewClient(cfg.Twitter.BearerToken)

	total := 0
	for _, term := range cfg.Twitter.SearchTerms {
		posts, err := client.SearchRecent(ctx, term, cfg.Twitter.MaxResults)
		if err != nil {
			log.Fatalf("Failed to search %q: %v", term, err)
		}

		if err := store.SavePosts(ctx, posts); err != nil {
			log.Fatalf("Failed to save posts for %q: %v", term, err)
		}

		log.Printf("Ingested %d posts for %q", len(posts), term)
		total += len(posts)
	}

	// Tell connected dashboards to refresh. Best effort: ingest succeeded
	// even when the event bus is down.
	if err := publishIngested(cfg.NATS, total); err != nil {
		log.Printf("Failed to publish ingest event: %v", err)
	}

	log.Printf("Ingest complete: %d posts", total)
}

func publishIngested(cfg config.NATSConfig, count int) error {
	conn, err := nats.Connect(
		cfg.URL,
		nats.Timeout(cfg.ConnectTimeout),
	)
	if err != nil {
		return fmt.Errorf("unable to connect to NATS: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(map[string]interface{}{
		"type":       "posts_ingested",
		"post_count": count,
		"time":       time.Now(),
	})
	if err != nil {
		return fmt.Errorf("error marshaling ingest event: %w", err)
	}

	if err := conn.Publish(event.SubjectPostsIngested, payload); err != nil {
		return fmt.Errorf("error publishing ingest event: %w", err)
	}

	return conn.Flush()
}

func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	db, err := pgxpool.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}
