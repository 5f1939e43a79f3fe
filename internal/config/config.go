package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Dashboard   DashboardConfig
	Brief       BriefConfig
	Twitter     TwitterConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds Postgres configuration. An empty Host means no
// database is configured and the seeded in-memory store is used instead.
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// Configured reports whether a Postgres connection should be attempted.
func (c DatabaseConfig) Configured() bool {
	return c.Host != ""
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// DashboardConfig holds default filter settings for the dashboard endpoints
type DashboardConfig struct {
	DefaultDatePreset    int
	DefaultMinEngagement float64
	SparklineWindowDays  int
}

// BriefConfig holds brief-generation workflow configuration
type BriefConfig struct {
	WebhookURL     string
	WebhookTimeout time.Duration
	PollInterval   time.Duration
}

// TwitterConfig holds ingest configuration
type TwitterConfig struct {
	BearerToken string
	SearchTerms []string
	MaxResults  int
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", ""),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "trendboard"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Dashboard: DashboardConfig{
			DefaultDatePreset:    getEnvAsInt("DASHBOARD_DEFAULT_DATE_PRESET", 14),
			DefaultMinEngagement: getEnvAsFloat("DASHBOARD_DEFAULT_MIN_ENGAGEMENT", 0),
			SparklineWindowDays:  getEnvAsInt("DASHBOARD_SPARKLINE_WINDOW_DAYS", 14),
		},
		Brief: BriefConfig{
			WebhookURL:     getEnv("BRIEF_WEBHOOK_URL", ""),
			WebhookTimeout: getEnvAsDuration("BRIEF_WEBHOOK_TIMEOUT", 15*time.Second),
			PollInterval:   getEnvAsDuration("BRIEF_POLL_INTERVAL", 3*time.Second),
		},
		Twitter: TwitterConfig{
			BearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
			SearchTerms: getEnvAsSlice("TWITTER_SEARCH_TERMS", []string{}),
			MaxResults:  getEnvAsInt("TWITTER_MAX_RESULTS", 100),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Dashboard.DefaultDatePreset <= 0 {
		return fmt.Errorf("dashboard default date preset must be positive")
	}
	if config.Dashboard.SparklineWindowDays <= 0 {
		return fmt.Errorf("dashboard sparkline window must be positive")
	}
	if config.Brief.PollInterval <= 0 {
		return fmt.Errorf("brief poll interval must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
