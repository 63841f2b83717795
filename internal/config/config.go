package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Database      DatabaseConfig
	Admin         AdminConfig
	Session       SessionConfig
	Report        ReportConfig
	Observability ObservabilityConfig
	RateLimit     RateLimitConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreConfig selects the record store backing
type StoreConfig struct {
	Backend         string // memory or postgres
	RefreshInterval time.Duration
}

// DatabaseConfig holds database configuration (postgres backend only).
// URL, when set, overrides the discrete fields.
type DatabaseConfig struct {
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// AdminConfig holds the admin gate credential configuration.
// The defaults (admin/123) are NOT suitable for anything beyond a
// local demo; deployments must override ADMIN_USER and ADMIN_PASSWORD.
type AdminConfig struct {
	Username          string
	Password          string
	Argon2Memory      uint32
	Argon2Iterations  uint32
	Argon2Parallelism uint8
	Argon2SaltLength  uint32
	Argon2KeyLength   uint32
}

// SessionConfig holds admin session configuration
type SessionConfig struct {
	CookieName     string
	CookiePath     string
	CookieSecure   bool
	CookieHTTPOnly bool
	Lifetime       time.Duration
	IdleTimeout    time.Duration
}

// ReportConfig holds reporting defaults
type ReportConfig struct {
	WindowDays int
}

// ObservabilityConfig holds logging and tracing configuration
type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string
	OTELEnabled    bool
	ServiceName    string
	ServiceVersion string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  parseDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: parseDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  parseDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		Store: StoreConfig{
			Backend:         getEnv("STORE_BACKEND", BackendMemory),
			RefreshInterval: parseDuration("STORE_REFRESH_INTERVAL", "1m"),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "pipeboard"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "pipeboard"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: parseInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: parseInt("DB_MAX_IDLE_CONNS", 5),
		},
		Admin: AdminConfig{
			Username:          getEnv("ADMIN_USER", "admin"),
			Password:          getEnv("ADMIN_PASSWORD", "123"),
			Argon2Memory:      uint32(parseInt("ARGON2_MEMORY", 65536)),
			Argon2Iterations:  uint32(parseInt("ARGON2_ITERATIONS", 3)),
			Argon2Parallelism: uint8(parseInt("ARGON2_PARALLELISM", 4)),
			Argon2SaltLength:  uint32(parseInt("ARGON2_SALT_LENGTH", 16)),
			Argon2KeyLength:   uint32(parseInt("ARGON2_KEY_LENGTH", 32)),
		},
		Session: SessionConfig{
			CookieName:     getEnv("SESSION_COOKIE_NAME", "pipeboard_admin"),
			CookiePath:     getEnv("SESSION_COOKIE_PATH", "/"),
			CookieSecure:   parseBool("SESSION_COOKIE_SECURE", false),
			CookieHTTPOnly: parseBool("SESSION_COOKIE_HTTP_ONLY", true),
			Lifetime:       parseDuration("SESSION_LIFETIME", "12h"),
			IdleTimeout:    parseDuration("SESSION_IDLE_TIMEOUT", "30m"),
		},
		Report: ReportConfig{
			WindowDays: parseInt("REPORT_WINDOW_DAYS", 30),
		},
		Observability: ObservabilityConfig{
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
			OTELEnabled:    parseBool("OTEL_ENABLED", false),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "pipeboard"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "0.1.0"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: float64(parseInt("RATELIMIT_RPS", 10)),
			Burst:             parseInt("RATELIMIT_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DATABASE_URL or DB_PASSWORD is required for the postgres backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendMemory, BackendPostgres, c.Store.Backend)
	}

	if c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_USER and ADMIN_PASSWORD are required")
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

func parseInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func parseBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func parseDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	d, err := time.ParseDuration(value)
	if err != nil {
		// Fallback to default
		d, _ = time.ParseDuration(defaultValue)
	}
	return d
}
