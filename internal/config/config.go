// Package config loads settings from environment variables (and a .env file
// loaded by main) and validates them at startup.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Analysis  AnalysisConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Retention RetentionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"5m"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout bounds every non-upload request in middleware.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds PostgreSQL pool settings.
type DatabaseConfig struct {
	// URL accepts DATABASE_URL or DB_URL.
	URL             string        `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`
	MaxConns        int           `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// AnalysisConfig controls CSV analyses and their defaults.
type AnalysisConfig struct {
	MaxFileSize   int64         `env:"ANALYSIS_MAX_FILE_SIZE" default:"104857600"`
	MaxConcurrent int           `env:"ANALYSIS_MAX_CONCURRENT" default:"4"`
	MaxWaitTime   time.Duration `env:"ANALYSIS_MAX_WAIT_TIME" default:"30s"`
	Timeout       time.Duration `env:"ANALYSIS_TIMEOUT" default:"5m"`

	// MissingTokens are the spellings read as a missing value; empty cells
	// always are.
	MissingTokens []string `env:"ANALYSIS_MISSING_TOKENS" default:"NA,N/A,NULL,NaN,-"`

	DefaultMethod string `env:"ANALYSIS_DEFAULT_METHOD" default:"first"`
	RemoveMissing bool   `env:"ANALYSIS_REMOVE_MISSING" default:"false"`
	FirstKnown    bool   `env:"ANALYSIS_FIRST_KNOWN" default:"true"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies are CIDRs whose X-Forwarded-For / X-Real-IP are believed.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
	EnableCSP      bool     `env:"SECURITY_ENABLE_CSP" default:"true"`

	RequireAPIKey bool     `env:"REQUIRE_API_KEY" default:"false"`
	APIKeys       []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" default:"info"`
	Format string `env:"LOG_FORMAT" default:"text"`
}

// RetentionConfig holds how long stored data is kept. Zero days keeps it
// forever.
type RetentionConfig struct {
	AnalysisDays  int           `env:"RETENTION_ANALYSIS_DAYS" default:"30"`
	AuditDays     int           `env:"RETENTION_AUDIT_DAYS" default:"365"`
	CheckInterval time.Duration `env:"RETENTION_CHECK_INTERVAL" default:"24h"`
}

// Addr returns host:port for net/http.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
