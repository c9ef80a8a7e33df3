package config

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/JonMunkholm/modeest/internal/mode"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Sprintf(format, args...))
		}
	}

	check(c.Database.URL != "", "DATABASE_URL is required")
	check(c.Database.MaxConns > 0, "DB_MAX_CONNS must be positive")
	check(c.Database.MinConns >= 0, "DB_MIN_CONNS must be non-negative")
	check(c.Database.MaxConns >= c.Database.MinConns,
		"DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", c.Database.MaxConns, c.Database.MinConns)

	check(c.Server.Port > 0 && c.Server.Port <= 65535, "SERVER_PORT (%d) must be 1-65535", c.Server.Port)
	check(c.Server.ReadTimeout >= 0, "SERVER_READ_TIMEOUT must be non-negative")
	check(c.Server.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT must be positive")

	check(c.Analysis.MaxFileSize > 0, "ANALYSIS_MAX_FILE_SIZE must be positive")
	check(c.Analysis.MaxConcurrent > 0, "ANALYSIS_MAX_CONCURRENT must be positive")
	check(c.Analysis.MaxWaitTime > 0, "ANALYSIS_MAX_WAIT_TIME must be positive")
	check(c.Analysis.Timeout > 0, "ANALYSIS_TIMEOUT must be positive")
	if _, err := mode.ParseMethod(c.Analysis.DefaultMethod); err != nil {
		errs = append(errs, fmt.Sprintf("ANALYSIS_DEFAULT_METHOD (%q) must be one of: first, all, single", c.Analysis.DefaultMethod))
	}

	check(!c.Rate.Enabled || c.Rate.RequestsPerMinute > 0,
		"RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")

	for _, p := range c.Security.TrustedProxies {
		if _, err := netip.ParsePrefix(p); err != nil {
			if _, err := netip.ParseAddr(p); err != nil {
				errs = append(errs, fmt.Sprintf("TRUSTED_PROXIES entry %q is not an IP or CIDR", p))
			}
		}
	}
	check(!c.Security.RequireAPIKey || len(c.Security.APIKeys) > 0,
		"REQUIRE_API_KEY is true but API_KEYS is empty")

	check(c.Retention.AnalysisDays >= 0, "RETENTION_ANALYSIS_DAYS must be non-negative")
	check(c.Retention.AuditDays >= 0, "RETENTION_AUDIT_DAYS must be non-negative")
	check(c.Retention.CheckInterval > 0, "RETENTION_CHECK_INTERVAL must be positive")

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String renders the config for startup logs with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Server: {Addr: %q}, Database: {URL: [MASKED], MaxConns: %d, MinConns: %d}, "+
		"Analysis: {MaxFileSize: %d, MaxConcurrent: %d, Timeout: %s, DefaultMethod: %q}, "+
		"Rate: {Enabled: %v, RequestsPerMinute: %d}, Security: {RequireAPIKey: %v, APIKeys: %d}, "+
		"Retention: {AnalysisDays: %d, AuditDays: %d}, Logging: {Level: %q, Format: %q}}",
		c.Server.Addr(), c.Database.MaxConns, c.Database.MinConns,
		c.Analysis.MaxFileSize, c.Analysis.MaxConcurrent, c.Analysis.Timeout, c.Analysis.DefaultMethod,
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Security.RequireAPIKey, len(c.Security.APIKeys),
		c.Retention.AnalysisDays, c.Retention.AuditDays, c.Logging.Level, c.Logging.Format)
}
