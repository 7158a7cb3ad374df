// Package config provides 12-factor configuration management for the overlay backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Desktop: Z-index base, desktop limits, idle eviction
//   - Catalog: Optional directory of window preset overrides
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - DESKTOP_ZINDEX_BASE, DESKTOP_MAX, DESKTOP_IDLE_TTL, DESKTOP_SWEEP_INTERVAL
//   - CATALOG_DIR
package config
