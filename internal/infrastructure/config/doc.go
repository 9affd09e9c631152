// Package config provides 12-factor configuration management for the
// desktop server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, CORS origins, gzip)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Desktop: Window defaults, spawn range, viewport, clock
//   - Catalog: Directory of extra app catalog files
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, CORS_ORIGINS, GZIP_ENABLED, SHUTDOWN_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - DESK_THEME, DESK_STACK_BASE, DESK_WINDOW_WIDTH, DESK_WINDOW_HEIGHT
//   - DESK_SPAWN_X, DESK_SPAWN_Y, DESK_SPAWN_WIDTH, DESK_SPAWN_HEIGHT
//   - DESK_MIN_WIDTH, DESK_MIN_HEIGHT
//   - DESK_VIEWPORT_WIDTH, DESK_VIEWPORT_HEIGHT, DESK_TASKBAR_HEIGHT
//   - DESK_CLOCK_INTERVAL, DESK_CLOCK_FORMAT, DESK_NOTIFICATION_LIMIT
//   - CATALOG_DIR
package config
