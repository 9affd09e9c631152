// Package main is the entry point for the SkyDesk server.
//
// The server owns the desktop: the window registry, the pointer
// interaction controllers and the taskbar clock all live here. Browsers
// are renderers that receive composed scenes and send back pointer events.
//
// Architecture:
//
//	Browser (renderer) ⇄ /stream (WebSocket) ⇄ Desktop store
//	deskctl / scripts  → REST API            → Desktop store
//
// The server provides:
//   - REST API for windows, launcher and taskbar
//   - WebSocket scene streaming and pointer input
//   - Prometheus metrics at /metrics
//   - Rate limiting, CORS and gzip
//
// Configuration:
//   - Environment variables (12-factor, see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -catalog ./catalogs
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
