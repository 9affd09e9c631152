// Package middleware provides the HTTP middleware for the desktop API.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle sweep
//   - Gzip: Response compression (klauspost/compress)
//   - RequestLog: Request ids and structured access logs (zap)
//
// Example Usage:
//
//	router.Use(middleware.RequestLog(logger))
//	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.Server.AllowedOrigins)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.Gzip(middleware.DefaultGzipConfig()))
package middleware
