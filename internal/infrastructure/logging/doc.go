// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Components receive a *zap.Logger named after themselves:
//
//	logger := logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
//	wsLogger := logger.Component("ws")
//	wsLogger.Info("Client connected", zap.String("conn_id", id))
package logging
