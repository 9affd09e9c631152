/*
Package monitoring provides Prometheus metrics for the desktop server.

# Overview

Each Metrics value owns a private registry, so several servers (or tests)
can live in one process without colliding on metric names.

# Features

- HTTP request metrics (latency, throughput, size) labelled by route
- Intent counts by kind, plus open and minimized window gauges
- Pointer listener gauge for leak detection
- Scene compose and encode timings
- WebSocket connection and message metrics

# Usage

	metrics := monitoring.NewMetrics()
	store := desktop.NewStore(reducer, desktop.WithObserver(metrics))

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "compose")
	scene := compositor.Compose(state, viewport)
	timer.Stop()
*/
package monitoring
