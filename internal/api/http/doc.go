// Package http exposes the desktop over a JSON REST API.
//
// Every mutating route dispatches exactly one intent through the shared
// store (taskbar activation may dispatch two). Routes aimed at a window that
// does not exist answer 200 with "success": false, matching the registry's
// no-op semantics; only malformed input earns a 4xx.
//
// Example Usage:
//
//	handlers := http.NewHandlers(http.Deps{Store: store, Metrics: metrics})
//	handlers.Register(router)
package http
