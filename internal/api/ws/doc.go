// Package ws streams the desktop to browser renderers.
//
// One connection is one pointing device. It gets its own pointer bus and
// tracker, so two renderers can drag different windows at once. Every store
// change schedules a scene push; pushes are coalesced and always carry the
// latest state.
//
// Message Types (Client → Server):
//   - intent: open, close, minimize, maximize, focus, move, resize,
//     toggle_theme, notify, dismiss, activate
//   - pointer: down (with window_id and region), move, up, cancel
//   - viewport: the renderer's size, used for maximized frames
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - hello: connection id
//   - scene: composed surfaces
//   - pong
//   - error
//
// Example Usage:
//
//	hub := ws.NewHub(ws.Config{Store: store, Metrics: metrics, Logger: logger})
//	router.GET("/stream", hub.HandleConnection)
package ws
